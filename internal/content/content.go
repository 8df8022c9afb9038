// Package content embeds the built-in catalog and worlds and registers the
// worlds with the registry.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/world"
)

//go:embed catalog.yaml
var catalogYAML []byte

//go:embed worlds/*.yaml
var worldFiles embed.FS

func init() {
	entries, err := fs.ReadDir(worldFiles, "worlds")
	if err != nil {
		panic(fmt.Sprintf("content: read embedded worlds: %v", err))
	}
	for _, e := range entries {
		name := path.Join("worlds", e.Name())
		data, err := worldFiles.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("content: read %s: %v", name, err))
		}

		var head struct {
			ID    string `yaml:"id"`
			Title string `yaml:"title"`
		}
		if err := yaml.Unmarshal(data, &head); err != nil || head.ID == "" {
			panic(fmt.Sprintf("content: bad world header in %s: %v", name, err))
		}

		registry.Register(head.ID, head.Title, func() (*world.Definition, *world.Catalog, error) {
			cat, err := Catalog()
			if err != nil {
				return nil, nil, err
			}
			def, err := ParseWorld(data, cat)
			if err != nil {
				return nil, nil, fmt.Errorf("content: parse %s: %w", name, err)
			}
			return def, cat, nil
		})
	}
}

// Catalog parses the built-in catalog.
func Catalog() (*world.Catalog, error) {
	cat, err := ParseCatalog(catalogYAML)
	if err != nil {
		return nil, fmt.Errorf("content: parse catalog: %w", err)
	}
	return cat, nil
}

// LoadWorldFile parses a world file from disk against the built-in catalog.
func LoadWorldFile(filePath string) (*world.Definition, *world.Catalog, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("content: read %s: %w", filePath, err)
	}
	cat, err := Catalog()
	if err != nil {
		return nil, nil, err
	}
	def, err := ParseWorld(data, cat)
	if err != nil {
		return nil, nil, fmt.Errorf("content: parse %s: %w", filePath, err)
	}
	return def, cat, nil
}
