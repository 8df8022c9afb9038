// Package registry provides a global registry of playable worlds.
// Content packages register their worlds in init() functions, allowing the
// front ends to discover and load worlds without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tilequest/internal/world"
)

// WorldInfo contains metadata about a registered world.
type WorldInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh definition and the catalog it is written against.
// Every call must return a new definition: sessions mutate theirs.
type Factory func() (*world.Definition, *world.Catalog, error)

type entry struct {
	title   string
	factory Factory
}

var (
	worlds = make(map[string]entry)
	mu     sync.RWMutex
)

// Register adds a world factory to the registry.
// Typically called from a content package's init() function.
// Panics if a world with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := worlds[id]; exists {
		panic(fmt.Sprintf("registry: world %q already registered", id))
	}
	worlds[id] = entry{title: title, factory: f}
}

// List returns information about all registered worlds, sorted by ID.
func List() []WorldInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]WorldInfo, 0, len(worlds))
	for id, e := range worlds {
		result = append(result, WorldInfo{ID: id, Title: e.title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds a world by its ID.
// Returns an error if the world ID is not registered or fails to build.
func Create(id string) (*world.Definition, *world.Catalog, error) {
	mu.RLock()
	e, ok := worlds[id]
	mu.RUnlock()

	if !ok {
		return nil, nil, fmt.Errorf("registry: unknown world %q", id)
	}

	def, cat, err := e.factory()
	if err != nil {
		return nil, nil, fmt.Errorf("registry: build world %q: %w", id, err)
	}
	return def, cat, nil
}

// Exists checks if a world with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := worlds[id]
	return ok
}
