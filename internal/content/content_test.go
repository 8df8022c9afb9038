package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/world"
)

func TestCatalogParses(t *testing.T) {
	cat, err := Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if water, ok := cat.Tile("water"); !ok || water.Category != world.CategoryWater || water.Glyph != '~' {
		t.Errorf("water = %+v, %v", water, ok)
	}
	lich, ok := cat.Enemy("lich")
	if !ok || !lich.Boss || lich.DefeatVariableID != "lich-slain" || !lich.PersistDefeat {
		t.Errorf("lich = %+v, %v", lich, ok)
	}
	ghoul, _ := cat.Enemy("ghoul")
	if ghoul.MissChance == nil || *ghoul.MissChance != 0.1 {
		t.Errorf("ghoul miss chance = %v", ghoul.MissChance)
	}
	if rat, _ := cat.Enemy("rat"); rat.MissChance != nil {
		t.Error("rat should fall back to the combat miss chance")
	}
	if sword, _ := cat.Object("bone-sword"); sword.Kind != world.KindSword || sword.Shield != 2 {
		t.Errorf("sword = %+v", sword)
	}
}

func TestCryptRegistered(t *testing.T) {
	if !registry.Exists("crypt") {
		t.Fatal("crypt not registered")
	}
	def, cat, err := registry.Create("crypt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if def.Title != "The Sunken Crypt" || len(def.Rooms) != 4 || def.Cols != 2 {
		t.Errorf("def = %q rooms=%d cols=%d", def.Title, len(def.Rooms), def.Cols)
	}

	room := def.Room(0)
	if !room.Walls[0][0] || room.Walls[1][1] {
		t.Error("walls not parsed")
	}
	if room.Ground[4][3] != "water" {
		t.Errorf("ground[4][3] = %q", room.Ground[4][3])
	}
	if def.Room(1).Overlay[1][6] != "moss" {
		t.Errorf("overlay not parsed: %q", def.Room(1).Overlay[1][6])
	}

	bosses := 0
	for _, e := range def.Enemies {
		if typ, _ := cat.Enemy(e.Type); typ.Boss {
			bosses++
		}
	}
	if bosses != 1 {
		t.Errorf("bosses = %d, want 1", bosses)
	}
	if !strings.Contains(def.NPCs[0].Dialog, "\n\n") {
		t.Error("warden dialog lost its page break")
	}

	// Factories hand out independent definitions
	other, _, _ := registry.Create("crypt")
	other.Rooms[0].Name = "changed"
	if def.Rooms[0].Name == "changed" {
		t.Error("definitions share rooms")
	}
}

const tinyWorld = `
id: tiny
title: Tiny
cols: 1
start: {room: 0, x: 1, y: 1}
variables:
  - id: Gate
rooms:
  - name: Only
    map:
      - "########"
      - "#......#"
      - "#..~...#"
      - "#......#"
      - "#......#"
      - "#......#"
      - "#......#"
      - "########"
`

// ratRow places n rats on interior cells of tinyWorld's room.
func ratRow(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  - {id: rat-%d, type: rat, room: 0, x: %d, y: %d}\n", i, 1+i%6, 1+i/6)
	}
	return b.String()
}

func TestParseWorldErrors(t *testing.T) {
	cat, err := Catalog()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		extra   string
		replace [2]string
		want    string
	}{
		{name: "ok"},
		{name: "unknown glyph", replace: [2]string{`"#..~...#"`, `"#..Q...#"`}, want: "unknown glyph"},
		{name: "short row", replace: [2]string{`"#..~...#"`, `"#..~..#"`}, want: "want 8 cells"},
		{name: "bad start", replace: [2]string{"x: 1, y: 1", "x: 9, y: 1"}, want: "outside the world"},
		{name: "no cols", replace: [2]string{"cols: 1", "cols: 0"}, want: "cols must be positive"},
		{name: "unknown object type", extra: "objects:\n  - {id: o, type: anvil, room: 0, x: 1, y: 1}\n", want: "unknown type"},
		{name: "switch without variable", extra: "objects:\n  - {id: l, type: lever, room: 0, x: 1, y: 1, variable: nope}\n", want: "undeclared variable"},
		{name: "switch with mixed-case variable", extra: "objects:\n  - {id: l, type: lever, room: 0, x: 1, y: 1, variable: \" GATE \"}\n"},
		{name: "unknown enemy", extra: "enemies:\n  - {id: e, type: dragon, room: 0, x: 2, y: 2}\n", want: "unknown type"},
		{name: "boss default variable undeclared", extra: "enemies:\n  - {id: e, type: lich, room: 0, x: 2, y: 2}\n", want: "undeclared variable"},
		{name: "enemy outside", extra: "enemies:\n  - {id: e, type: rat, room: 3, x: 2, y: 2}\n", want: "outside the world"},
		{name: "room over enemy cap", extra: "enemies:\n" + ratRow(7), want: "more than 6 enemies"},
		{name: "room at enemy cap", extra: "enemies:\n" + ratRow(6)},
		{name: "duplicate boss", extra: "enemies:\n  - {id: a, type: lich, room: 0, x: 1, y: 1, defeat_variable: gate}\n  - {id: b, type: lich, room: 0, x: 2, y: 1, defeat_variable: gate}\n", want: "already placed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tinyWorld + tt.extra
			if tt.replace[0] != "" {
				src = strings.Replace(src, tt.replace[0], tt.replace[1], 1)
			}
			_, err := ParseWorld([]byte(src), cat)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"reserved glyph", "tiles:\n  - {id: w, category: floor, glyph: \"#\"}\n", "reserved"},
		{"duplicate glyph", "tiles:\n  - {id: a, category: floor, glyph: \".\"}\n  - {id: b, category: floor, glyph: \".\"}\n", "already used"},
		{"long glyph", "tiles:\n  - {id: a, category: floor, glyph: \"ab\"}\n", "single character"},
		{"bad category", "tiles:\n  - {id: a, category: sky, glyph: \".\"}\n", "unknown category"},
		{"bad color", "objects:\n  - {id: k, kind: key, glyph: k, color: plaid}\n", "unknown color"},
		{"bad kind", "objects:\n  - {id: k, kind: anvil, glyph: k}\n", "unknown kind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadWorldFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	if err := os.WriteFile(path, []byte(tinyWorld), 0o644); err != nil {
		t.Fatal(err)
	}
	def, _, err := LoadWorldFile(path)
	if err != nil {
		t.Fatalf("LoadWorldFile: %v", err)
	}
	if def.ID != "tiny" || def.Variables[0].ID != "gate" {
		t.Errorf("def = %q vars=%+v", def.ID, def.Variables)
	}

	if _, _, err := LoadWorldFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}
