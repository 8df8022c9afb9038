package content

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

// wallGlyph marks a wall cell in room maps.
const wallGlyph = '#'

// YAMLCatalog is the YAML structure of a catalog file.
type YAMLCatalog struct {
	Tiles   []YAMLTile   `yaml:"tiles"`
	Objects []YAMLObject `yaml:"objects"`
	Enemies []YAMLEnemy  `yaml:"enemies"`
}

// YAMLTile is one tile type.
type YAMLTile struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	Collision bool   `yaml:"collision,omitempty"`
	Glyph     string `yaml:"glyph"`
	Color     string `yaml:"color,omitempty"`
}

// YAMLObject is one object type.
type YAMLObject struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Glyph  string `yaml:"glyph"`
	Color  string `yaml:"color,omitempty"`
	Amount int    `yaml:"amount,omitempty"`
	Sword  string `yaml:"sword,omitempty"`
	Shield int    `yaml:"shield,omitempty"`
}

// YAMLEnemy is one enemy type.
type YAMLEnemy struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Damage         int      `yaml:"damage"`
	XP             int      `yaml:"xp"`
	MissChance     *float64 `yaml:"miss_chance,omitempty"`
	Boss           bool     `yaml:"boss,omitempty"`
	DefeatVariable string   `yaml:"defeat_variable,omitempty"`
	PersistDefeat  bool     `yaml:"persist_defeat,omitempty"`
	Glyph          string   `yaml:"glyph"`
	Color          string   `yaml:"color,omitempty"`
}

// YAMLWorld is the YAML structure of a world file.
type YAMLWorld struct {
	ID        string           `yaml:"id"`
	Title     string           `yaml:"title"`
	Cols      int              `yaml:"cols"`
	Start     YAMLSpawn        `yaml:"start"`
	Variables []YAMLVariable   `yaml:"variables,omitempty"`
	Rooms     []YAMLRoom       `yaml:"rooms"`
	Objects   []YAMLPlacement  `yaml:"objects,omitempty"`
	NPCs      []YAMLNPC        `yaml:"npcs,omitempty"`
	Enemies   []YAMLEnemyPlace `yaml:"enemies,omitempty"`
}

// YAMLSpawn is the player start.
type YAMLSpawn struct {
	Room int `yaml:"room"`
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
}

// YAMLVariable declares a world variable.
type YAMLVariable struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name,omitempty"`
	Value bool   `yaml:"value,omitempty"`
}

// YAMLRoom is one room as rows of glyphs. '#' is a wall, a space is an
// empty cell, any other glyph names a catalog tile.
type YAMLRoom struct {
	Name    string   `yaml:"name"`
	Map     []string `yaml:"map"`
	Overlay []string `yaml:"overlay,omitempty"`
}

// YAMLPlacement places an object.
type YAMLPlacement struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	Room     int    `yaml:"room"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Variable string `yaml:"variable,omitempty"`
}

// YAMLNPC places a talking character.
type YAMLNPC struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Room   int    `yaml:"room"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Dialog string `yaml:"dialog"`
}

// YAMLEnemyPlace places an enemy.
type YAMLEnemyPlace struct {
	ID             string  `yaml:"id"`
	Type           string  `yaml:"type"`
	Room           int     `yaml:"room"`
	X              int     `yaml:"x"`
	Y              int     `yaml:"y"`
	DefeatVariable *string `yaml:"defeat_variable,omitempty"`
}

var colors = map[string]core.Color{
	"":              core.ColorDefault,
	"default":       core.ColorDefault,
	"red":           core.ColorRed,
	"green":         core.ColorGreen,
	"yellow":        core.ColorYellow,
	"blue":          core.ColorBlue,
	"magenta":       core.ColorMagenta,
	"cyan":          core.ColorCyan,
	"white":         core.ColorWhite,
	"bright-red":    core.ColorBrightRed,
	"bright-yellow": core.ColorBrightYellow,
	"orange":        core.ColorOrange,
	"gray":          core.ColorGray,
}

func parseColor(name string) (core.Color, error) {
	c, ok := colors[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

func parseGlyph(s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("glyph %q must be a single character", s)
	}
	return r, nil
}

// ParseCatalog parses a YAML catalog file.
func ParseCatalog(data []byte) (*world.Catalog, error) {
	var yc YAMLCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	cat := world.NewCatalog()
	glyphs := make(map[rune]string)
	for _, t := range yc.Tiles {
		glyph, err := parseGlyph(t.Glyph)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", t.ID, err)
		}
		if glyph == wallGlyph || glyph == ' ' {
			return nil, fmt.Errorf("tile %q: glyph %q is reserved", t.ID, glyph)
		}
		if other, dup := glyphs[glyph]; dup {
			return nil, fmt.Errorf("tile %q: glyph %q already used by %q", t.ID, glyph, other)
		}
		color, err := parseColor(t.Color)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", t.ID, err)
		}
		switch c := world.TileCategory(t.Category); c {
		case world.CategoryFloor, world.CategoryWater, world.CategoryLava, world.CategoryDecor:
		default:
			return nil, fmt.Errorf("tile %q: unknown category %q", t.ID, c)
		}
		glyphs[glyph] = t.ID
		cat.Tiles[t.ID] = world.Tile{
			ID:        t.ID,
			Name:      t.Name,
			Category:  world.TileCategory(t.Category),
			Collision: t.Collision,
			Glyph:     glyph,
			Color:     color,
		}
	}

	for _, o := range yc.Objects {
		glyph, err := parseGlyph(o.Glyph)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", o.ID, err)
		}
		color, err := parseColor(o.Color)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", o.ID, err)
		}
		kind := world.ObjectKind(o.Kind)
		if (world.ObjectType{Kind: kind}).Flags() == (world.ObjectFlags{}) {
			return nil, fmt.Errorf("object %q: unknown kind %q", o.ID, o.Kind)
		}
		cat.Objects[o.ID] = world.ObjectType{
			ID:     o.ID,
			Name:   o.Name,
			Kind:   kind,
			Glyph:  glyph,
			Color:  color,
			Amount: o.Amount,
			Sword:  o.Sword,
			Shield: o.Shield,
		}
	}

	for _, e := range yc.Enemies {
		glyph, err := parseGlyph(e.Glyph)
		if err != nil {
			return nil, fmt.Errorf("enemy %q: %w", e.ID, err)
		}
		color, err := parseColor(e.Color)
		if err != nil {
			return nil, fmt.Errorf("enemy %q: %w", e.ID, err)
		}
		cat.Enemies[e.ID] = world.EnemyType{
			ID:               e.ID,
			Name:             e.Name,
			Damage:           e.Damage,
			XP:               e.XP,
			MissChance:       e.MissChance,
			Boss:             e.Boss,
			DefeatVariableID: e.DefeatVariable,
			PersistDefeat:    e.PersistDefeat,
			Glyph:            glyph,
			Color:            color,
		}
	}
	return cat, nil
}

// ParseWorld parses a YAML world file against cat.
func ParseWorld(data []byte, cat *world.Catalog) (*world.Definition, error) {
	var yw YAMLWorld
	if err := yaml.Unmarshal(data, &yw); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yw.ID == "" {
		return nil, fmt.Errorf("world has no id")
	}
	if yw.Cols <= 0 {
		return nil, fmt.Errorf("world %q: cols must be positive", yw.ID)
	}
	if len(yw.Rooms) == 0 {
		return nil, fmt.Errorf("world %q: no rooms", yw.ID)
	}

	glyphs := make(map[rune]string, len(cat.Tiles))
	for id, t := range cat.Tiles {
		glyphs[t.Glyph] = id
	}

	def := &world.Definition{
		ID:    yw.ID,
		Title: yw.Title,
		Cols:  yw.Cols,
		Start: world.Spawn{Room: yw.Start.Room, X: yw.Start.X, Y: yw.Start.Y},
		Rooms: make([]world.Room, len(yw.Rooms)),
	}

	for i, yr := range yw.Rooms {
		room := &def.Rooms[i]
		room.Name = yr.Name
		if err := parseLayer(yr.Map, glyphs, &room.Ground, &room.Walls); err != nil {
			return nil, fmt.Errorf("room %d map: %w", i, err)
		}
		if len(yr.Overlay) > 0 {
			if err := parseLayer(yr.Overlay, glyphs, &room.Overlay, nil); err != nil {
				return nil, fmt.Errorf("room %d overlay: %w", i, err)
			}
		}
	}

	for _, v := range yw.Variables {
		id := strings.ToLower(strings.TrimSpace(v.ID))
		if id == "" {
			return nil, fmt.Errorf("variable with empty id")
		}
		def.Variables = append(def.Variables, world.VariableDef{ID: id, Name: v.Name, Value: v.Value})
	}

	check := func(what, id string, room, x, y int) error {
		if def.Room(room) == nil || !world.InBounds(x, y) {
			return fmt.Errorf("%s %q: position %d(%d,%d) outside the world", what, id, room, x, y)
		}
		return nil
	}
	declared := func(what, id, variable string) error {
		if def.Variable(strings.ToLower(strings.TrimSpace(variable))) == nil {
			return fmt.Errorf("%s %q: undeclared variable %q", what, id, variable)
		}
		return nil
	}

	if err := check("start", "player", yw.Start.Room, yw.Start.X, yw.Start.Y); err != nil {
		return nil, err
	}

	for _, o := range yw.Objects {
		if err := check("object", o.ID, o.Room, o.X, o.Y); err != nil {
			return nil, err
		}
		ot, ok := cat.Object(o.Type)
		if !ok {
			return nil, fmt.Errorf("object %q: unknown type %q", o.ID, o.Type)
		}
		if f := ot.Flags(); f.IsSwitch || f.IsVariableDoor {
			if err := declared("object", o.ID, o.Variable); err != nil {
				return nil, err
			}
		}
		def.Objects = append(def.Objects, world.ObjectPlacement{
			ID: o.ID, Type: o.Type, Room: o.Room, X: o.X, Y: o.Y, VariableID: o.Variable,
		})
	}

	for _, n := range yw.NPCs {
		if err := check("npc", n.ID, n.Room, n.X, n.Y); err != nil {
			return nil, err
		}
		def.NPCs = append(def.NPCs, world.NPCPlacement{
			ID: n.ID, Name: n.Name, Room: n.Room, X: n.X, Y: n.Y, Dialog: strings.TrimSpace(n.Dialog),
		})
	}

	perRoom := make(map[int]int)
	bosses := make(map[string]string)
	for _, e := range yw.Enemies {
		if err := check("enemy", e.ID, e.Room, e.X, e.Y); err != nil {
			return nil, err
		}
		t, ok := cat.Enemy(e.Type)
		if !ok {
			return nil, fmt.Errorf("enemy %q: unknown type %q", e.ID, e.Type)
		}
		perRoom[e.Room]++
		if perRoom[e.Room] > world.MaxEnemiesPerRoom {
			return nil, fmt.Errorf("enemy %q: room %d holds more than %d enemies", e.ID, e.Room, world.MaxEnemiesPerRoom)
		}
		if t.Boss {
			if prev, dup := bosses[e.Type]; dup {
				return nil, fmt.Errorf("enemy %q: boss type %q already placed as %q", e.ID, e.Type, prev)
			}
			bosses[e.Type] = e.ID
		}
		if e.DefeatVariable != nil && *e.DefeatVariable != "" {
			if err := declared("enemy", e.ID, *e.DefeatVariable); err != nil {
				return nil, err
			}
		} else if t.DefeatVariableID != "" {
			if err := declared("enemy", e.ID, t.DefeatVariableID); err != nil {
				return nil, err
			}
		}
		def.Enemies = append(def.Enemies, world.EnemyPlacement{
			ID: e.ID, Type: e.Type, Room: e.Room, X: e.X, Y: e.Y, DefeatVariableID: e.DefeatVariable,
		})
	}
	return def, nil
}

// parseLayer fills layer from glyph rows. Walls are recorded when walls is
// non-nil; otherwise a wall glyph is an error.
func parseLayer(rows []string, glyphs map[rune]string, layer *world.Layer, walls *[world.RoomSize][world.RoomSize]bool) error {
	if len(rows) != world.RoomSize {
		return fmt.Errorf("want %d rows, got %d", world.RoomSize, len(rows))
	}
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != world.RoomSize {
			return fmt.Errorf("row %d: want %d cells, got %d", y, world.RoomSize, len(cells))
		}
		for x, r := range cells {
			switch {
			case r == ' ':
			case r == wallGlyph && walls != nil:
				walls[y][x] = true
			default:
				id, ok := glyphs[r]
				if !ok {
					return fmt.Errorf("row %d: unknown glyph %q", y, r)
				}
				layer[y][x] = id
			}
		}
	}
	return nil
}
