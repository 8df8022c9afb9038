package world

import "github.com/vovakirdan/tilequest/internal/core"

// TileCategory groups tiles with shared movement rules.
type TileCategory string

const (
	CategoryFloor TileCategory = "floor"
	CategoryWater TileCategory = "water"
	CategoryLava  TileCategory = "lava"
	CategoryDecor TileCategory = "decor"
)

// Tile describes one tile type.
type Tile struct {
	ID        string
	Name      string
	Category  TileCategory
	Collision bool
	Glyph     rune
	Color     core.Color
}

// EnemyType describes one kind of enemy.
type EnemyType struct {
	ID               string
	Name             string
	Damage           int
	XP               int
	MissChance       *float64 // Overrides the combat fallback when set
	Boss             bool
	DefeatVariableID string // Default defeat variable for every instance
	PersistDefeat    bool   // Store the defeat variable in the definition
	Glyph            rune
	Color            core.Color
}

// ObjectKind selects the behavior of an object type.
type ObjectKind string

const (
	KindDoor         ObjectKind = "door"
	KindVariableDoor ObjectKind = "variable-door"
	KindKey          ObjectKind = "key"
	KindPotion       ObjectKind = "potion"
	KindXPOrb        ObjectKind = "xp-orb"
	KindSword        ObjectKind = "sword"
	KindSwitch       ObjectKind = "switch"
)

// ObjectType describes one kind of placed object.
type ObjectType struct {
	ID     string
	Name   string
	Kind   ObjectKind
	Glyph  rune
	Color  core.Color
	Amount int    // Lives healed, xp granted
	Sword  string // Sword identifier equipped by sword pickups
	Shield int    // Shield granted by sword pickups
}

// ObjectFlags are behavior flags derived from an object type.
type ObjectFlags struct {
	IsLockedDoor      bool
	IsVariableDoor    bool
	HideWhenCollected bool
	IsCollectible     bool
	IsSwitch          bool
}

// Flags computes the behavior flags of the type.
func (t ObjectType) Flags() ObjectFlags {
	switch t.Kind {
	case KindDoor:
		return ObjectFlags{IsLockedDoor: true}
	case KindVariableDoor:
		return ObjectFlags{IsVariableDoor: true}
	case KindKey, KindPotion, KindXPOrb, KindSword:
		return ObjectFlags{IsCollectible: true, HideWhenCollected: true}
	case KindSwitch:
		return ObjectFlags{IsSwitch: true}
	default:
		return ObjectFlags{}
	}
}

// Catalog is the static description of every tile, object and enemy type.
type Catalog struct {
	Tiles   map[string]Tile
	Objects map[string]ObjectType
	Enemies map[string]EnemyType
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Tiles:   make(map[string]Tile),
		Objects: make(map[string]ObjectType),
		Enemies: make(map[string]EnemyType),
	}
}

// Tile returns a tile type by id.
func (c *Catalog) Tile(id string) (Tile, bool) {
	t, ok := c.Tiles[id]
	return t, ok
}

// Object returns an object type by id.
func (c *Catalog) Object(id string) (ObjectType, bool) {
	t, ok := c.Objects[id]
	return t, ok
}

// Enemy returns an enemy type by id.
func (c *Catalog) Enemy(id string) (EnemyType, bool) {
	t, ok := c.Enemies[id]
	return t, ok
}
