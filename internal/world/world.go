// Package world holds the persisted world definition (rooms, placements,
// variable defaults), the static catalogs that describe tiles, objects and
// enemy types, and the lookups the engines use to query them.
package world

import (
	"fmt"

	"github.com/vovakirdan/tilequest/internal/core"
)

// RoomSize is the width and height of every room in cells.
const RoomSize = 8

// MaxEnemiesPerRoom bounds the enemy placements a world file may put in one room.
const MaxEnemiesPerRoom = 6

// Layer is a grid of tile references. An empty string means no tile.
type Layer [RoomSize][RoomSize]string

// Room is one screen of the world.
type Room struct {
	Name    string
	Walls   [RoomSize][RoomSize]bool
	Ground  Layer
	Overlay Layer
}

// InBounds reports whether (x, y) lies inside a room.
func InBounds(x, y int) bool {
	return x >= 0 && x < RoomSize && y >= 0 && y < RoomSize
}

// Spawn is where the player starts.
type Spawn struct {
	Room int
	X, Y int
}

// ObjectPlacement places an object of a catalog type in a room.
type ObjectPlacement struct {
	ID         string
	Type       string
	Room       int
	X, Y       int
	VariableID string // Linked variable for switches and variable doors
	Props      map[string]any
}

// NPCPlacement places a talking character.
type NPCPlacement struct {
	ID     string
	Name   string
	Room   int
	X, Y   int
	Dialog string
	Props  map[string]any
}

// EnemyPlacement places an enemy of a catalog type.
type EnemyPlacement struct {
	ID               string
	Type             string
	Room             int
	X, Y             int
	DefeatVariableID *string // Overrides the type default when set
}

// VariableDef declares a boolean world variable and its default value.
type VariableDef struct {
	ID    string
	Name  string
	Value bool
}

// Definition is the persisted world a session is built from.
// It is the only structure that survives a game reset.
type Definition struct {
	ID        string
	Title     string
	Cols      int // Rooms per grid row
	Start     Spawn
	Rooms     []Room
	Objects   []ObjectPlacement
	NPCs      []NPCPlacement
	Enemies   []EnemyPlacement
	Variables []VariableDef
	Props     map[string]any
}

// RoomIndex converts a grid position to a room index.
// Returns -1 when the position is outside the grid or holds no room.
func (d *Definition) RoomIndex(row, col int) int {
	if d.Cols <= 0 || row < 0 || col < 0 || col >= d.Cols {
		return -1
	}
	idx := row*d.Cols + col
	if idx >= len(d.Rooms) {
		return -1
	}
	return idx
}

// RoomPosition converts a room index to its grid position.
func (d *Definition) RoomPosition(index int) (row, col int) {
	if d.Cols <= 0 {
		return 0, index
	}
	return index / d.Cols, index % d.Cols
}

// Neighbor returns the room adjacent to index in direction dir.
func (d *Definition) Neighbor(index int, dir core.Direction) (int, bool) {
	if index < 0 || index >= len(d.Rooms) {
		return -1, false
	}
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return -1, false
	}
	row, col := d.RoomPosition(index)
	n := d.RoomIndex(row+dy, col+dx)
	return n, n >= 0
}

// Room returns the room at index, or nil if it does not exist.
func (d *Definition) Room(index int) *Room {
	if index < 0 || index >= len(d.Rooms) {
		return nil
	}
	return &d.Rooms[index]
}

// Variable returns the declaration of a variable, or nil.
func (d *Definition) Variable(id string) *VariableDef {
	for i := range d.Variables {
		if d.Variables[i].ID == id {
			return &d.Variables[i]
		}
	}
	return nil
}

// RemoveEnemyPlacements drops every enemy placement for which drop returns true.
func (d *Definition) RemoveEnemyPlacements(drop func(EnemyPlacement) bool) {
	kept := d.Enemies[:0]
	for _, e := range d.Enemies {
		if !drop(e) {
			kept = append(kept, e)
		}
	}
	// Clear the tail so removed placements are not retained
	for i := len(kept); i < len(d.Enemies); i++ {
		d.Enemies[i] = EnemyPlacement{}
	}
	d.Enemies = kept
}

// Clone returns a deep copy of the definition.
// Fails when a Props bag holds cyclic or non-data values.
func (d *Definition) Clone() (*Definition, error) {
	out := *d

	props, err := core.CloneProps(d.Props)
	if err != nil {
		return nil, fmt.Errorf("world: clone props: %w", err)
	}
	out.Props = props

	out.Rooms = append([]Room(nil), d.Rooms...)
	out.Variables = append([]VariableDef(nil), d.Variables...)

	out.Objects = make([]ObjectPlacement, len(d.Objects))
	for i, o := range d.Objects {
		if o.Props, err = core.CloneProps(o.Props); err != nil {
			return nil, fmt.Errorf("world: clone object %s: %w", o.ID, err)
		}
		out.Objects[i] = o
	}

	out.NPCs = make([]NPCPlacement, len(d.NPCs))
	for i, n := range d.NPCs {
		if n.Props, err = core.CloneProps(n.Props); err != nil {
			return nil, fmt.Errorf("world: clone npc %s: %w", n.ID, err)
		}
		out.NPCs[i] = n
	}

	out.Enemies = make([]EnemyPlacement, len(d.Enemies))
	for i, e := range d.Enemies {
		if e.DefeatVariableID != nil {
			v := *e.DefeatVariableID
			e.DefeatVariableID = &v
		}
		out.Enemies[i] = e
	}
	return &out, nil
}
