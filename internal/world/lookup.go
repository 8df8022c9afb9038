package world

import "strings"

// TileLookup resolves the tile layers of rooms.
type TileLookup interface {
	TileMap(room int) (ground, overlay *Layer, ok bool)
	Tile(ref string) (Tile, bool)
}

// ObjectLookup resolves placed objects, NPCs and world variables.
type ObjectLookup interface {
	ObjectAt(room, x, y int) (Object, bool)
	NPCAt(room, x, y int) (NPCPlacement, bool)
	IsVariableOn(id string) bool
	// SetVariableValue reports whether the value changed and whether the
	// change opened at least one variable door.
	SetVariableValue(id string, value, persist bool) (changed, openedDoor bool)
	NormalizeVariableID(id string) (string, bool)
	OpenDoor(objectID string)
	Collect(objectID string)
}

// Object is a placed object resolved against its catalog type and the run status.
type Object struct {
	ObjectPlacement
	ObjectFlags
	Kind      ObjectKind
	TypeInfo  ObjectType
	Opened    bool // Locked door unlocked, or variable door with its variable on
	Collected bool
}

// Blocking reports whether the object stops movement into its cell.
func (o Object) Blocking() bool {
	return (o.IsLockedDoor || o.IsVariableDoor) && !o.Opened
}

// ResolveTile returns the tile that governs collision at a cell.
// The overlay layer takes precedence over ground.
func ResolveTile(tl TileLookup, room, x, y int) (Tile, bool) {
	if !InBounds(x, y) {
		return Tile{}, false
	}
	ground, overlay, ok := tl.TileMap(room)
	if !ok {
		return Tile{}, false
	}
	if overlay != nil {
		if ref := overlay[y][x]; ref != "" {
			if t, ok := tl.Tile(ref); ok {
				return t, true
			}
		}
	}
	if ground != nil {
		if ref := ground[y][x]; ref != "" {
			return tl.Tile(ref)
		}
	}
	return Tile{}, false
}

// Lookup is the default TileLookup and ObjectLookup backed by a definition,
// a catalog and the run status.
type Lookup struct {
	def     *Definition
	catalog *Catalog
	status  *Status
}

var (
	_ TileLookup   = (*Lookup)(nil)
	_ ObjectLookup = (*Lookup)(nil)
)

// NewLookup creates a lookup over the given structures.
func NewLookup(def *Definition, catalog *Catalog, status *Status) *Lookup {
	return &Lookup{def: def, catalog: catalog, status: status}
}

// Bind points the lookup at new structures after a reset or revive.
func (l *Lookup) Bind(def *Definition, status *Status) {
	l.def = def
	l.status = status
}

// Catalog returns the catalog in use.
func (l *Lookup) Catalog() *Catalog {
	return l.catalog
}

// TileMap returns the ground and overlay layers of a room.
func (l *Lookup) TileMap(room int) (ground, overlay *Layer, ok bool) {
	r := l.def.Room(room)
	if r == nil {
		return nil, nil, false
	}
	return &r.Ground, &r.Overlay, true
}

// Tile returns a tile type by reference.
func (l *Lookup) Tile(ref string) (Tile, bool) {
	return l.catalog.Tile(ref)
}

// ObjectAt returns the visible object at a cell.
// Collected objects that hide when collected are skipped.
func (l *Lookup) ObjectAt(room, x, y int) (Object, bool) {
	for _, p := range l.def.Objects {
		if p.Room != room || p.X != x || p.Y != y {
			continue
		}
		obj := l.resolve(p)
		if obj.Collected && obj.HideWhenCollected {
			continue
		}
		return obj, true
	}
	return Object{}, false
}

func (l *Lookup) resolve(p ObjectPlacement) Object {
	ot, _ := l.catalog.Object(p.Type)
	obj := Object{
		ObjectPlacement: p,
		ObjectFlags:     ot.Flags(),
		Kind:            ot.Kind,
		TypeInfo:        ot,
		Collected:       l.status.Collected[p.ID],
	}
	switch {
	case obj.IsLockedDoor:
		obj.Opened = l.status.OpenedDoors[p.ID]
	case obj.IsVariableDoor:
		obj.Opened = l.IsVariableOn(p.VariableID)
	}
	return obj
}

// NPCAt returns the NPC standing at a cell.
func (l *Lookup) NPCAt(room, x, y int) (NPCPlacement, bool) {
	for _, n := range l.def.NPCs {
		if n.Room == room && n.X == x && n.Y == y {
			return n, true
		}
	}
	return NPCPlacement{}, false
}

// IsVariableOn reports whether a variable is set. Unknown ids are off.
func (l *Lookup) IsVariableOn(id string) bool {
	id, ok := l.NormalizeVariableID(id)
	if !ok {
		return false
	}
	return l.status.Variables[id]
}

// SetVariableValue sets a variable, optionally persisting it as the
// definition default so it survives resets.
func (l *Lookup) SetVariableValue(id string, value, persist bool) (changed, openedDoor bool) {
	id, ok := l.NormalizeVariableID(id)
	if !ok {
		return false, false
	}

	changed = l.status.Variables[id] != value
	l.status.Variables[id] = value
	if persist {
		if v := l.def.Variable(id); v != nil {
			v.Value = value
		}
	}

	if changed && value {
		for _, p := range l.def.Objects {
			ot, _ := l.catalog.Object(p.Type)
			if ot.Kind == KindVariableDoor && p.VariableID == id {
				openedDoor = true
				break
			}
		}
	}
	return changed, openedDoor
}

// NormalizeVariableID trims and lowercases id and checks it is declared.
func (l *Lookup) NormalizeVariableID(id string) (string, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return "", false
	}
	if l.def.Variable(id) == nil {
		return "", false
	}
	return id, true
}

// OpenDoor marks a locked door as permanently open for this run.
func (l *Lookup) OpenDoor(objectID string) {
	l.status.OpenedDoors[objectID] = true
}

// Collect marks an object as collected for this run.
func (l *Lookup) Collect(objectID string) {
	l.status.Collected[objectID] = true
}
