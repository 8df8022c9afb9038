package world

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tilequest/internal/core"
)

// testWorld is a 2x2 grid with three rooms (the bottom-right slot is empty).
func testWorld() (*Definition, *Catalog) {
	def := &Definition{
		ID:    "test",
		Cols:  2,
		Rooms: make([]Room, 3),
		Objects: []ObjectPlacement{
			{ID: "door-1", Type: "door", Room: 0, X: 3, Y: 3},
			{ID: "gate-1", Type: "gate", Room: 0, X: 4, Y: 4, VariableID: "lever"},
			{ID: "key-1", Type: "key", Room: 0, X: 1, Y: 1},
		},
		NPCs:      []NPCPlacement{{ID: "sage", Name: "Sage", Room: 1, X: 2, Y: 2, Dialog: "hello"}},
		Variables: []VariableDef{{ID: "lever", Name: "Lever"}},
	}
	def.Rooms[0].Ground[0][0] = "floor"
	def.Rooms[0].Overlay[0][0] = "water"
	def.Rooms[0].Ground[0][1] = "floor"

	cat := NewCatalog()
	cat.Tiles["floor"] = Tile{ID: "floor", Category: CategoryFloor}
	cat.Tiles["water"] = Tile{ID: "water", Category: CategoryWater, Collision: true}
	cat.Objects["door"] = ObjectType{ID: "door", Kind: KindDoor}
	cat.Objects["gate"] = ObjectType{ID: "gate", Kind: KindVariableDoor}
	cat.Objects["key"] = ObjectType{ID: "key", Kind: KindKey}
	return def, cat
}

func TestNeighbor(t *testing.T) {
	def, _ := testWorld()

	tests := []struct {
		room int
		dir  core.Direction
		want int
		ok   bool
	}{
		{0, core.DirRight, 1, true},
		{0, core.DirDown, 2, true},
		{0, core.DirLeft, -1, false},
		{0, core.DirUp, -1, false},
		{1, core.DirDown, -1, false}, // empty slot
		{2, core.DirUp, 0, true},
		{9, core.DirUp, -1, false},
	}
	for _, tt := range tests {
		got, ok := def.Neighbor(tt.room, tt.dir)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Neighbor(%d, %v) = %d, %v; want %d, %v", tt.room, tt.dir, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDefinitionClone(t *testing.T) {
	def, _ := testWorld()
	v := "boss-down"
	def.Enemies = []EnemyPlacement{{ID: "e1", Type: "rat", DefeatVariableID: &v}}
	def.Props = map[string]any{"music": "crypt"}

	out, err := def.Clone()
	if err != nil {
		t.Fatalf("Clone() failed: %v", err)
	}

	out.Rooms[0].Walls[1][1] = true
	out.Objects[0].X = 7
	*out.Enemies[0].DefeatVariableID = "other"
	out.Props["music"] = "none"

	if def.Rooms[0].Walls[1][1] || def.Objects[0].X != 3 || v != "boss-down" || def.Props["music"] != "crypt" {
		t.Error("clone shares state with the source")
	}
}

func TestDefinitionCloneCyclic(t *testing.T) {
	def, _ := testWorld()
	loop := map[string]any{}
	loop["self"] = loop
	def.Objects[0].Props = loop

	if _, err := def.Clone(); !errors.Is(err, core.ErrCyclicValue) {
		t.Errorf("expected ErrCyclicValue, got %v", err)
	}
}

func TestRemoveEnemyPlacements(t *testing.T) {
	def, _ := testWorld()
	def.Enemies = []EnemyPlacement{{ID: "a", Type: "rat"}, {ID: "b", Type: "lich"}, {ID: "c", Type: "rat"}}

	def.RemoveEnemyPlacements(func(e EnemyPlacement) bool { return e.Type == "rat" })

	if len(def.Enemies) != 1 || def.Enemies[0].ID != "b" {
		t.Errorf("unexpected placements: %+v", def.Enemies)
	}
}

func TestResolveTileOverlayWins(t *testing.T) {
	def, cat := testWorld()
	l := NewLookup(def, cat, NewStatus(def))

	tile, ok := ResolveTile(l, 0, 0, 0)
	if !ok || tile.ID != "water" {
		t.Errorf("expected overlay water, got %+v, %v", tile, ok)
	}
	tile, ok = ResolveTile(l, 0, 1, 0)
	if !ok || tile.ID != "floor" {
		t.Errorf("expected ground floor, got %+v, %v", tile, ok)
	}
	if _, ok := ResolveTile(l, 0, 5, 5); ok {
		t.Error("empty cell should resolve to no tile")
	}
	if _, ok := ResolveTile(l, 0, -1, 0); ok {
		t.Error("out of bounds cell should resolve to no tile")
	}
}

func TestLookupObjects(t *testing.T) {
	def, cat := testWorld()
	l := NewLookup(def, cat, NewStatus(def))

	door, ok := l.ObjectAt(0, 3, 3)
	if !ok || !door.IsLockedDoor || !door.Blocking() {
		t.Fatalf("expected closed locked door, got %+v", door)
	}
	l.OpenDoor("door-1")
	if door, _ = l.ObjectAt(0, 3, 3); door.Blocking() {
		t.Error("opened door still blocks")
	}

	key, ok := l.ObjectAt(0, 1, 1)
	if !ok || !key.IsCollectible {
		t.Fatalf("expected collectible key, got %+v", key)
	}
	l.Collect("key-1")
	if _, ok := l.ObjectAt(0, 1, 1); ok {
		t.Error("collected key should be hidden")
	}

	if npc, ok := l.NPCAt(1, 2, 2); !ok || npc.Name != "Sage" {
		t.Errorf("NPCAt = %+v, %v", npc, ok)
	}
}

func TestLookupVariables(t *testing.T) {
	def, cat := testWorld()
	l := NewLookup(def, cat, NewStatus(def))

	gate, _ := l.ObjectAt(0, 4, 4)
	if !gate.IsVariableDoor || !gate.Blocking() {
		t.Fatalf("expected closed variable door, got %+v", gate)
	}

	if id, ok := l.NormalizeVariableID("  LEVER "); !ok || id != "lever" {
		t.Errorf("NormalizeVariableID = %q, %v", id, ok)
	}
	if _, ok := l.NormalizeVariableID("missing"); ok {
		t.Error("unknown variable normalized")
	}

	changed, opened := l.SetVariableValue("lever", true, false)
	if !changed || !opened {
		t.Errorf("SetVariableValue = %v, %v; want true, true", changed, opened)
	}
	changed, opened = l.SetVariableValue("lever", true, false)
	if changed || opened {
		t.Errorf("repeat SetVariableValue = %v, %v; want false, false", changed, opened)
	}
	if gate, _ = l.ObjectAt(0, 4, 4); gate.Blocking() {
		t.Error("variable door still blocks after its variable is on")
	}
	if def.Variables[0].Value {
		t.Error("non-persistent set leaked into the definition")
	}

	l.SetVariableValue("lever", false, true)
	l.SetVariableValue("lever", true, true)
	if !def.Variables[0].Value {
		t.Error("persistent set not stored in the definition")
	}

	if changed, _ := l.SetVariableValue("missing", true, false); changed {
		t.Error("unknown variable reported a change")
	}
}
