package state

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

func testDefinition() *world.Definition {
	return &world.Definition{
		Cols:      1,
		Start:     world.Spawn{Room: 0, X: 2, Y: 3},
		Rooms:     make([]world.Room, 1),
		Enemies:   []world.EnemyPlacement{{ID: "rat-1", Type: "rat", Room: 0, X: 5, Y: 5}},
		Variables: []world.VariableDef{{ID: "lever", Value: true}},
	}
}

func TestNewRuntime(t *testing.T) {
	rt := NewRuntime(testDefinition(), 3)

	p := rt.Player
	if p.X != 2 || p.Y != 3 || p.Level != 1 || p.CurrentLives != 3 || p.MaxLives != 3 {
		t.Errorf("unexpected player: %+v", p)
	}
	if len(rt.Enemies) != 1 || rt.Enemies[0].LastX != 5 {
		t.Errorf("unexpected enemies: %+v", rt.Enemies)
	}
	if !rt.World.Variables["lever"] {
		t.Error("variable default not applied")
	}
	if rt.Skills.PendingSelections() != 0 {
		t.Error("fresh runtime has pending selections")
	}
}

func TestResetKeepsPointers(t *testing.T) {
	def := testDefinition()
	rt := NewRuntime(def, 3)
	player, skills := rt.Player, rt.Skills

	rt.Player.Keys = 4
	rt.Skills.Owned["stealth"] = true
	rt.Reset(def, 3)

	if rt.Player != player || rt.Skills != skills {
		t.Error("Reset replaced shared pointers")
	}
	if rt.Player.Keys != 0 || rt.Skills.Has("stealth") {
		t.Error("Reset kept run state")
	}
}

func TestCloneAndRestore(t *testing.T) {
	rt := NewRuntime(testDefinition(), 3)
	want := time.Unix(100, 0)
	alert := want
	rt.Enemies[0].AlertStart = &alert
	rt.Skills.Owned["stealth"] = true
	rt.Skills.PendingLevelQueue = []int{2}

	snap, err := rt.Clone()
	if err != nil {
		t.Fatalf("Clone() failed: %v", err)
	}

	rt.Player.CurrentLives = 0
	rt.Skills.Owned["iron-body"] = true
	rt.Skills.PendingLevelQueue[0] = 4
	*rt.Enemies[0].AlertStart = time.Unix(200, 0)
	rt.Enemies = nil

	player := rt.Player
	rt.RestoreFrom(snap)

	if rt.Player != player {
		t.Error("RestoreFrom replaced the player pointer")
	}
	if rt.Player.CurrentLives != 3 || rt.Skills.Has("iron-body") || rt.Skills.PendingLevelQueue[0] != 2 {
		t.Errorf("restore did not bring back snapshot values: %+v %+v", rt.Player, rt.Skills)
	}
	if len(rt.Enemies) != 1 || !rt.Enemies[0].AlertStart.Equal(want) {
		t.Errorf("enemies not restored: %+v", rt.Enemies)
	}
}

func TestCloneUnsupportedProps(t *testing.T) {
	rt := NewRuntime(testDefinition(), 3)
	rt.Props = map[string]any{"hook": make(chan int)}

	if _, err := rt.Clone(); !errors.Is(err, core.ErrUnsupportedValue) {
		t.Errorf("expected ErrUnsupportedValue, got %v", err)
	}
}

func TestEnemyAt(t *testing.T) {
	rt := NewRuntime(testDefinition(), 3)
	if e := rt.EnemyAt(0, 5, 5); e == nil || e.ID != "rat-1" {
		t.Errorf("EnemyAt = %+v", e)
	}
	if rt.EnemyAt(0, 1, 1) != nil {
		t.Error("EnemyAt found a ghost")
	}
	if rt.EnemyByID("rat-1") == nil {
		t.Error("EnemyByID missed")
	}
}
