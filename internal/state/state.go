// Package state holds the mutable runtime data of a play session.
// Engines share one Runtime by reference; only the revive snapshot copies it.
package state

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

// Player is the player's position and resources.
type Player struct {
	X, Y, Room int

	Level      int
	Experience int

	CurrentLives int
	MaxLives     int
	Keys         int

	DamageShield    int
	DamageShieldMax int
	SwordType       string // Empty when no sword is equipped

	LastDamageReduction int // One-shot readback for combat feedback
	GodMode             bool
	LastRoomChangeTime  time.Time
}

// Pos returns the player's cell.
func (p *Player) Pos() core.Point {
	return core.Point{X: p.X, Y: p.Y}
}

// Enemy is a live enemy instance.
type Enemy struct {
	ID   string
	Type string
	Room int
	X, Y int

	LastX int // Previous column, used for sprite facing

	PlayerInVision bool
	AlertStart     *time.Time
	AlertUntil     *time.Time

	DefeatVariableID *string // Instance override of the type default
}

// Skills is the owned skill set and level-up bookkeeping.
type Skills struct {
	Owned         map[string]bool
	BonusMaxLives int
	XPBoost       float64

	PendingLevelQueue []int // Even levels awaiting a choice

	NecromancerCharges  int
	NecromancerGranted  bool // The single charge was handed out this game
	PendingManualRevive bool

	Carryover         []string // Unpicked choices offered again next prompt
	CurrentChoicePool []string
}

// Has reports whether a skill is owned.
func (s *Skills) Has(id string) bool {
	return s.Owned[id]
}

// PendingSelections is the number of level-up prompts still owed.
func (s *Skills) PendingSelections() int {
	return len(s.PendingLevelQueue)
}

// Runtime aggregates every mutable structure of a run.
type Runtime struct {
	Player  *Player
	Enemies []*Enemy
	Skills  *Skills
	World   *world.Status
	Props   map[string]any // Free-form state attached by front ends
}

// NewRuntime builds the baseline runtime of a definition.
func NewRuntime(def *world.Definition, baseMaxLives int) *Runtime {
	r := &Runtime{
		Player: &Player{},
		Skills: &Skills{},
		World:  &world.Status{},
	}
	r.Reset(def, baseMaxLives)
	return r
}

// Reset rebuilds the runtime from def in place.
// Pointer identity of Player, Skills and World is preserved.
func (r *Runtime) Reset(def *world.Definition, baseMaxLives int) {
	*r.Player = Player{
		X:            def.Start.X,
		Y:            def.Start.Y,
		Room:         def.Start.Room,
		Level:        1,
		CurrentLives: baseMaxLives,
		MaxLives:     baseMaxLives,
	}
	*r.Skills = Skills{Owned: make(map[string]bool)}
	*r.World = *world.NewStatus(def)

	r.Enemies = make([]*Enemy, 0, len(def.Enemies))
	for _, p := range def.Enemies {
		r.Enemies = append(r.Enemies, EnemyFromPlacement(p))
	}
	r.Props = nil
}

// EnemyFromPlacement creates a live enemy from a definition placement.
func EnemyFromPlacement(p world.EnemyPlacement) *Enemy {
	e := &Enemy{
		ID:    p.ID,
		Type:  p.Type,
		Room:  p.Room,
		X:     p.X,
		Y:     p.Y,
		LastX: p.X,
	}
	if p.DefeatVariableID != nil {
		v := *p.DefeatVariableID
		e.DefeatVariableID = &v
	}
	return e
}

// Clone returns a deep copy of the runtime.
func (r *Runtime) Clone() (*Runtime, error) {
	props, err := core.CloneProps(r.Props)
	if err != nil {
		return nil, fmt.Errorf("state: clone props: %w", err)
	}

	player := *r.Player
	skills := *r.Skills
	skills.Owned = make(map[string]bool, len(r.Skills.Owned))
	for id, v := range r.Skills.Owned {
		skills.Owned[id] = v
	}
	skills.PendingLevelQueue = slices.Clone(r.Skills.PendingLevelQueue)
	skills.Carryover = slices.Clone(r.Skills.Carryover)
	skills.CurrentChoicePool = slices.Clone(r.Skills.CurrentChoicePool)

	enemies := make([]*Enemy, len(r.Enemies))
	for i, e := range r.Enemies {
		enemies[i] = e.Clone()
	}

	return &Runtime{
		Player:  &player,
		Enemies: enemies,
		Skills:  &skills,
		World:   r.World.Clone(),
		Props:   props,
	}, nil
}

// RestoreFrom copies src into r without replacing the Player, Skills or
// World pointers that other components hold.
func (r *Runtime) RestoreFrom(src *Runtime) {
	*r.Player = *src.Player
	*r.Skills = *src.Skills
	*r.World = *src.World
	r.Enemies = src.Enemies
	r.Props = src.Props
}

// Clone returns an independent copy of the enemy.
func (e *Enemy) Clone() *Enemy {
	out := *e
	if e.AlertStart != nil {
		t := *e.AlertStart
		out.AlertStart = &t
	}
	if e.AlertUntil != nil {
		t := *e.AlertUntil
		out.AlertUntil = &t
	}
	if e.DefeatVariableID != nil {
		v := *e.DefeatVariableID
		out.DefeatVariableID = &v
	}
	return &out
}

// EnemyByID returns the live enemy with id, or nil.
func (r *Runtime) EnemyByID(id string) *Enemy {
	for _, e := range r.Enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// EnemyAt returns the live enemy occupying a cell, or nil.
func (r *Runtime) EnemyAt(room, x, y int) *Enemy {
	for _, e := range r.Enemies {
		if e.Room == room && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}
