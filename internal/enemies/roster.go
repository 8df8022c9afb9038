package enemies

import (
	"slices"

	"github.com/google/uuid"

	"github.com/vovakirdan/tilequest/internal/state"
	"github.com/vovakirdan/tilequest/internal/world"
)

// AddEnemy places a new enemy in the definition and the live list.
// Placing a boss type first removes every other instance of that type.
// Returns "", false when the target is invalid, already holds a live enemy,
// or its room is full. Defeated enemies still count towards the room cap
// because their placements respawn on reset.
// An empty placement id is replaced by a fresh uuid.
func (e *Engine) AddEnemy(p world.EnemyPlacement) (string, bool) {
	if !world.InBounds(p.X, p.Y) || e.def.Room(p.Room) == nil {
		return "", false
	}

	t, known := e.catalog.Enemy(p.Type)
	isBoss := known && t.Boss
	replaced := func(typ string) bool { return isBoss && typ == p.Type }

	for _, en := range e.rt.Enemies {
		if en.Room == p.Room && en.X == p.X && en.Y == p.Y && !replaced(en.Type) {
			return "", false
		}
	}

	// Count what would remain in the room once a previous boss is gone
	inRoom := make(map[string]struct{})
	for _, ep := range e.def.Enemies {
		if ep.Room == p.Room && !replaced(ep.Type) {
			inRoom[ep.ID] = struct{}{}
		}
	}
	for _, en := range e.rt.Enemies {
		if en.Room == p.Room && !replaced(en.Type) {
			inRoom[en.ID] = struct{}{}
		}
	}
	if len(inRoom) >= e.enemyCfg.RoomCap {
		return "", false
	}

	if isBoss {
		e.def.RemoveEnemyPlacements(func(ep world.EnemyPlacement) bool { return ep.Type == p.Type })
		e.rt.Enemies = slices.DeleteFunc(e.rt.Enemies, func(en *state.Enemy) bool { return en.Type == p.Type })
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	e.def.Enemies = append(e.def.Enemies, p)
	e.rt.Enemies = append(e.rt.Enemies, state.EnemyFromPlacement(p))
	return p.ID, true
}

// RemoveEnemy drops a live enemy. The definition placement is kept so the
// enemy returns on reset.
func (e *Engine) RemoveEnemy(id string) bool {
	before := len(e.rt.Enemies)
	e.rt.Enemies = slices.DeleteFunc(e.rt.Enemies, func(en *state.Enemy) bool { return en.ID == id })
	return len(e.rt.Enemies) != before
}

// DeleteEnemy drops an enemy from both the live list and the definition.
func (e *Engine) DeleteEnemy(id string) bool {
	removed := e.RemoveEnemy(id)
	before := len(e.def.Enemies)
	e.def.RemoveEnemyPlacements(func(ep world.EnemyPlacement) bool { return ep.ID == id })
	return removed || len(e.def.Enemies) != before
}
