package session

import (
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/lifecycle"
	"github.com/vovakirdan/tilequest/internal/world"
)

// interactions handles what happens on the cell the player just entered.
type interactions struct {
	s *Session
}

var _ core.Interactions = interactions{}

// HandlePlayerInteractions opens the pickup overlay for collectibles and
// toggles switches.
func (i interactions) HandlePlayerInteractions() {
	s := i.s
	p := s.rt.Player
	obj, ok := s.lookup.ObjectAt(p.Room, p.X, p.Y)
	if !ok {
		return
	}

	switch {
	case obj.IsCollectible && !obj.Collected:
		s.openPickup(obj)
	case obj.IsSwitch:
		on := s.lookup.IsVariableOn(obj.VariableID)
		changed, opened := s.lookup.SetVariableValue(obj.VariableID, !on, false)
		if !changed {
			return
		}
		switch {
		case opened:
			s.message("You pull the lever. Somewhere, a door grinds open.")
		case on:
			s.message("You push the lever back.")
		default:
			s.message("You pull the lever.")
		}
	}
}

// openPickup pauses the game and shows what was found.
func (s *Session) openPickup(obj world.Object) {
	if s.pickup.Active {
		return
	}
	s.life.Pause(lifecycle.ReasonPickup)
	name := obj.TypeInfo.Name
	if name == "" {
		name = obj.Type
	}
	s.pickup = PickupOverlay{
		Active:   true,
		ObjectID: obj.ID,
		Name:     name,
		Kind:     obj.Kind,
		Glyph:    obj.TypeInfo.Glyph,
		Color:    obj.TypeInfo.Color,
		effect:   func() { s.applyPickup(obj) },
	}
}

// DismissPickup closes the pickup overlay and applies its effect.
func (s *Session) DismissPickup() bool {
	if !s.pickup.Active {
		return false
	}
	effect := s.pickup.effect
	s.pickup = PickupOverlay{}
	s.life.Resume(lifecycle.ReasonPickup)
	if effect != nil {
		effect()
	}
	return true
}

func (s *Session) applyPickup(obj world.Object) {
	ot := obj.TypeInfo
	amount := max(ot.Amount, 1)

	switch obj.Kind {
	case world.KindKey:
		if !s.ledger.AddKey() {
			s.message("Your key ring is full.")
			return
		}
		s.message("You pick up a key.")
	case world.KindPotion:
		if healed := s.ledger.Heal(amount); healed > 0 {
			s.message("You feel restored.")
		} else {
			s.message("The potion tastes of nothing.")
		}
	case world.KindXPOrb:
		res := s.ledger.AddExperience(amount)
		if res.LeveledUp {
			s.queue.QueueLevelUps(res.LevelsGained, res.Level)
			s.onLevelUp(res.Level)
		}
	case world.KindSword:
		s.ledger.EquipSword(ot.Sword, ot.Shield)
		s.message("You take up the " + ot.Name + ".")
	}
	s.lookup.Collect(obj.ID)
}
