package session

import (
	"time"

	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/world"
)

// PickupOverlay announces a collected object. Its effect runs on dismissal.
type PickupOverlay struct {
	Active   bool
	ObjectID string
	Name     string
	Kind     world.ObjectKind
	Glyph    rune
	Color    core.Color

	effect func()
}

// Celebration announces a level-up and dismisses itself after a while.
type Celebration struct {
	Active bool
	Level  int
	Until  time.Time
}
