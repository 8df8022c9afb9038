// Package lifecycle tracks whether the simulation is running.
// Several producers may hold pause reasons at once; the game plays only
// while none are held.
package lifecycle

import (
	"time"

	"github.com/vovakirdan/tilequest/internal/core"
)

// Well-known pause reasons.
const (
	ReasonIntro       = "intro"
	ReasonManual      = "manual"
	ReasonDialog      = "dialog"
	ReasonPickup      = "pickup"
	ReasonLevelUp     = "level-up"
	ReasonCelebration = "celebration"
	ReasonTransition  = "transition"
	ReasonGameOver    = "game-over"
)

// DefaultGameOverCooldown is how long the game-over screen ignores input.
const DefaultGameOverCooldown = 2000 * time.Millisecond

// Controller is a reason-counted pause/resume tracker with game-over state.
type Controller struct {
	reasons map[string]int
	clock   core.Clock

	gameOver        bool
	gameOverReason  string
	gameOverAt      time.Time
	cooldown        time.Duration
	cooldownCleared bool
}

// New creates a controller. A zero cooldown uses DefaultGameOverCooldown.
func New(cooldown time.Duration, clock core.Clock) *Controller {
	if cooldown <= 0 {
		cooldown = DefaultGameOverCooldown
	}
	if clock == nil {
		clock = core.SystemClock
	}
	return &Controller{
		reasons:  make(map[string]int),
		clock:    clock,
		cooldown: cooldown,
	}
}

// Pause adds one hold for reason. An empty reason counts as a manual pause.
func (c *Controller) Pause(reason string) {
	if reason == "" {
		reason = ReasonManual
	}
	c.reasons[reason]++
}

// Resume drops one hold for reason. An empty reason clears every hold.
// Resuming a reason that is not held is a no-op.
func (c *Controller) Resume(reason string) {
	if reason == "" {
		clear(c.reasons)
		return
	}
	n, ok := c.reasons[reason]
	if !ok {
		return
	}
	if n <= 1 {
		delete(c.reasons, reason)
		return
	}
	c.reasons[reason] = n - 1
}

// Release drops every hold of reason at once.
func (c *Controller) Release(reason string) {
	delete(c.reasons, reason)
}

// Holds reports whether reason is currently held.
func (c *Controller) Holds(reason string) bool {
	return c.reasons[reason] > 0
}

// Playing is true iff no pause reason is held.
func (c *Controller) Playing() bool {
	return len(c.reasons) == 0
}

// SetGameOver enters or leaves the game-over state. Entering holds the
// game-over pause reason and starts the input cooldown.
func (c *Controller) SetGameOver(active bool, reason string) {
	if !active {
		c.gameOver = false
		c.gameOverReason = ""
		c.cooldownCleared = false
		c.Release(ReasonGameOver)
		return
	}
	if !c.gameOver {
		c.Pause(ReasonGameOver)
	}
	c.gameOver = true
	c.gameOverReason = reason
	c.gameOverAt = c.clock()
	c.cooldownCleared = false
}

// GameOver reports whether the game is over.
func (c *Controller) GameOver() bool {
	return c.gameOver
}

// GameOverReason returns what ended the game.
func (c *Controller) GameOverReason() string {
	return c.gameOverReason
}

// CanResetAfterGameOver is true once the game is over and the cooldown has
// elapsed or been cleared.
func (c *Controller) CanResetAfterGameOver() bool {
	if !c.gameOver {
		return false
	}
	return c.cooldownCleared || c.clock().Sub(c.gameOverAt) >= c.cooldown
}

// ClearGameOverCooldown lets the game-over screen accept input immediately.
func (c *Controller) ClearGameOverCooldown() {
	c.cooldownCleared = true
}

// Reset drops all holds and the game-over state.
func (c *Controller) Reset() {
	clear(c.reasons)
	c.gameOver = false
	c.gameOverReason = ""
	c.cooldownCleared = false
}
