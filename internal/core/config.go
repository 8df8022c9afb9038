package core

import "time"

// RuntimeConfig contains configuration passed to a session at initialization.
// Front ends use it to pace the loops and for deterministic simulation.
type RuntimeConfig struct {
	WorldID      string        // Registered world to load
	TickInterval time.Duration // Enemy AI tick interval; 0 keeps the game config
	FrameRate    int           // Overlay / transition frames per second
	Seed         int64         // RNG seed for deterministic gameplay
	EditorMode   bool          // Enemy AI is frozen while editing
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		WorldID:   "crypt",
		FrameRate: 30,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// Clock returns the current time. Sessions take one so tests can freeze time.
type Clock func() time.Time

// SystemClock is the wall clock.
func SystemClock() time.Time {
	return time.Now()
}
