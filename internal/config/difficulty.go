package config

import (
	"math"
	"time"
)

// DifficultyManager scales enemy pressure with the player's level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
	maxLevel     int
}

// NewDifficultyManager creates a new difficulty manager.
// maxLevel is the player level at which maximum difficulty is reached.
func NewDifficultyManager(cfg DifficultyConfig, maxLevel int) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
		maxLevel:     maxLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) for a player level.
func (d *DifficultyManager) Level(playerLevel int) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}

	span := float64(d.maxLevel - 1)
	if span <= 0 {
		span = 1 // Prevent division by zero
	}
	progress := clampF(float64(playerLevel-1)/span, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// TickInterval returns the enemy tick interval for a player level.
func (d *DifficultyManager) TickInterval(base time.Duration, playerLevel int) time.Duration {
	level := d.Level(playerLevel)
	result := time.Duration(math.Round(float64(base) * (1.0 - level*d.cfg.Scaling.TickReduction)))
	if result < 100*time.Millisecond { // Minimum readable pace
		result = 100 * time.Millisecond
	}
	return result
}

// MissChance returns the fallback miss chance for a player level.
// Enemies get more accurate as difficulty rises.
func (d *DifficultyManager) MissChance(base float64, playerLevel int) float64 {
	level := d.Level(playerLevel)
	return clampF(base*(1.0-level*d.cfg.Scaling.MissChanceFactor), 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
