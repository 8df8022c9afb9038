// Package config provides YAML-based game configuration loading and
// difficulty management for tilequest.
package config

import "time"

// GameConfig contains every tunable of a play session.
type GameConfig struct {
	Player      PlayerConfig      `yaml:"player"`
	Progression ProgressionConfig `yaml:"progression"`
	Combat      CombatConfig      `yaml:"combat"`
	Enemies     EnemyConfig       `yaml:"enemies"`
	Lifecycle   LifecycleConfig   `yaml:"lifecycle"`
	Overlays    OverlayConfig     `yaml:"overlays"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// PlayerConfig defines starting resources and caps.
type PlayerConfig struct {
	BaseMaxLives int  `yaml:"base_max_lives"`
	MaxKeys      int  `yaml:"max_keys"`
	GodMode      bool `yaml:"god_mode"`
}

// ProgressionConfig defines the experience curve.
type ProgressionConfig struct {
	MaxLevel     int     `yaml:"max_level"`
	XPBase       float64 `yaml:"xp_base"`       // Threshold of level 1
	XPGrowth     float64 `yaml:"xp_growth"`     // Multiplier per level
	MinThreshold int     `yaml:"min_threshold"` // Floor for any level threshold
	XPBoost      float64 `yaml:"xp_boost"`      // Multiplier granted by the xp-boost skill
}

// CombatConfig defines hit resolution parameters.
type CombatConfig struct {
	MissChance           float64 `yaml:"miss_chance"`             // Fallback when the enemy type has no override
	StealthMissChance    float64 `yaml:"stealth_miss_chance"`     // Chance a stealth assassination fails
	StealthMaxDamage     int     `yaml:"stealth_max_damage"`      // Enemies above this cannot be assassinated
	RoomChangeCooldownMS int     `yaml:"room_change_cooldown_ms"` // Damage grace after changing rooms
}

// EnemyConfig defines AI pacing and world caps.
type EnemyConfig struct {
	TickIntervalMS  int `yaml:"tick_interval_ms"`
	VisionRange     int `yaml:"vision_range"`
	AlertDurationMS int `yaml:"alert_duration_ms"`
	RoomCap         int `yaml:"room_cap"`
}

// LifecycleConfig defines game-over pacing.
type LifecycleConfig struct {
	GameOverCooldownMS int `yaml:"game_over_cooldown_ms"`
}

// OverlayConfig defines transient UI states.
type OverlayConfig struct {
	CelebrationMS    int `yaml:"celebration_ms"`
	TransitionFrames int `yaml:"transition_frames"`
	DialogPageRunes  int `yaml:"dialog_page_runes"`
	EdgeFlashMS      int `yaml:"edge_flash_ms"`
	IndicatorMS      int `yaml:"indicator_ms"`
}

// DifficultyConfig defines how enemy pressure scales with player level.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes at max difficulty.
type ScalingConfig struct {
	TickReduction    float64 `yaml:"tick_reduction"`     // Fraction of the tick interval removed
	MissChanceFactor float64 `yaml:"miss_chance_factor"` // Fraction of the miss chance removed
}

// TickInterval returns the base enemy tick interval.
func (c EnemyConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// AlertDuration returns the alert window length.
func (c EnemyConfig) AlertDuration() time.Duration {
	return time.Duration(c.AlertDurationMS) * time.Millisecond
}

// RoomChangeCooldown returns the damage grace period after a room change.
func (c CombatConfig) RoomChangeCooldown() time.Duration {
	return time.Duration(c.RoomChangeCooldownMS) * time.Millisecond
}

// GameOverCooldown returns how long the game-over screen ignores input.
func (c LifecycleConfig) GameOverCooldown() time.Duration {
	return time.Duration(c.GameOverCooldownMS) * time.Millisecond
}

// Celebration returns how long the level-up celebration stays on screen.
func (c OverlayConfig) Celebration() time.Duration {
	return time.Duration(c.CelebrationMS) * time.Millisecond
}

// EdgeFlash returns how long a blocked-edge cue is shown.
func (c OverlayConfig) EdgeFlash() time.Duration {
	return time.Duration(c.EdgeFlashMS) * time.Millisecond
}

// Indicator returns how long combat feedback text is shown.
func (c OverlayConfig) Indicator() time.Duration {
	return time.Duration(c.IndicatorMS) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset maps a user-supplied name to a preset, defaulting to normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name), true
	case "":
		return DifficultyNormal, true
	default:
		return DifficultyNormal, false
	}
}
