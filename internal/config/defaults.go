package config

import (
	_ "embed"
)

//go:embed defaults/tilequest.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the hardcoded configuration.
// It mirrors defaults/tilequest.yaml and is only used when the embedded file fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Player: PlayerConfig{
			BaseMaxLives: 3,
			MaxKeys:      9,
		},
		Progression: ProgressionConfig{
			MaxLevel:     10,
			XPBase:       10,
			XPGrowth:     1.5,
			MinThreshold: 5,
			XPBoost:      0.5,
		},
		Combat: CombatConfig{
			MissChance:           0.25,
			StealthMissChance:    0.1,
			StealthMaxDamage:     2,
			RoomChangeCooldownMS: 800,
		},
		Enemies: EnemyConfig{
			TickIntervalMS:  600,
			VisionRange:     2,
			AlertDurationMS: 1200,
			RoomCap:         6,
		},
		Lifecycle: LifecycleConfig{
			GameOverCooldownMS: 2000,
		},
		Overlays: OverlayConfig{
			CelebrationMS:    1500,
			TransitionFrames: 8,
			DialogPageRunes:  120,
			EdgeFlashMS:      250,
			IndicatorMS:      700,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Scaling: ScalingConfig{
				TickReduction:    0.4,
				MissChanceFactor: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
