package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides holds settings read from TILEQUEST_* environment variables.
// Zero values leave the loaded configuration untouched.
type EnvOverrides struct {
	ConfigPath   string `env:"CONFIG"`
	Difficulty   string `env:"DIFFICULTY"`
	World        string `env:"WORLD"`
	TickMS       int    `env:"TICK_MS"`
	Seed         int64  `env:"SEED"`
	GodMode      bool   `env:"GOD_MODE"`
	DBPath       string `env:"DB"`
	OTLPEndpoint string `env:"OTLP_ENDPOINT"`
}

// ParseEnv loads overrides from the environment.
func ParseEnv() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: "TILEQUEST_"}); err != nil {
		return o, fmt.Errorf("config: parse env: %w", err)
	}
	return o, nil
}

// Apply copies the non-zero gameplay overrides into cfg.
func (o EnvOverrides) Apply(cfg *GameConfig) {
	if o.TickMS > 0 {
		cfg.Enemies.TickIntervalMS = o.TickMS
	}
	if o.GodMode {
		cfg.Player.GodMode = true
	}
}
