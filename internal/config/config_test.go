package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var cfg GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGameConfig()) {
		t.Errorf("embedded defaults diverge from DefaultGameConfig():\n%+v\n%+v", cfg, DefaultGameConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("player:\n  base_max_lives: 7\nenemies:\n  vision_range: 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.BaseMaxLives != 7 || cfg.Enemies.VisionRange != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults
	if cfg.Lifecycle.GameOverCooldownMS != 2000 {
		t.Errorf("expected default cooldown, got %d", cfg.Lifecycle.GameOverCooldownMS)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		lives     int
		enabled   bool
		initLevel float64
	}{
		{DifficultyEasy, 5, true, 0.0},
		{DifficultyNormal, 3, true, 0.3},
		{DifficultyHard, 2, true, 0.7},
		{DifficultyFixed, 3, false, 0.0},
	}

	for _, tt := range tests {
		cfg := DefaultGameConfig()
		ApplyPreset(&cfg, tt.preset)
		if cfg.Player.BaseMaxLives != tt.lives {
			t.Errorf("%s: lives = %d, want %d", tt.preset, cfg.Player.BaseMaxLives, tt.lives)
		}
		if cfg.Difficulty.Enabled != tt.enabled {
			t.Errorf("%s: enabled = %v, want %v", tt.preset, cfg.Difficulty.Enabled, tt.enabled)
		}
		if cfg.Difficulty.InitialLevel != tt.initLevel {
			t.Errorf("%s: initial level = %v, want %v", tt.preset, cfg.Difficulty.InitialLevel, tt.initLevel)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("empty preset = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset accepted")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultGameConfig().Difficulty
	dm := NewDifficultyManager(cfg, 10)

	if got := dm.Level(1); got != 0 {
		t.Errorf("Level(1) = %v, want 0", got)
	}
	if got := dm.Level(10); got != 1 {
		t.Errorf("Level(10) = %v, want 1", got)
	}

	base := 600 * time.Millisecond
	if got := dm.TickInterval(base, 1); got != base {
		t.Errorf("TickInterval at level 1 = %v, want %v", got, base)
	}
	if got := dm.TickInterval(base, 10); got != 360*time.Millisecond {
		t.Errorf("TickInterval at level 10 = %v, want 360ms", got)
	}
	if got := dm.MissChance(0.25, 10); got != 0.125 {
		t.Errorf("MissChance at level 10 = %v, want 0.125", got)
	}

	dm.SetEnabled(false)
	if got := dm.Level(10); got != 0 {
		t.Errorf("disabled manager should stay at initial level, got %v", got)
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("TILEQUEST_TICK_MS", "300")
	t.Setenv("TILEQUEST_GOD_MODE", "true")
	t.Setenv("TILEQUEST_DIFFICULTY", "hard")

	o, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv() failed: %v", err)
	}
	if o.Difficulty != "hard" {
		t.Errorf("Difficulty = %q", o.Difficulty)
	}

	cfg := DefaultGameConfig()
	o.Apply(&cfg)
	if cfg.Enemies.TickIntervalMS != 300 || !cfg.Player.GodMode {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
