package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/core"
	"github.com/vovakirdan/tilequest/internal/storage"
)

// gameConfig loads the game config and applies the difficulty preset, the
// environment and the command-line flags, in that order.
func gameConfig() (config.GameConfig, error) {
	path := flagConfig
	if path == "" {
		path = env.ConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	preset := flagDifficulty
	if preset == "" {
		preset = env.Difficulty
	}
	if preset != "" {
		p, ok := config.ParsePreset(preset)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", preset)
		}
		config.ApplyPreset(&cfg, p)
	}

	env.Apply(&cfg)
	if flagGod {
		cfg.Player.GodMode = true
	}
	return cfg, nil
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return env.Seed
}

// runtimeConfig describes how the front end paces a world.
func runtimeConfig(worldID string) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.WorldID = worldID
	rc.FrameRate = flagFPS
	rc.Seed = seed()
	rc.EditorMode = flagFreeze
	return rc
}

func dbPath(cmd *cobra.Command) string {
	if !cmd.Flags().Changed("db") && env.DBPath != "" {
		return env.DBPath
	}
	return flagDBPath
}

// openStore opens the runs database. Play goes on without history when it
// cannot be opened.
func openStore(cmd *cobra.Command) *storage.Store {
	store, err := storage.Open(dbPath(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// fileLogger logs to ~/.tilequest/tilequest.log so that the alt screen
// stays clean. The returned close func is never nil.
func fileLogger() (*log.Logger, func()) {
	dir := config.UserDataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "tilequest.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilequest",
	})
	return logger, func() { f.Close() }
}
