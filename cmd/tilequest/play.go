package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/content"
	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/session"
	"github.com/vovakirdan/tilequest/internal/world"
)

var (
	flagWorldFile string
	flagWatch     bool
	flagFreeze    bool
)

var playCmd = &cobra.Command{
	Use:   "play [world]",
	Short: "Play a world",
	Long: `Start playing the specified world.

Controls:
  Arrows/WASD  - Move, bump enemies to fight, bump people to talk
  Enter/Space  - Confirm, next dialog page
  Esc          - Close dialog, leave after game over
  P            - Pause
  R            - Restart (after game over)
  V            - Rise again (with the Necromancer skill)
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More lives, more enemy misses, slower enemies
  normal - Default pacing that ramps with your level
  hard   - Fewer lives, fewer misses, faster enemies
  fixed  - No ramp, stays at the config's initial level

Examples:
  tilequest play crypt
  tilequest play crypt --difficulty hard
  tilequest play --world-file ./my-world.yaml --watch --freeze`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagWorldFile, "world-file", "", "Play a world YAML file instead of a built-in world")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload --world-file whenever it changes")
	playCmd.Flags().BoolVar(&flagFreeze, "freeze", false, "Freeze enemies, for walking through a world under edit")
}

// loadWorld resolves the world to play from the file flag, the argument or
// TILEQUEST_WORLD.
func loadWorld(args []string) (*world.Definition, *world.Catalog, error) {
	if flagWorldFile != "" {
		return content.LoadWorldFile(flagWorldFile)
	}
	id := env.World
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		return nil, nil, errors.New("no world given; run 'tilequest list' to see available worlds")
	}
	if !registry.Exists(id) {
		return nil, nil, fmt.Errorf("unknown world %q; run 'tilequest list' to see available worlds", id)
	}
	return registry.Create(id)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if flagWatch && flagWorldFile == "" {
		return errors.New("--watch needs --world-file")
	}
	cfg, err := gameConfig()
	if err != nil {
		return err
	}
	def, cat, err := loadWorld(args)
	if err != nil {
		return err
	}

	store := openStore(cmd)
	if store != nil {
		defer store.Close()
	}
	logger, closeLog := fileLogger()
	defer closeLog()

	opts := tui.RunOptions{
		Model: tui.ModelOptions{
			Session: session.Options{
				Config:     cfg,
				Catalog:    cat,
				Definition: def,
				Logger:     logger,
			},
			Store:   store,
			Logger:  logger,
			Runtime: runtimeConfig(def.ID),
		},
	}
	if flagWatch {
		opts.WatchPath = flagWorldFile
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running world: %w", err)
	}
	return nil
}
