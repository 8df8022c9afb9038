// tilequest is a tile-based adventure played in the terminal.
//
// Usage:
//
//	tilequest list             - List available worlds
//	tilequest play <world>     - Play a world
//	tilequest menu             - Pick worlds interactively
//	tilequest serve            - Start SSH server for remote play
//	tilequest runs [world]     - Show run history
//
// Global flags:
//
//	--config <path>      - Custom game config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--fps <rate>         - Set animation frame rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.tilequest/runs.db)
//
// Settings can also come from TILEQUEST_* environment variables or a .env file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilequest/internal/config"
	"github.com/vovakirdan/tilequest/internal/telemetry"

	// Register the built-in worlds
	_ "github.com/vovakirdan/tilequest/internal/content"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagFPS        int
	flagDBPath     string
	flagGod        bool

	// env holds TILEQUEST_* overrides, read once at start.
	env config.EnvOverrides
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is fine
	_ = godotenv.Load()

	var err error
	env, err = config.ParseEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx := context.Background()
	if telemetry.Enabled(env.OTLPEndpoint) {
		shutdown, setupErr := telemetry.Setup(ctx, env.OTLPEndpoint)
		if setupErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: tracing disabled: %v\n", setupErr)
		} else {
			defer shutdown(ctx) //nolint:errcheck // Best-effort flush on exit
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "tilequest",
	Short: "TileQuest - a tile adventure in your terminal",
	Long: `TileQuest is a room-by-room tile adventure. Explore 8x8 rooms, collect
keys and potions, fight what lurks in the dark and pick a new skill every
other level.

Available commands:
  list     - Show all available worlds
  play     - Play a world directly
  menu     - Interactive world picker
  serve    - Start SSH server for remote play
  runs     - View run history

Examples:
  tilequest list
  tilequest play crypt
  tilequest play --world-file ./my-world.yaml --watch
  tilequest serve --ssh :2222
  tilequest runs crypt`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Animation frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilequest/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().BoolVar(&flagGod, "god", false, "Take no damage")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
