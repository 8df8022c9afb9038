package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
	flagRunsTUI   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [world]",
	Short: "Show run history",
	Long: `Display recent runs, best run and totals. Without a world, runs of
every world are listed.

Examples:
  tilequest runs
  tilequest runs crypt --limit 20
  tilequest runs crypt --clear
  tilequest runs --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs interactively")
}

func runRuns(cmd *cobra.Command, args []string) error {
	worldID := ""
	if len(args) > 0 {
		worldID = args[0]
		if !registry.Exists(worldID) {
			return fmt.Errorf("unknown world %q; run 'tilequest list' to see available worlds", worldID)
		}
	}

	store, err := storage.Open(dbPath(cmd))
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(worldID); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagRunsTUI {
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
			width, height = w, h
		}
		_, err := tui.RunRuns(store, width, height)
		return err
	}

	runs, err := store.RecentRuns(worldID, flagRunsLimit)
	if err != nil {
		return err
	}

	title := "all worlds"
	if worldID != "" {
		def, _, createErr := registry.Create(worldID)
		if createErr == nil {
			title = def.Title
		}
	}
	fmt.Printf("Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-10s  %-5s  %-5s  %-5s  %-8s  %-24s  %s\n", "World", "Level", "Kills", "Rooms", "Time", "Fate", "Date")
	fmt.Printf("  %-10s  %-5s  %-5s  %-5s  %-8s  %-24s  %s\n", "-----", "-----", "-----", "-----", "----", "----", "----")
	for _, r := range runs {
		fate := r.Outcome
		if r.Cause != "" {
			fate = r.Cause
		}
		fmt.Printf("  %-10s  %-5d  %-5d  %-5d  %-8s  %-24s  %s\n",
			r.WorldID, r.Level, r.Kills, r.RoomsVisited,
			r.Duration.Round(time.Second), fate, r.EndedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.BestRun(worldID); err == nil && best != nil {
		fmt.Printf("Best: level %d, %d kills in %s\n", best.Level, best.Kills, best.Duration.Round(time.Second))
	}
	if stats, err := store.Stats(worldID); err == nil && stats.Runs > 0 {
		fmt.Printf("Total: %d runs, %d kills, %.1f rooms per run\n", stats.Runs, stats.TotalKills, stats.AvgRooms)
	}
	return nil
}
