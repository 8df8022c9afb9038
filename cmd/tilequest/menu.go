package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilequest/internal/platform/tui"
	"github.com/vovakirdan/tilequest/internal/registry"
	"github.com/vovakirdan/tilequest/internal/session"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start tilequest with a world picker menu",
	Long: `Start tilequest in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a world.
Leaving a world returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select world
  Tab          - Run history
  Q            - Quit

Examples:
  tilequest menu
  tilequest menu --difficulty easy
  tilequest menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	cfg, err := gameConfig()
	if err != nil {
		return err
	}
	store := openStore(cmd)
	if store != nil {
		defer store.Close()
	}
	logger, closeLog := fileLogger()
	defer closeLog()

	width, height := 80, 24
	if w, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
		width, height = w, h
	}

	for {
		result, err := tui.RunMenu(store, width, height)
		if err != nil {
			return err
		}
		if result.Quit {
			return nil
		}

		if result.WantsRuns {
			goBack, runsErr := tui.RunRuns(store, width, height)
			if runsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", runsErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		def, cat, err := registry.Create(result.WorldID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating world: %v\n", err)
			continue
		}
		runErr := tui.Run(tui.RunOptions{
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
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running world: %v\n", runErr)
		}
	}
}
