package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start HexPop with a mode and level picker",
	Long: `Start HexPop in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Leave a finished or paused game with Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Esc          - Back
  Q            - Quit

Examples:
  hexpop menu
  hexpop menu --fps 30
  hexpop menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	_, closeLog := mustSetupLogger(true)
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	cfg := terminalConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := tui.CreateGame(result.GameID, result.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Fresh board for every game unless a seed was given.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			return
		}
	}
}
