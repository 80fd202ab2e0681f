package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexpop/internal/core"
	"github.com/vovakirdan/hexpop/internal/platform/tui"
	"github.com/vovakirdan/hexpop/internal/registry"
	"github.com/vovakirdan/hexpop/internal/storage"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode. Without a mode the campaign starts.

Controls:
  Left/Right, A/D  - Aim
  Space/Enter      - Fire
  Tab/X            - Swap current and next piece
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot to ~/.hexpop/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer colors, more shots per row; progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - More colors and rows, start at 70% difficulty
  fixed  - No progression, stays at config's initial level

Examples:
  hexpop play
  hexpop play --level 3
  hexpop play hexpop_endless --difficulty hard
  hexpop play --levels ./my-levels
  hexpop play --config ./hexpop.toml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Campaign level to start from (1-indexed)")
}

// terminalConfig returns a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. The game still runs without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "hexpop"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'hexpop list' to see available modes.")
		os.Exit(1)
	}

	_, closeLog := mustSetupLogger(true)
	defer closeLog()

	game, err := tui.CreateGame(gameID, flagStartLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	_, runErr := tui.Run(game, store, terminalConfig())
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
