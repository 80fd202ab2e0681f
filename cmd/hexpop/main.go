// hexpop is a hex-grid bubble shooter for the terminal.
//
// Usage:
//
//	hexpop list              - List game modes
//	hexpop play [mode]       - Play a mode (default: hexpop)
//	hexpop menu              - Pick a mode or level interactively
//	hexpop levels            - List and validate level files
//	hexpop sim               - Run a headless autoplay simulation
//	hexpop scores <mode>     - Show high scores for a mode
//	hexpop serve             - Serve the game over SSH
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.hexpop/scores.db)
//	--config <path>       - Use a custom YAML or TOML config
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--levels <dir>        - Load campaign levels from a directory
//	--theme <name>        - Color theme: classic, neon
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-file <path>     - Append logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/games/hexpop"
	"github.com/vovakirdan/hexpop/internal/platform/tui"
	"github.com/vovakirdan/hexpop/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagTheme      string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexpop",
	Short: "HexPop - a hex-grid bubble shooter for your terminal",
	Long: `HexPop is a bubble shooter played on a hexagonal grid. Aim the launcher,
bank shots off the walls and match three or more pieces of one color.
Pieces left hanging without support fall for bonus points.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode and level picker
  levels   - List or validate level files
  sim      - Headless autoplay for testing boards and physics
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  hexpop play
  hexpop play hexpop_endless --difficulty hard
  hexpop menu --theme neon
  hexpop sim --shots 200 --seed 7
  hexpop serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return applyGameFlags()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels", "", "Directory with campaign level files (default: builtin levels)")
	pf.StringVar(&flagTheme, "theme", "classic", "Color theme: classic, neon")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyGameFlags hands the global flags to the game and TUI packages.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	theme, ok := tui.ThemeByName(flagTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q (use one of %v)", flagTheme, tui.ThemeNames())
	}

	hexpop.SetConfigPath(flagConfig)
	hexpop.SetDifficultyPreset(flagDifficulty)
	hexpop.SetLevelsDir(flagLevelsDir)
	tui.SetTheme(theme)
	return nil
}
