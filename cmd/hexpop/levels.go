package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexpop/internal/config"
	"github.com/vovakirdan/hexpop/internal/games/hexpop"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Work with campaign level files",
	Long: `List, show and validate campaign levels. The builtin levels are used
unless --levels points at a directory.

Examples:
  hexpop levels list
  hexpop levels show 01-warmup
  hexpop levels validate ./my-levels`,
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaign levels",
	Args:  cobra.NoArgs,
	Run:   runLevelsList,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a level as text",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsShow,
}

var levelsValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check every level file in a directory",
	Args:  cobra.MaximumNArgs(1),
	Run:   runLevelsValidate,
}

func init() {
	levelsCmd.AddCommand(levelsListCmd, levelsShowCmd, levelsValidateCmd)
}

func levelLoader(dir string) *levels.Loader {
	if dir == "" {
		return levels.Builtin()
	}
	return levels.NewLoader(dir)
}

func runLevelsList(_ *cobra.Command, _ []string) {
	lvls, err := hexpop.LoadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-3s  %-16s  %-20s  %-6s  %-6s  %s\n", "#", "ID", "Name", "Size", "Colors", "Pieces")
	for i, l := range lvls {
		fmt.Printf("  %-3d  %-16s  %-20s  %-6s  %-6d  %d\n",
			i+1, l.ID, l.Name, fmt.Sprintf("%dx%d", l.Rows, l.Cols), l.Colors, len(l.Cells))
	}
}

func runLevelsShow(_ *cobra.Command, args []string) {
	lvl, err := levelLoader(flagLevelsDir).LoadByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadHexPop(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	board := hexpop.Simulate(hexpop.SimOptions{Config: cfg, Level: &lvl})

	fmt.Printf("%s (%s) %dx%d, %d colors\n\n", lvl.Name, lvl.ID, lvl.Rows, lvl.Cols, lvl.Colors)
	fmt.Println(board.Board)
	for k, v := range lvl.Metadata {
		fmt.Printf("\n%s: %s", k, v)
	}
	if len(lvl.Metadata) > 0 {
		fmt.Println()
	}
}

func runLevelsValidate(_ *cobra.Command, args []string) {
	logger, closeLog := mustSetupLogger(false)
	defer closeLog()

	dir := flagLevelsDir
	if len(args) > 0 {
		dir = args[0]
	}
	loader := levelLoader(dir)

	lvls, bad, err := loader.Scan()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, l := range lvls {
		logger.Debug("level ok", "id", l.ID, "file", l.FilePath)
	}
	for _, fe := range bad {
		fmt.Printf("FAIL  %v\n", fe)
	}
	fmt.Printf("%d valid, %d invalid in %s\n", len(lvls), len(bad), loader.Root)

	if len(bad) > 0 {
		os.Exit(1)
	}
}
