package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexpop/internal/games/hexpop"
	"github.com/vovakirdan/hexpop/internal/platform/tui"
)

// setupLogger builds the process logger from --log-level and --log-file and
// hands it to the game and TUI packages. Full-screen commands pass
// interactive, which discards logs unless a log file is given.
// The returned func closes the log file.
func setupLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "hexpop",
		Level:           level,
	})
	hexpop.SetLogger(logger)
	tui.SetLogger(logger)
	return logger, closer, nil
}

// mustSetupLogger is setupLogger for commands that exit on error.
func mustSetupLogger(interactive bool) (*log.Logger, func()) {
	logger, closer, err := setupLogger(interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closer
}
