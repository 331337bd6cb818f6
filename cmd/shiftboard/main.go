// cmd/shiftboard/main.go
//
// Entry point for the shiftboard TUI. Running `shiftboard` from a store
// directory initializes the .shiftboard folder there and launches the
// board.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/kingrea/shiftboard/internal/ai"
	"github.com/kingrea/shiftboard/internal/config"
	"github.com/kingrea/shiftboard/internal/logbook"
	"github.com/kingrea/shiftboard/internal/store"
	"github.com/kingrea/shiftboard/internal/tui"
)

func main() {
	// A .env next to the binary or in the store dir may carry the Gemini
	// key. Missing files are fine.
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitShiftboardDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .shiftboard directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.New(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "shiftboard.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening logbook: %v\n", err)
		os.Exit(1)
	}

	st := store.New(cfg.StateDir(), cfg.ExportsDir(), cfg.SaveDelay(), lb)
	gemini := ai.NewClient(os.Getenv("GEMINI_API_KEY"))
	if !gemini.Enabled() {
		lb.Warn("GEMINI_API_KEY not set, assisted features disabled")
	}

	app, err := tui.NewApp(cfg, st, lb, gemini)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
