// Package main is the entry point for batglance. It loads configuration,
// starts the power log service, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"batglance/internal/app"
	"batglance/internal/config"
	"batglance/internal/services"
	"batglance/internal/ui/tabs/dashboard"
	"batglance/internal/ui/tabs/history"
	"batglance/internal/ui/tabs/info"
	"batglance/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Starts the background power log refresh loop.
	svcManager := services.NewManager(cfg)

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab receives the shared application state for consistent data access.
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state),
		history.New(state),
		info.New(state, cfg, svcManager.SourceDescription()),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`batglance - screen time and battery drain since last charge

Usage:
  batglance [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Dashboard, History, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Scroll
  t               Toggle history chart (History tab)
  r               Re-read the power log
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  BATGLANCE_REFRESH_INTERVAL  How often the power log is re-read (default: 15m)
  BATGLANCE_PMSET_PATH        pmset binary to invoke (default: pmset)
  BATGLANCE_LOG_FILE          Read a saved power log file instead of running pmset
  BATGLANCE_HISTORY_SIZE      In-session reading history size (default: 96)
  BATGLANCE_NOTIFY            Desktop notifications on/off (default: true)
  BATGLANCE_DRAIN_ALERT       Screen drain alert threshold in %/h (default: 20)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/batglance/.env
  - ~/.batglance.env`)
}
