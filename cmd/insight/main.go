package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"insight/internal/backend"
	"insight/internal/preview"
	"insight/internal/theme"
	"insight/internal/tui"
)

func main() {
	apiURL := flag.String("api", "", "backend base URL (defaults to $INSIGHT_API_URL, then http://localhost:8000)")
	themeFile := flag.String("theme-file", defaultThemePath(), "path to the persisted theme preference")
	logFile := flag.String("log-file", "insight.log", "structured log destination")
	previewChars := flag.Int("preview-chars", 0, "max characters in local document previews (0 = default)")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	logger, err := buildLogger(*logFile, *debug)
	if err != nil {
		fmt.Println("failed to set up logging:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client, err := backend.New(backend.Config{BaseURL: *apiURL})
	if err != nil {
		fmt.Println("backend configuration error:", err)
		os.Exit(1)
	}

	themes := theme.NewStore(*themeFile)

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Backend:  client,
			Themes:   themes,
			Theme:    themes.Load(theme.Detect()),
			Previews: preview.NewStore(*previewChars),
			Logger:   logger,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

// buildLogger writes structured logs to a file so log output never bleeds
// into the terminal the TUI owns.
func buildLogger(path string, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func defaultThemePath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "insight-theme.json")
	}
	return filepath.Join(base, "insight", "theme.json")
}
