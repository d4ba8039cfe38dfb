package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marco/movieDeck/internal/app"
	"github.com/marco/movieDeck/internal/browse"
	"github.com/marco/movieDeck/internal/catalog"
	"github.com/marco/movieDeck/internal/config"
	"github.com/marco/movieDeck/internal/tui"
)

var (
	configPath = flag.String("config", "./config/config.yaml", "Path to configuration file")
	kind       = flag.String("kind", "movie", "Starting kind: movie or tv")
	category   = flag.String("category", "popular", "Starting category (popular, now-playing, upcoming, top-rated, airing-today, on-the-air)")
	noMotion   = flag.Bool("no-motion", false, "Static loading indicator (overrides ui.motion_enabled)")
	verbose    = flag.Bool("verbose", false, "Log debug output to the log file")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	k, err := catalog.ParseKind(*kind)
	if err != nil {
		return err
	}

	logger, logFile, err := tui.NewFileLogger(cfg.UI.LogFile, *verbose)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	rt, err := app.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close()

	model, err := tui.New(browse.NewService(rt.Client, logger), tui.Config{
		Kind:     k,
		Category: *category,
		Motion:   cfg.UI.MotionEnabled && !*noMotion,
		Debounce: time.Duration(cfg.UI.DebounceMs) * time.Millisecond,
		Timeout:  time.Duration(cfg.TMDB.TimeoutSeconds*cfg.TMDB.MaxAttempts) * time.Second,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	logger.Info("browser started", "kind", k, "category", *category, "language", cfg.TMDB.Language)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
