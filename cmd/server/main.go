package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marco/movieDeck/internal/app"
	"github.com/marco/movieDeck/internal/browse"
	"github.com/marco/movieDeck/internal/config"
	"github.com/marco/movieDeck/internal/server"
	"github.com/marco/movieDeck/internal/warmup"
)

var (
	configPath = flag.String("config", "./config/config.yaml", "Path to configuration file")
	addr       = flag.String("addr", "", "Listen address (overrides server.addr)")
	verbose    = flag.Bool("verbose", false, "Show detailed logging")
	noWatch    = flag.Bool("no-watch", false, "Do not reload the config file on change")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	rt, err := app.Build(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*noWatch {
		w, err := app.WatchConfig(*configPath, rt.Client, slog.Default())
		if err != nil {
			slog.Warn("config watcher disabled", "error", err)
		} else {
			defer w.Stop()
		}
	}

	if cfg.Warmup.Enabled && cfg.Cache.Enabled {
		warmer := warmup.NewWarmer(rt.Client, cfg.Warmup.Pages, cfg.Warmup.Workers, slog.Default())
		sched := warmup.NewScheduler(warmer, time.Duration(cfg.Warmup.IntervalMinutes)*time.Minute, *cfg.Warmup.OnStartup)
		go sched.Run(ctx)
	}

	svc := browse.NewService(rt.Client, slog.Default())
	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: server.New(svc, server.Config{
			AllowedOrigins:    cfg.Server.AllowedOrigins,
			RequestsPerMinute: cfg.Server.RequestsPerMinute,
			RequestTimeout:    time.Duration(cfg.TMDB.TimeoutSeconds*cfg.TMDB.MaxAttempts) * time.Second,
		}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr, "language", cfg.TMDB.Language)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
