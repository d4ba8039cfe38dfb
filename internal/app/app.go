// Package app wires configuration into the catalog client shared by the
// server and the terminal browser.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/marco/movieDeck/internal/catalog"
	"github.com/marco/movieDeck/internal/catalog/cache"
	"github.com/marco/movieDeck/internal/config"
)

// Runtime holds the long-lived objects built from a Config.
type Runtime struct {
	Client *catalog.Client
	Cache  cache.Cache // nil when caching is disabled
}

// Close releases the cache.
func (r *Runtime) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

// Build creates the response cache (memory in front of SQLite) and the
// catalog client. Retry and cache events are logged through logger.
func Build(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rt := &Runtime{}
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute

	if cfg.Cache.Enabled {
		back, err := cache.NewSQLiteCache(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open response cache: %w", err)
		}
		if n, err := back.Purge(); err != nil {
			logger.Warn("cache purge failed", "error", err)
		} else if n > 0 {
			logger.Info("purged expired cache entries", "count", n)
		}
		front := cache.NewMemoryCache(cfg.Cache.MemoryEntries, ttl)
		rt.Cache = cache.NewTiered(front, back, ttl, logger)
		logger.Info("response cache enabled",
			"path", cfg.Cache.Path,
			"ttl_minutes", cfg.Cache.TTLMinutes,
			"memory_entries", cfg.Cache.MemoryEntries,
		)
	}

	rt.Client = catalog.NewClientWithConfig(catalog.ClientConfig{
		APIKey:           cfg.TMDB.APIKey,
		Language:         cfg.TMDB.Language,
		BaseURL:          cfg.TMDB.BaseURL,
		ImageBaseURL:     cfg.TMDB.ImageBaseURL,
		Timeout:          time.Duration(cfg.TMDB.TimeoutSeconds) * time.Second,
		RequestsPerSec:   cfg.TMDB.RequestsPerSec,
		MaxAttempts:      cfg.TMDB.MaxAttempts,
		InitialBackoffMs: cfg.TMDB.InitialBackoffMs,
		RetryLogFunc: func(attempt, maxAttempts int, backoff time.Duration, err error) {
			logger.Warn("catalog request failed, retrying",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"backoff_ms", backoff.Milliseconds(),
				"error", err,
			)
		},
		Cache:    rt.Cache,
		CacheTTL: ttl,
		CacheLogFunc: func(op, key string, hit bool) {
			logger.Debug("cache", "op", op, "key", key, "hit", hit)
		},
	})
	return rt, nil
}

// WatchConfig reloads path on change and applies the settings that can
// change at runtime (currently the request language).
func WatchConfig(path string, client *catalog.Client, logger *slog.Logger) (*config.Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return config.NewWatcher(path, 500*time.Millisecond, func(cfg *config.Config) {
		if cfg.TMDB.Language != client.Language() {
			logger.Info("language changed", "from", client.Language(), "to", cfg.TMDB.Language)
			client.SetLanguage(cfg.TMDB.Language)
		}
	})
}
