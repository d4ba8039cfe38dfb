package cache

import (
	"errors"
	"log/slog"
	"time"
)

// Tiered consults a fast front cache before a persistent back cache.
// Back-tier hits are promoted into the front tier.
type Tiered struct {
	front    Cache
	back     Cache
	frontTTL time.Duration
	logger   *slog.Logger
}

// NewTiered combines two caches. frontTTL bounds how long promoted entries live in front.
// A nil logger uses slog.Default.
func NewTiered(front, back Cache, frontTTL time.Duration, logger *slog.Logger) *Tiered {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tiered{front: front, back: back, frontTTL: frontTTL, logger: logger}
}

func (t *Tiered) Get(key string) ([]byte, bool) {
	if data, ok := t.front.Get(key); ok {
		return data, true
	}
	data, ok := t.back.Get(key)
	if !ok {
		return nil, false
	}
	if err := t.front.Set(key, data, t.frontTTL); err != nil {
		t.logger.Debug("failed to promote cache entry", "key", key, "error", err)
	}
	return data, true
}

func (t *Tiered) Set(key string, data []byte, ttl time.Duration) error {
	frontTTL := ttl
	if t.frontTTL > 0 && t.frontTTL < frontTTL {
		frontTTL = t.frontTTL
	}
	return errors.Join(t.front.Set(key, data, frontTTL), t.back.Set(key, data, ttl))
}

func (t *Tiered) Clear() error {
	return errors.Join(t.front.Clear(), t.back.Clear())
}

func (t *Tiered) Close() error {
	return errors.Join(t.front.Close(), t.back.Close())
}
