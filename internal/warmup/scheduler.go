package warmup

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Scheduler repeats warm-up passes on a fixed interval.
type Scheduler struct {
	warmer    *Warmer
	interval  time.Duration
	onStartup bool
	running   atomic.Bool
}

// NewScheduler creates a scheduler; onStartup runs a pass before the first tick.
func NewScheduler(w *Warmer, interval time.Duration, onStartup bool) *Scheduler {
	return &Scheduler{warmer: w, interval: interval, onStartup: onStartup}
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("scheduled warm-up started",
		"interval_minutes", s.interval.Minutes(),
		"run_on_startup", s.onStartup,
	)

	if s.onStartup {
		s.RunOnce(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			slog.Info("scheduled warm-up stopped")
			return
		}
	}
}

// RunOnce performs one pass unless the previous one is still running.
// It reports whether a pass ran.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		slog.Warn("warm-up skipped: previous run still in progress",
			"interval_minutes", s.interval.Minutes(),
			"suggestion", "consider increasing warmup.interval_minutes")
		return false
	}
	defer s.running.Store(false)

	if _, err := s.warmer.Warm(ctx); err != nil {
		slog.Warn("warm-up did not finish", "error", err)
	}
	return true
}
