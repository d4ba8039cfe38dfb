package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// newBreaker wraps upstream calls so a failing catalog API is not hammered.
// Opens after 60% failures over at least 10 requests; half-opens again after 30s.
func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	BreakerState.Set(0)

	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				slog.Warn("circuit breaker opening",
					"breaker", name,
					"failures", counts.TotalFailures,
					"failure_rate", failureRatio,
				)
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("circuit breaker state transition",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			BreakerState.Set(stateToFloat(to))
		},

		// Client errors and cancellations say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return true
			}
			var fe *FetchError
			if errors.As(err, &fe) {
				return fe.StatusCode < 500 && fe.StatusCode != http.StatusTooManyRequests
			}
			return false
		},
	})
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
