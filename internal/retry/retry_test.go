package retry

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatus() int { return int(s) }

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	var logged []int
	err := Retry(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return statusErr(503)
		}
		return nil
	}, 3, time.Millisecond, func(attempt, max int, backoff time.Duration, err error) {
		logged = append(logged, attempt)
	})

	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
	if !reflect.DeepEqual(logged, []int{1, 2}) {
		t.Errorf("expected retries logged for attempts [1 2], got %v", logged)
	}
}

func TestRetry_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return statusErr(404)
	}, 5, time.Millisecond, nil)

	if err == nil {
		t.Fatal("expected an error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call for a non-retryable error, got %d", calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), func(ctx context.Context) error {
		calls++
		return statusErr(500)
	}, 3, time.Millisecond, nil)

	var sc StatusCoder
	if !errors.As(err, &sc) {
		t.Fatalf("expected a status error, got %v", err)
	}
	if sc.HTTPStatus() != 500 {
		t.Errorf("expected status 500, got %d", sc.HTTPStatus())
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, func(ctx context.Context) error {
			calls++
			return statusErr(502)
		}, 5, time.Hour, nil)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("retry did not return after cancellation")
	}
	if calls != 1 {
		t.Errorf("expected 1 call before cancellation, got %d", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"server error", statusErr(502), true},
		{"not found", statusErr(404), false},
		{"unauthorized", statusErr(401), false},
		{"wrapped server error", fmt.Errorf("fetch: %w", statusErr(500)), true},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"cancelled", context.Canceled, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	if !IsRateLimited(statusErr(429)) {
		t.Error("expected 429 to be rate limited")
	}
	if IsRateLimited(statusErr(503)) {
		t.Error("expected 503 not to be rate limited")
	}
	if IsRateLimited(errors.New("status 429")) {
		t.Error("expected a plain error not to be rate limited")
	}
}
