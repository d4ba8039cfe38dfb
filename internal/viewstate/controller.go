// Package viewstate drives a view through Idle, Loading, Success and Failed
// while guaranteeing that only the response for the latest key is shown.
package viewstate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle position of a view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is a snapshot of a view. Data keeps the last successful value while
// a new request is loading; Error holds the user-facing message on failure.
type State[T any] struct {
	Status    Status
	Data      T
	Error     string
	RequestID string
}

// Loading reports whether a request is in flight.
func (s State[T]) Loading() bool { return s.Status == StatusLoading }

// Loader fetches the data for one key. It must honour ctx cancellation.
type Loader[K comparable, T any] func(ctx context.Context, key K) (T, error)

// Config tunes a Controller.
type Config[T any] struct {
	Name         string         // used in log lines
	ErrorMessage string         // shown instead of the underlying error
	Timeout      time.Duration  // per-request timeout, 0 = none
	Logger       *slog.Logger   // defaults to slog.Default()
	OnChange     func(State[T]) // called after every state change, in order
}

// Controller binds a key to a Loader. Only the most recent Bind or Refresh
// may publish a result; older in-flight requests are cancelled and their
// results discarded.
type Controller[K comparable, T any] struct {
	loader Loader[K, T]
	cfg    Config[T]
	logger *slog.Logger

	mu         sync.Mutex
	key        K
	bound      bool
	generation uint64
	version    uint64
	state      State[T]
	cancel     context.CancelFunc
	closed     bool
	wg         sync.WaitGroup

	notifyMu  sync.Mutex
	delivered uint64
}

// New creates an idle controller.
func New[K comparable, T any](loader Loader[K, T], cfg Config[T]) *Controller[K, T] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Name != "" {
		logger = logger.With("view", cfg.Name)
	}
	if cfg.ErrorMessage == "" {
		cfg.ErrorMessage = "failed to load data"
	}
	return &Controller[K, T]{loader: loader, cfg: cfg, logger: logger}
}

// Bind points the controller at key and starts loading it. Binding the key
// that is already bound is a no-op; use Refresh to force a reload.
func (c *Controller[K, T]) Bind(key K) {
	c.mu.Lock()
	if c.closed || (c.bound && c.key == key) {
		c.mu.Unlock()
		return
	}
	c.key = key
	c.bound = true
	st, v := c.startLocked()
	c.mu.Unlock()
	c.notify(st, v)
}

// Refresh reloads the bound key. It does nothing before the first Bind.
func (c *Controller[K, T]) Refresh() {
	c.mu.Lock()
	if c.closed || !c.bound {
		c.mu.Unlock()
		return
	}
	st, v := c.startLocked()
	c.mu.Unlock()
	c.notify(st, v)
}

// Reset cancels any in-flight request and returns to Idle with no key bound.
func (c *Controller[K, T]) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelLocked()
	c.generation++
	var zero K
	c.key = zero
	c.bound = false
	c.state = State[T]{Status: StatusIdle}
	c.version++
	st, v := c.state, c.version
	c.mu.Unlock()
	c.notify(st, v)
}

// Key returns the bound key and whether one is bound.
func (c *Controller[K, T]) Key() (K, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key, c.bound
}

// State returns the current snapshot.
func (c *Controller[K, T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close cancels the in-flight request and waits for its goroutine to exit.
// No state change is published after Close returns.
func (c *Controller[K, T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.cancelLocked()
	c.generation++
	c.mu.Unlock()
	c.wg.Wait()
}

func (c *Controller[K, T]) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// startLocked supersedes the current request with a new one for c.key.
func (c *Controller[K, T]) startLocked() (State[T], uint64) {
	c.cancelLocked()
	c.generation++

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.cfg.Timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.cfg.Timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	c.cancel = cancel

	reqID := uuid.NewString()
	c.state = State[T]{Status: StatusLoading, Data: c.state.Data, RequestID: reqID}
	c.version++

	c.wg.Add(1)
	go c.run(ctx, cancel, c.generation, c.key, reqID)

	return c.state, c.version
}

func (c *Controller[K, T]) run(ctx context.Context, cancel context.CancelFunc, gen uint64, key K, reqID string) {
	defer c.wg.Done()
	defer cancel()

	start := time.Now()
	data, err := c.loader(ctx, key)

	c.mu.Lock()
	if gen != c.generation || c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding stale response",
			"request_id", reqID,
			"generation", gen,
			"error", err,
		)
		return
	}
	c.cancel = nil
	if err != nil {
		c.state = State[T]{Status: StatusFailed, Error: c.cfg.ErrorMessage, RequestID: reqID}
	} else {
		c.state = State[T]{Status: StatusSuccess, Data: data, RequestID: reqID}
	}
	c.version++
	st, v := c.state, c.version
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("load failed",
			"request_id", reqID,
			"key", key,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		c.logger.Debug("load complete",
			"request_id", reqID,
			"key", key,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	c.notify(st, v)
}

// notify delivers st unless a newer state has already been delivered.
func (c *Controller[K, T]) notify(st State[T], version uint64) {
	if c.cfg.OnChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if version <= c.delivered {
		return
	}
	c.delivered = version
	c.cfg.OnChange(st)
}
