// Package search implements the debounced search box: keystrokes restart a
// timer and only the value that survives the quiet period is fetched.
package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/marco/movieDeck/internal/view"
	"github.com/marco/movieDeck/internal/viewstate"
)

// DefaultDebounce is the quiet period between the last keystroke and the fetch.
const DefaultDebounce = 500 * time.Millisecond

// Searcher runs one search for a trimmed, non-empty query.
type Searcher func(ctx context.Context, query string) ([]view.SearchHit, error)

// Config tunes a QueryController.
type Config struct {
	Debounce     time.Duration
	ErrorMessage string
	Timeout      time.Duration
	Logger       *slog.Logger
	OnChange     func(Snapshot)
}

// Snapshot is what the search box renders.
type Snapshot struct {
	Query     string
	Results   []view.SearchHit
	Loading   bool
	Pending   bool // a debounce timer is running
	Error     string
	Dismissed bool // closed by the user until the next Input
	Open      bool // dropdown visible
}

// QueryController debounces input and keeps only the latest query's results.
type QueryController struct {
	ctrl     *viewstate.Controller[string, []view.SearchHit]
	debounce time.Duration
	onChange func(Snapshot)
	logger   *slog.Logger

	// bindMu serializes timer callbacks with Input so a superseded timer
	// can never bind after a newer input.
	bindMu    sync.Mutex
	publishMu sync.Mutex

	mu        sync.Mutex
	query     string
	seq       uint64
	dismissed bool
	timer     *time.Timer
}

// NewQueryController creates a controller around search.
func NewQueryController(search Searcher, cfg Config) *QueryController {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	q := &QueryController{
		debounce: cfg.Debounce,
		onChange: cfg.OnChange,
		logger:   logger,
	}
	q.ctrl = viewstate.New(viewstate.Loader[string, []view.SearchHit](search), viewstate.Config[[]view.SearchHit]{
		Name:         "search",
		ErrorMessage: cfg.ErrorMessage,
		Timeout:      cfg.Timeout,
		Logger:       logger,
		OnChange: func(viewstate.State[[]view.SearchHit]) {
			q.publish()
		},
	})
	return q
}

// Input records the current text of the search box. A blank query clears
// the results at once; anything else is fetched after the debounce period.
func (q *QueryController) Input(text string) {
	q.bindMu.Lock()
	defer q.bindMu.Unlock()

	trimmed := strings.TrimSpace(text)

	q.mu.Lock()
	q.query = text
	q.dismissed = false
	q.seq++
	seq := q.seq
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	if trimmed != "" {
		q.timer = time.AfterFunc(q.debounce, func() { q.fire(seq, trimmed) })
	}
	q.mu.Unlock()

	if trimmed == "" {
		q.ctrl.Reset()
	}
	q.publish()
}

func (q *QueryController) fire(seq uint64, query string) {
	q.bindMu.Lock()
	defer q.bindMu.Unlock()

	q.mu.Lock()
	current := seq == q.seq
	if current {
		q.timer = nil
	}
	q.mu.Unlock()
	if !current {
		return
	}

	q.logger.Debug("search debounce fired", "query", query)
	q.ctrl.Bind(query)
	q.publish()
}

// Dismiss closes the dropdown until the next Input.
func (q *QueryController) Dismiss() {
	q.mu.Lock()
	q.dismissed = true
	q.mu.Unlock()
	q.publish()
}

// Clear empties the box, as a clear button would.
func (q *QueryController) Clear() {
	q.Input("")
}

// Snapshot returns the current render state.
func (q *QueryController) Snapshot() Snapshot {
	st := q.ctrl.State()

	q.mu.Lock()
	defer q.mu.Unlock()

	snap := Snapshot{
		Query:     q.query,
		Results:   st.Data,
		Loading:   st.Loading(),
		Pending:   q.timer != nil,
		Error:     st.Error,
		Dismissed: q.dismissed,
	}
	if snap.Results == nil {
		snap.Results = []view.SearchHit{}
	}
	// a pending debounce counts as loading so "no results" is not flashed
	// before the first fetch has even started
	snap.Open = !q.dismissed &&
		strings.TrimSpace(q.query) != "" &&
		(len(snap.Results) > 0 || !(snap.Loading || snap.Pending))
	return snap
}

// Close stops the timer and cancels any in-flight search.
func (q *QueryController) Close() {
	q.mu.Lock()
	q.seq++
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.mu.Unlock()
	q.ctrl.Close()
}

// publish computes and delivers the snapshot under publishMu so the last
// delivered snapshot always reflects the latest state.
func (q *QueryController) publish() {
	if q.onChange == nil {
		return
	}
	q.publishMu.Lock()
	defer q.publishMu.Unlock()
	q.onChange(q.Snapshot())
}
