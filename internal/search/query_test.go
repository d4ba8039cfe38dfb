package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marco/movieDeck/internal/view"
)

type recorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *recorder) search(ctx context.Context, query string) ([]view.SearchHit, error) {
	r.mu.Lock()
	r.queries = append(r.queries, query)
	r.mu.Unlock()
	return []view.SearchHit{{ID: 1, Title: query}}, nil
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func TestQueryController_DebouncesKeystrokes(t *testing.T) {
	rec := &recorder{}
	q := NewQueryController(rec.search, Config{Debounce: 40 * time.Millisecond})
	defer q.Close()

	for _, text := range []string{"m", "ma", "mat", "matr", "matrix"} {
		q.Input(text)
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return len(q.Snapshot().Results) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, []string{"matrix"}, rec.calls())
	snap := q.Snapshot()
	assert.Equal(t, "matrix", snap.Results[0].Title)
	assert.True(t, snap.Open)
	assert.False(t, snap.Pending)
}

func TestQueryController_TrimsQuery(t *testing.T) {
	rec := &recorder{}
	q := NewQueryController(rec.search, Config{Debounce: 10 * time.Millisecond})
	defer q.Close()

	q.Input("  dune ")
	assert.Eventually(t, func() bool { return len(rec.calls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "dune", rec.calls()[0])
}

func TestQueryController_BlankClearsImmediately(t *testing.T) {
	rec := &recorder{}
	q := NewQueryController(rec.search, Config{Debounce: 20 * time.Millisecond})
	defer q.Close()

	q.Input("alien")
	assert.Eventually(t, func() bool { return len(q.Snapshot().Results) == 1 }, time.Second, 5*time.Millisecond)

	q.Input("ali")
	q.Input("   ")
	snap := q.Snapshot()
	assert.Empty(t, snap.Results)
	assert.False(t, snap.Open)
	assert.False(t, snap.Pending)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"alien"}, rec.calls())
}

func TestQueryController_DismissAndReopen(t *testing.T) {
	rec := &recorder{}
	q := NewQueryController(rec.search, Config{Debounce: 10 * time.Millisecond})
	defer q.Close()

	q.Input("heat")
	assert.Eventually(t, func() bool { return q.Snapshot().Open }, time.Second, 5*time.Millisecond)

	q.Dismiss()
	assert.False(t, q.Snapshot().Open)
	assert.True(t, q.Snapshot().Dismissed)

	q.Input("heat 1995")
	assert.False(t, q.Snapshot().Dismissed)
	assert.Eventually(t, func() bool {
		snap := q.Snapshot()
		return snap.Open && snap.Results[0].Title == "heat 1995"
	}, time.Second, 5*time.Millisecond)
}

func TestQueryController_OpenWhileLoadingNeedsResults(t *testing.T) {
	release := make(chan struct{})
	search := func(ctx context.Context, query string) ([]view.SearchHit, error) {
		<-release
		return []view.SearchHit{}, nil
	}
	q := NewQueryController(search, Config{Debounce: 5 * time.Millisecond})
	defer q.Close()

	q.Input("zzz")
	assert.False(t, q.Snapshot().Open)
	assert.Eventually(t, func() bool { return q.Snapshot().Loading }, time.Second, 2*time.Millisecond)
	assert.False(t, q.Snapshot().Open)

	close(release)
	assert.Eventually(t, func() bool { return !q.Snapshot().Loading }, time.Second, 2*time.Millisecond)

	// empty results, not loading: the dropdown shows "no results"
	assert.True(t, q.Snapshot().Open)
}

func TestQueryController_OnChange(t *testing.T) {
	rec := &recorder{}
	var mu sync.Mutex
	var last Snapshot
	q := NewQueryController(rec.search, Config{
		Debounce: 5 * time.Millisecond,
		OnChange: func(s Snapshot) {
			mu.Lock()
			last = s
			mu.Unlock()
		},
	})
	defer q.Close()

	q.Input("up")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(last.Results) == 1 && !last.Loading
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	require.Equal(t, "up", last.Query)
	mu.Unlock()
}
