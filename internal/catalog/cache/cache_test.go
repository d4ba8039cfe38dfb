package cache

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteCache_SetGet(t *testing.T) {
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "nested", "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("movie:603", []byte(`{"id":603}`), time.Hour))

	data, ok := c.Get("movie:603")
	require.True(t, ok)
	assert.JSONEq(t, `{"id":603}`, string(data))

	_, ok = c.Get("movie:604")
	assert.False(t, ok)
}

func TestSQLiteCache_ExpiredEntryMisses(t *testing.T) {
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("k", []byte("v"), -time.Second))
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestSQLiteCache_PurgeAndClear(t *testing.T) {
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set("old", []byte("v"), -time.Minute))
	require.NoError(t, c.Set("fresh", []byte("v"), time.Hour))

	removed, err := c.Purge()
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.NoError(t, c.Clear())
	_, ok := c.Get("fresh")
	assert.False(t, ok)
}

func TestMemoryCache_TTLPerEntry(t *testing.T) {
	c := NewMemoryCache(4, time.Hour)

	require.NoError(t, c.Set("a", []byte("1"), time.Hour))
	require.NoError(t, c.Set("b", []byte("2"), -time.Second))

	data, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", string(data))

	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestMemoryCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemoryCache(2, time.Hour)
	_ = c.Set("a", []byte("1"), time.Hour)
	_ = c.Set("b", []byte("2"), time.Hour)
	_, _ = c.Get("a")
	_ = c.Set("c", []byte("3"), time.Hour)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestTiered_PromotesBackHits(t *testing.T) {
	front := NewMemoryCache(8, time.Hour)
	back := NewMemoryCache(8, time.Hour)
	tiered := NewTiered(front, back, time.Minute, nil)

	require.NoError(t, back.Set("k", []byte("v"), time.Hour))

	data, ok := tiered.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(data))

	data, ok = front.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(data))
}

func TestTiered_SetWritesBoth(t *testing.T) {
	front := NewMemoryCache(8, time.Hour)
	back := NewMemoryCache(8, time.Hour)
	tiered := NewTiered(front, back, time.Minute, nil)

	require.NoError(t, tiered.Set("k", []byte("v"), time.Hour))
	_, ok := front.Get("k")
	assert.True(t, ok)
	_, ok = back.Get("k")
	assert.True(t, ok)

	require.NoError(t, tiered.Clear())
	_, ok = tiered.Get("k")
	assert.False(t, ok)
}

// failingCache rejects every write.
type failingCache struct{ Cache }

func (failingCache) Set(string, []byte, time.Duration) error { return errors.New("disk full") }

func TestTiered_PromotionFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	back := NewMemoryCache(8, time.Hour)
	tiered := NewTiered(failingCache{NewMemoryCache(8, time.Hour)}, back, time.Minute, logger)
	require.NoError(t, back.Set("k", []byte("v"), time.Hour))

	data, ok := tiered.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(data))
	assert.Contains(t, buf.String(), "failed to promote cache entry")
	assert.Contains(t, buf.String(), "disk full")
}
