package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marco/movieDeck/internal/catalog/cache"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*ClientConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{
		APIKey:           "secret-key",
		Language:         "id-ID",
		BaseURL:          srv.URL,
		ImageBaseURL:     "https://img.example/t/p",
		MaxAttempts:      3,
		InitialBackoffMs: 1,
		RetryLogFunc:     func(int, int, time.Duration, error) {},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return NewClientWithConfig(cfg)
}

func TestGet_BuildsRequest(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"page":2,"results":[{"id":1,"title":"Dune"}],"total_pages":9}`))
	})

	page, err := c.Collection(context.Background(), KindMovie, "now-playing", 2)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/movie/now_playing", got.URL.Path)
	assert.Equal(t, "secret-key", got.URL.Query().Get("api_key"))
	assert.Equal(t, "id-ID", got.URL.Query().Get("language"))
	assert.Equal(t, "2", got.URL.Query().Get("page"))
	assert.Equal(t, 9, page.TotalPages)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Dune", page.Results[0].Title)
}

func TestVideos_OmitsLanguage(t *testing.T) {
	var query url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"id":603,"results":[]}`))
	})

	_, err := c.Videos(context.Background(), KindMovie, 603)
	require.NoError(t, err)
	_, hasLanguage := query["language"]
	assert.False(t, hasLanguage)
}

func TestGet_NotFoundIsTypedAndNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`))
	})

	_, err := c.Details(context.Background(), KindMovie, 999999)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "/movie/999999", fetchErr.Path)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136}`))
	})

	details, err := c.Details(context.Background(), KindMovie, 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", details.Title)
	assert.Equal(t, 136, details.Runtime)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGet_NetworkErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClientWithConfig(ClientConfig{
		APIKey:           "secret-key",
		BaseURL:          base,
		MaxAttempts:      1,
		InitialBackoffMs: 1,
	})

	_, err := c.Details(context.Background(), KindTV, 1399)
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "/tv/1399", netErr.Path)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestGet_UsesCacheWithoutCredentialInKey(t *testing.T) {
	var calls atomic.Int32
	var keys []string
	mem := cache.NewMemoryCache(16, time.Hour)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"id":603,"cast":[{"id":1,"name":"Keanu Reeves"}],"crew":[]}`))
	}, func(cfg *ClientConfig) {
		cfg.Cache = mem
		cfg.CacheLogFunc = func(op, key string, hit bool) {
			keys = append(keys, key)
		}
	})

	for i := 0; i < 2; i++ {
		credits, err := c.Credits(context.Background(), KindMovie, 603)
		require.NoError(t, err)
		require.Len(t, credits.Cast, 1)
	}

	assert.Equal(t, int32(1), calls.Load())
	require.NotEmpty(t, keys)
	for _, k := range keys {
		assert.NotContains(t, k, "secret-key")
	}
}

func TestGet_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Details(ctx, KindMovie, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSetLanguage(t *testing.T) {
	var lang string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		lang = r.URL.Query().Get("language")
		w.Write([]byte(`{"results":[]}`))
	})

	c.SetLanguage("en-US")
	_, err := c.Trending(context.Background(), KindMovie, "day")
	require.NoError(t, err)
	assert.Equal(t, "en-US", lang)
	assert.Equal(t, "en-US", c.Language())
}

func TestSearchMulti_EmptyQueryShortCircuits(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty query")
	})

	page, err := c.SearchMulti(context.Background(), "   ", 1)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestDiscoverByGenre_Params(t *testing.T) {
	var r0 *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r0 = r
		w.Write([]byte(`{"results":[]}`))
	})

	_, err := c.DiscoverByGenre(context.Background(), KindMovie, 878, 0)
	require.NoError(t, err)
	assert.Equal(t, "/discover/movie", r0.URL.Path)
	assert.Equal(t, "878", r0.URL.Query().Get("with_genres"))
	assert.Equal(t, "1", r0.URL.Query().Get("page"))
}

func TestCollection_UnknownCategory(t *testing.T) {
	c := NewClient("k", "")
	_, err := c.Collection(context.Background(), KindTV, "now-playing", 1)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestKeywords_All(t *testing.T) {
	movie := &Keywords{Keywords: []Keyword{{ID: 1, Name: "hacker"}}}
	show := &Keywords{Results: []Keyword{{ID: 2, Name: "chemistry"}}}
	var none *Keywords

	assert.Equal(t, "hacker", movie.All()[0].Name)
	assert.Equal(t, "chemistry", show.All()[0].Name)
	assert.Nil(t, none.All())
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, PlaceholderImage, ImageURL("https://image.tmdb.org/t/p", "", SizePoster))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", ImageURL("https://image.tmdb.org/t/p/", "/abc.jpg", SizePoster))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", ImageURL("https://image.tmdb.org/t/p", "abc.jpg", SizeOriginal))
}

func TestEndpointLabel(t *testing.T) {
	assert.Equal(t, "/movie/:id/credits", endpointLabel("/movie/603/credits"))
	assert.Equal(t, "/search/multi", endpointLabel("/search/multi"))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("tv")
	require.NoError(t, err)
	assert.Equal(t, KindTV, k)

	_, err = ParseKind("person")
	assert.Error(t, err)
}
