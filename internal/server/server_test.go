package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marco/movieDeck/internal/browse"
	"github.com/marco/movieDeck/internal/catalog"
)

// fakeUpstream answers the catalog endpoints the handlers use.
func fakeUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/popular", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"page":`+r.URL.Query().Get("page")+`,"total_pages":20,"results":[{"id":603,"title":"The Matrix","vote_average":8.2,"release_date":"1999-03-30"}]}`)
	})
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"id":603,"title":"The Matrix","runtime":136,"budget":63000000,"status":"Released"}`)
	})
	mux.HandleFunc("/movie/603/videos", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[{"key":"abc","site":"YouTube","type":"Trailer"}]}`)
	})
	mux.HandleFunc("/movie/603/keywords", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"keywords":[{"id":1,"name":"hacker"}]}`)
	})
	mux.HandleFunc("/movie/603/credits", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"cast":[{"id":6384,"name":"Keanu Reeves"}],"crew":[{"id":9339,"name":"Lilly Wachowski","job":"Director"},{"id":1,"name":"X","job":"Gaffer"}]}`)
	})
	mux.HandleFunc("/movie/603/recommendations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/movie/1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/search/multi", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[{"id":1,"media_type":"person","name":"Keanu"},{"id":603,"media_type":"movie","title":"The Matrix"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	upstream := fakeUpstream(t)
	client := catalog.NewClientWithConfig(catalog.ClientConfig{
		APIKey:           "secret-key",
		Language:         "en-US",
		BaseURL:          upstream.URL,
		MaxAttempts:      1,
		InitialBackoffMs: 1,
	})
	srv := httptest.NewServer(New(browse.NewService(client, nil), Config{
		AllowedOrigins:    []string{"http://localhost:3000"},
		RequestsPerMinute: 1000,
		RequestTimeout:    5 * time.Second,
	}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestCategoryEndpoint(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv, "/api/movie/category/popular?page=5")
	require.Equal(t, http.StatusOK, status)

	var grid browse.GridPage
	require.NoError(t, json.Unmarshal(body, &grid))
	assert.Equal(t, 5, grid.Page)
	assert.Equal(t, 20, grid.TotalPages)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, grid.Window.Pages)
	require.Len(t, grid.Items, 1)
	assert.Equal(t, "8.2", grid.Items[0].RatingText)
	assert.Equal(t, "1999", grid.Items[0].YearText)
	assert.NotContains(t, string(body), "secret-key")
}

func TestCategoryEndpoint_Errors(t *testing.T) {
	srv := newTestServer(t)

	testCases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/api/tv/category/upcoming", http.StatusNotFound, "Category not found"},
		{"/api/person/category/popular", http.StatusBadRequest, "Invalid request"},
		{"/api/movie/category/popular?page=0", http.StatusBadRequest, "Invalid request"},
		{"/api/movie/category/popular?page=501", http.StatusBadRequest, "Invalid request"},
		{"/api/movie/abc/credits", http.StatusBadRequest, "Invalid request"},
		{"/api/movie/1/hero", http.StatusNotFound, "Title not found"},
		{"/api/movie/603/recommendations", http.StatusBadGateway, "Failed to load recommendations"},
	}
	for _, tc := range testCases {
		status, body := get(t, srv, tc.path)
		assert.Equal(t, tc.status, status, tc.path)

		var e errorResponse
		require.NoError(t, json.Unmarshal(body, &e), tc.path)
		assert.Equal(t, tc.msg, e.Error, tc.path)
	}
}

func TestDetailEndpoints(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv, "/api/movie/603/hero")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"trailer":{"key":"abc"`)

	status, body = get(t, srv, "/api/movie/603/metadata")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"budget":"$63,000,000"`)
	assert.Contains(t, string(body), `"runtime":"2h 16m"`)
	assert.Contains(t, string(body), `"hacker"`)

	status, body = get(t, srv, "/api/movie/603/credits")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"key":"6384-0"`)
	assert.Contains(t, string(body), `"key":"9339-Director-0"`)
	assert.NotContains(t, string(body), "Gaffer")
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv, "/api/search?q=matrix")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "The Matrix")
	assert.NotContains(t, string(body), "Keanu")

	status, body = get(t, srv, "/api/search?q=%20%20")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", strings.TrimSpace(string(body)))
}

func TestGenresAndHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv, "/api/genres")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "Science Fiction")

	status, _ = get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, status)

	status, body = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/genres", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
