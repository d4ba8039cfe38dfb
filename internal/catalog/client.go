package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/marco/movieDeck/internal/catalog/cache"
	"github.com/marco/movieDeck/internal/retry"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	maxBodyBytes        = 8 << 20
	maxErrorBodyBytes   = 512
)

// CacheLogFunc is a callback for logging cache operations
type CacheLogFunc func(operation string, key string, hit bool)

// Client issues GET requests against the catalog API.
type Client struct {
	baseURL        string
	imageBaseURL   string
	apiKey         string
	language       atomic.Pointer[string]
	httpClient     *http.Client
	limiter        *rate.Limiter
	breaker        *gobreaker.CircuitBreaker[[]byte]
	maxAttempts    int
	initialBackoff time.Duration
	retryLogFunc   retry.LogFunc
	cache          cache.Cache
	cacheTTL       time.Duration
	cacheLogFunc   CacheLogFunc
}

// ClientConfig holds configuration for the catalog client
type ClientConfig struct {
	APIKey           string
	Language         string
	BaseURL          string
	ImageBaseURL     string
	Timeout          time.Duration
	RequestsPerSec   float64
	MaxAttempts      int
	InitialBackoffMs int
	RetryLogFunc     retry.LogFunc
	Cache            cache.Cache
	CacheTTL         time.Duration
	CacheLogFunc     CacheLogFunc
	HTTPClient       *http.Client
}

// NewClient creates a catalog client with default settings
func NewClient(apiKey string, language string) *Client {
	return NewClientWithConfig(ClientConfig{APIKey: apiKey, Language: language})
}

// NewClientWithConfig creates a catalog client with full configuration
func NewClientWithConfig(cfg ClientConfig) *Client {
	if cfg.Language == "" {
		cfg.Language = "id-ID"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = defaultImageBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoffMs <= 0 {
		cfg.InitialBackoffMs = 500
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.RetryLogFunc == nil {
		cfg.RetryLogFunc = func(attempt, maxAttempts int, backoff time.Duration, err error) {
			slog.Warn("catalog request failed, retrying",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"backoff_ms", backoff.Milliseconds(),
				"error", err,
			)
		}
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
		burst = int(cfg.RequestsPerSec)
		if burst < 1 {
			burst = 1
		}
	}

	c := &Client{
		baseURL:        cfg.BaseURL,
		imageBaseURL:   cfg.ImageBaseURL,
		apiKey:         cfg.APIKey,
		httpClient:     cfg.HTTPClient,
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        newBreaker("catalog-api"),
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: time.Duration(cfg.InitialBackoffMs) * time.Millisecond,
		retryLogFunc:   cfg.RetryLogFunc,
		cache:          cfg.Cache,
		cacheTTL:       cfg.CacheTTL,
		cacheLogFunc:   cfg.CacheLogFunc,
	}
	c.SetLanguage(cfg.Language)
	return c
}

// Language returns the response language sent with every request
func (c *Client) Language() string {
	return *c.language.Load()
}

// SetLanguage changes the response language; safe for concurrent use.
func (c *Client) SetLanguage(lang string) {
	c.language.Store(&lang)
}

// ImageURL composes an image URL against the configured image host
func (c *Client) ImageURL(path string, size ImageSize) string {
	return ImageURL(c.imageBaseURL, path, size)
}

// Get fetches path with params and decodes the JSON body into out.
// The configured language is added unless params sets "language" to "" explicitly.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out any) error {
	query := url.Values{}
	for k, vs := range params {
		query[k] = append([]string(nil), vs...)
	}
	if lang, explicit := query["language"]; !explicit {
		query.Set("language", c.Language())
	} else if len(lang) == 0 || lang[0] == "" {
		query.Del("language")
	}

	// Build cache key before the credential is added
	cacheKey := "catalog:" + path + "?" + query.Encode()

	if cachedData, found := c.getFromCache(cacheKey); found {
		if err := json.Unmarshal(cachedData, out); err == nil {
			return nil
		}
	}

	query.Set("api_key", c.apiKey)
	requestURL := c.baseURL + path + "?" + query.Encode()

	body, err := c.fetch(ctx, path, requestURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	c.setToCache(cacheKey, body)
	return nil
}

// fetch runs one logical request through the breaker, the rate limiter and the retry loop.
func (c *Client) fetch(ctx context.Context, path string, requestURL string) ([]byte, error) {
	endpoint := endpointLabel(path)
	start := time.Now()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		var body []byte
		err := retry.Retry(ctx, func(ctx context.Context) error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			var reqErr error
			body, reqErr = c.doRequest(ctx, path, requestURL)
			return reqErr
		}, c.maxAttempts, c.initialBackoff, c.retryLogFunc)
		return body, err
	})

	RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			RequestsTotal.WithLabelValues(endpoint, "cancelled").Inc()
			return nil, fmt.Errorf("fetch %s: %w", path, ctxErr)
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			RequestsTotal.WithLabelValues(endpoint, "rejected").Inc()
			return nil, &NetworkError{Path: path, Err: err}
		}
		RequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, err
	}

	RequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	return body, nil
}

// doRequest executes a single HTTP GET
func (c *Client) doRequest(ctx context.Context, path string, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Path: path, Err: scrubURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBodyBytes {
			body = body[:maxErrorBodyBytes]
		}
		fetchErr := &FetchError{Path: path, StatusCode: resp.StatusCode, Body: string(body)}
		slog.Debug("catalog request rejected",
			"path", path,
			"status", resp.StatusCode,
			"body", fetchErr.Body,
		)
		return nil, fetchErr
	}

	return body, nil
}

// getFromCache retrieves data from cache if available
func (c *Client) getFromCache(key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, found := c.cache.Get(key)
	if found {
		CacheLookups.WithLabelValues("hit").Inc()
	} else {
		CacheLookups.WithLabelValues("miss").Inc()
	}
	if c.cacheLogFunc != nil {
		c.cacheLogFunc("get", key, found)
	}
	return data, found
}

// setToCache stores data in cache if caching is enabled
func (c *Client) setToCache(key string, data []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(key, data, c.cacheTTL); err != nil {
		// Log error but don't fail the operation
		slog.Warn("failed to cache catalog response", "key", key, "error", err)
		if c.cacheLogFunc != nil {
			c.cacheLogFunc("set_error", key, false)
		}
	} else if c.cacheLogFunc != nil {
		c.cacheLogFunc("set", key, true)
	}
}
