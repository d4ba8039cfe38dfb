package catalog

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
)

var (
	// ErrNotFound is matched by a FetchError carrying HTTP 404
	ErrNotFound = errors.New("catalog item not found")

	// ErrUnknownCategory is returned for a category slug that does not exist for a kind
	ErrUnknownCategory = errors.New("unknown category")
)

// FetchError is returned when the catalog API answers with a non-2xx status.
type FetchError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %s (status %d)", e.Path, e.StatusCode)
}

// HTTPStatus lets the retry policy classify the failure.
func (e *FetchError) HTTPStatus() int { return e.StatusCode }

// Is reports 404 responses as ErrNotFound.
func (e *FetchError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// NetworkError is returned when the request could not complete.
type NetworkError struct {
	Path string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

var apiKeyPattern = regexp.MustCompile(`api_key=[^&]*`)

// redactKey strips the credential from a request URL
func redactKey(s string) string {
	return apiKeyPattern.ReplaceAllString(s, "api_key=REDACTED")
}

// scrubURLError removes the credential from the URL carried by transport errors.
func scrubURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redactKey(urlErr.URL)
	}
	return err
}
