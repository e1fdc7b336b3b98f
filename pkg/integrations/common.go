package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// httpTimeout bounds a single request. Variables exports of large files take
// several seconds to generate.
const httpTimeout = 60 * time.Second

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 64 << 10

var (
	// ErrNotFound is returned when the requested resource doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned when a request produced no response (DNS,
	// connection, timeout).
	ErrNetwork = errors.New("network error")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int    // HTTP status code
	Body string // response body, truncated to 64 KiB
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Is makes a 404 match [ErrNotFound].
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// NewHTTPClient creates an HTTP client with the standard request timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
