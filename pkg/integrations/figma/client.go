// Package figma fetches variable snapshots from the Figma REST API.
//
// Only the local variables endpoint is used:
//
//	GET /v1/files/:file_key/variables/local
//
// It returns every collection and variable visible in the file, including
// read-only copies of library collections the file subscribes to. The
// response is cached raw, so an offline run sees exactly what the API
// returned.
package figma

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kiliansala/kds-ai-tokens/pkg/cache"
	"github.com/kiliansala/kds-ai-tokens/pkg/errors"
	"github.com/kiliansala/kds-ai-tokens/pkg/integrations"
	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// DefaultBaseURL is the Figma REST API root.
const DefaultBaseURL = "https://api.figma.com/v1"

// TokenHeader carries the personal access token.
const TokenHeader = "X-Figma-Token"

// notFoundHint explains a 404 from the variables endpoint.
const notFoundHint = "file not found or not shared with this token"

// Client provides access to the Figma variables API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	keyer   cache.Keyer
}

// NewClient creates a Figma client authenticated with token.
//
// backend caches raw snapshots for cacheTTL; pass nil to disable caching.
// An empty token is a configuration error, reported before any request is
// made.
func NewClient(token string, backend cache.Cache, cacheTTL time.Duration) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "FIGMA_ACCESS_TOKEN environment variable is required")
	}
	return &Client{
		Client:  integrations.NewClient(backend, "figma:", cacheTTL, map[string]string{TokenHeader: token}),
		baseURL: DefaultBaseURL,
		keyer:   cache.NewDefaultKeyer(),
	}, nil
}

// WithBaseURL points the client at another API root (a proxy or a test
// server). Trailing slashes are ignored.
func (c *Client) WithBaseURL(base string) *Client {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

// WithKeyer replaces the cache keyer, for example to scope keys in a shared
// Redis instance.
func (c *Client) WithKeyer(k cache.Keyer) *Client {
	if k != nil {
		c.keyer = k
	}
	return c
}

// FetchRaw returns the raw response body of the variables endpoint for
// fileKey.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - an ErrCodeConfiguration or ErrCodeInvalidInput error for a bad file key
//   - *errors.FetchError (ErrCodeFetch) for any non-2xx response
//   - an ErrCodeNetwork error wrapping [integrations.ErrNetwork] when no
//     response was received
func (c *Client) FetchRaw(ctx context.Context, fileKey string, refresh bool) ([]byte, error) {
	if err := errors.ValidateFileKey(fileKey); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/files/%s/variables/local", c.baseURL, url.PathEscape(fileKey))

	return c.Cached(ctx, c.keyer.SnapshotKey(fileKey), refresh, func() ([]byte, error) {
		data, err := c.GetBytes(ctx, endpoint, nil)
		if err != nil {
			return nil, classify(fileKey, err)
		}
		// Validate before caching so a malformed body is never replayed.
		if _, err := variables.Unmarshal(data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode variables for file %s", fileKey)
		}
		return data, nil
	})
}

// FetchVariables retrieves and decodes the variable graph of fileKey.
// See [Client.FetchRaw] for caching and error behavior.
func (c *Client) FetchVariables(ctx context.Context, fileKey string, refresh bool) (*variables.Graph, error) {
	data, err := c.FetchRaw(ctx, fileKey, refresh)
	if err != nil {
		return nil, err
	}
	g, err := variables.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode variables for file %s", fileKey)
	}
	return g, nil
}

// classify maps transport errors onto coded errors.
func classify(fileKey string, err error) error {
	var se *integrations.StatusError
	switch {
	case stderrors.As(err, &se):
		fe := &errors.FetchError{FileKey: fileKey, Status: se.Code, Body: se.Body}
		if stderrors.Is(err, integrations.ErrNotFound) {
			fe.Hint = notFoundHint
		}
		return fe
	case stderrors.Is(err, integrations.ErrNetwork):
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetch variables for file %s", fileKey)
	default:
		return err
	}
}
