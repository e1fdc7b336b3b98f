// Package cache stores raw Figma snapshots between runs.
//
// A [Cache] is a byte store with per-entry TTLs. The CLI uses [FileCache]
// under the user cache directory; [RedisCache] shares snapshots between
// machines (CI runners, for example); [NullCache] disables caching.
//
// Keys come from a [Keyer], so backends never need to know what they store.
package cache

import (
	"context"
	"time"
)

// Default TTLs.
const (
	// TTLSnapshot is how long a fetched variables snapshot stays fresh.
	TTLSnapshot = time.Hour

	// TTLHTTP is the default for other cached HTTP responses.
	TTLHTTP = 24 * time.Hour
)

// Cache is a key/value byte store with expiration.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
