// Package cache provides pluggable result caching for fareplan.
//
// A full itinerary search is cheap but not free, and fare files rarely
// change between invocations. The search command therefore caches its
// structured results keyed by a hash of the fare data, the constraint
// configuration, and the search options.
//
// Three backends are provided:
//   - FileCache: directory-based cache for single-machine CLI use
//   - RedisCache: shared cache for running fareplan behind the HTTP API
//   - NullCache: no-op cache for tests or --no-cache
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
//
// Get returns (nil, false, nil) on a miss; errors are reserved for backend
// failures. A zero ttl on Set stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultTTL is how long cached search results stay valid.
// Fare files are static inputs, so entries only need to outlive a working
// session.
const DefaultTTL = 24 * time.Hour

// ResultKey builds the cache key for a search run.
// It hashes the fare data bytes together with the serialized configuration
// and options, so any change to the inputs produces a distinct key.
func ResultKey(fareData, config, options []byte) string {
	return hashKey("result", Hash(fareData), Hash(config), Hash(options))
}
