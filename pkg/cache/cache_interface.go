package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so the Redis
// implementation can be swapped for an in-memory one in tests.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found == false means cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores a value under key with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error
}
