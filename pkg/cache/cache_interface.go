package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache contract used by repositories. The redis
// implementation lives in internal/infrastructure/cache.
type Cache interface {
	// Get unmarshals the cached value into dest. found=false means a miss;
	// dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
