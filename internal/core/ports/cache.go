package ports

import (
	"context"
	"time"
)

// Cache defines a minimal key-value cache contract.
// Callers treat errors as misses and fall back to the database.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL (0 or negative means no expiration).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the keys; absence is not an error.
	Delete(ctx context.Context, keys ...string) error
	// Track adds member to the set at key, used to index derived cache keys.
	Track(ctx context.Context, key, member string, ttl time.Duration) error
	// Members returns the members of the set at key.
	Members(ctx context.Context, key string) ([]string, error)
}
