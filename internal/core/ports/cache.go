package ports

import (
	"context"
	"time"
)

// Cache is the key-value store holding entity snapshots in front of the
// search backend. It is a soft dependency: callers treat any error as a miss
// on read and skip the write on set, the search backend stays authoritative.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key, expiring it after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}
