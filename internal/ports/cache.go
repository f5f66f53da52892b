package ports

import (
	"context"
	"time"
)

// Key-value cache with per-entry expiry, used to memoize provider lookups.
type Cache interface {
	// Return the value and true on a fresh hit; expired or missing keys report false.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
