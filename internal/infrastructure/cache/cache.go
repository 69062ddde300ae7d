package cache

import (
	"context"
	"time"
)

// Store is a small expiring key-value store used to cache completed session
// reports. Backed by Redis when available, by an in-memory store otherwise.
type Store interface {
	// Set stores a value with the given TTL
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get retrieves a value; the bool reports whether the key was present
	Get(ctx context.Context, key string) (string, bool, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error
}
