package cache

import (
	"context"
	"time"
)

// Cache is a minimal in-process key-value cache with an optional TTL per entry.
// Implementations may or may not be goroutine-safe depending on configuration.
type Cache[K comparable, V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key K) (V, bool)

	// Set stores the value. If ttl <= 0, the entry does not expire.
	Set(key K, value V, ttl time.Duration)

	// Delete removes a key if present.
	Delete(key K)

	// Has reports whether a key is present and not expired.
	Has(key K) bool

	// Len returns the number of non-expired entries.
	Len() int

	// Clear removes all entries.
	Clear()

	// PurgeExpired removes expired entries.
	PurgeExpired()
}

// Store is a durable key-value store holding opaque byte payloads.
// Implementations must replace a key's value atomically on Put.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes a key if present.
	Delete(ctx context.Context, key string) error
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now
