package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiry
}

func (e entry[V]) live(at time.Time) bool {
	return e.expiresAt.IsZero() || !at.After(e.expiresAt)
}

// SimpleCache is a map-backed Cache. Expired entries are hidden on read and
// only removed by PurgeExpired; there is no background janitor.
type SimpleCache[K comparable, V any] struct {
	// nil when the cache is not goroutine-safe
	mu    *sync.RWMutex
	items map[K]entry[V]
}

// Options controls construction of a SimpleCache.
type Options struct {
	// ConcurrencySafe guards every operation with a RWMutex.
	ConcurrencySafe bool
}

// NewSimpleCache constructs an empty SimpleCache.
func NewSimpleCache[K comparable, V any](opts Options) *SimpleCache[K, V] {
	c := &SimpleCache[K, V]{items: make(map[K]entry[V])}
	if opts.ConcurrencySafe {
		c.mu = &sync.RWMutex{}
	}
	return c
}

func (c *SimpleCache[K, V]) rlock() func() {
	if c.mu == nil {
		return func() {}
	}
	c.mu.RLock()
	return c.mu.RUnlock
}

func (c *SimpleCache[K, V]) wlock() func() {
	if c.mu == nil {
		return func() {}
	}
	c.mu.Lock()
	return c.mu.Unlock
}

// Get implements Cache.Get.
func (c *SimpleCache[K, V]) Get(key K) (V, bool) {
	defer c.rlock()()
	e, ok := c.items[key]
	if !ok || !e.live(now()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set implements Cache.Set.
func (c *SimpleCache[K, V]) Set(key K, value V, ttl time.Duration) {
	defer c.wlock()()
	e := entry[V]{value: value}
	if ttl > 0 {
		e.expiresAt = now().Add(ttl)
	}
	c.items[key] = e
}

// Delete implements Cache.Delete.
func (c *SimpleCache[K, V]) Delete(key K) {
	defer c.wlock()()
	delete(c.items, key)
}

// Has implements Cache.Has.
func (c *SimpleCache[K, V]) Has(key K) bool {
	defer c.rlock()()
	e, ok := c.items[key]
	return ok && e.live(now())
}

// Len implements Cache.Len.
func (c *SimpleCache[K, V]) Len() int {
	defer c.rlock()()
	at := now()
	n := 0
	for _, e := range c.items {
		if e.live(at) {
			n++
		}
	}
	return n
}

// Clear implements Cache.Clear.
func (c *SimpleCache[K, V]) Clear() {
	defer c.wlock()()
	c.items = make(map[K]entry[V])
}

// PurgeExpired implements Cache.PurgeExpired.
func (c *SimpleCache[K, V]) PurgeExpired() {
	defer c.wlock()()
	at := now()
	for k, e := range c.items {
		if !e.live(at) {
			delete(c.items, k)
		}
	}
}

var _ Cache[string, []byte] = (*SimpleCache[string, []byte])(nil)
