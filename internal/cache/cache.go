// ABOUTME: In-memory cache with TTL-based expiration
// ABOUTME: Typed, mutex-guarded map used for the user directory

package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a thread-safe TTL cache. Expired entries are dropped lazily on
// Get and swept by a background janitor.
type Cache[V any] struct {
	mu    sync.Mutex
	store map[string]entry[V]
	ttl   time.Duration
	stop  chan struct{}
}

func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		store: make(map[string]entry[V]),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.store[key]
	if !ok {
		slog.Debug("Cache miss", "key", key)
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.store, key)
		slog.Debug("Cache expired", "key", key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = entry[V]{value: value, expiresAt: time.Now().Add(ttl)}
}

func (c *Cache[V]) Clear(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

// Close stops the background janitor.
func (c *Cache[V]) Close() {
	close(c.stop)
}

func (c *Cache[V]) janitor() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.store {
				if now.After(e.expiresAt) {
					delete(c.store, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
