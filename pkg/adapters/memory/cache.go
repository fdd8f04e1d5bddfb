package memory

import (
	"context"
	"sync"
)

// DefaultCapacity bounds the number of cached responses.
const DefaultCapacity = 4096

// Cache implements ports.ResponseCache in memory.
// Safe for concurrent use. When full, the oldest entry is evicted.
type Cache struct {
	mu       sync.RWMutex
	data     map[string]string
	order    []string
	capacity int
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity sets the maximum number of entries. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// NewCache creates a new in-memory response cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		data:     make(map[string]string),
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached line for key.
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	line, ok := c.data[key]
	return line, ok, nil
}

// Set stores line under key.
func (c *Cache) Set(ctx context.Context, key string, line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.data, oldest)
		}
		c.order = append(c.order, key)
	}
	c.data[key] = line
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
