package catalog

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"moviechain/internal/models"
)

// Cache memoizes lookup results. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (models.Movie, bool)
	Set(ctx context.Context, key string, movie models.Movie)
}

// MemoryCache is an in-process Cache. With maxEntries > 0 it evicts least
// recently used entries, otherwise it grows without bound.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]models.Movie
	bounded *lru.Cache[string, models.Movie]
}

func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries > 0 {
		// only fails for a non-positive size
		bounded, _ := lru.New[string, models.Movie](maxEntries)
		return &MemoryCache{bounded: bounded}
	}
	return &MemoryCache{entries: make(map[string]models.Movie)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (models.Movie, bool) {
	if c.bounded != nil {
		return c.bounded.Get(key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.entries[key]
	return m, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, movie models.Movie) {
	if c.bounded != nil {
		c.bounded.Add(key, movie)
		return
	}
	c.mu.Lock()
	c.entries[key] = movie
	c.mu.Unlock()
}

func (c *MemoryCache) Len() int {
	if c.bounded != nil {
		return c.bounded.Len()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
