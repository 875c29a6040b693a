package dataset

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ============================================================================
// CACHE — Process-wide read-through snapshot cache
// ============================================================================
// The loaded tables are the only resource shared across dashboard passes.
// Written once, read by many; invalidated only by Clear() or a restart.
// Concurrent first readers collapse into a single load via singleflight.
// ============================================================================

// Cache wraps a Loader with a read-through snapshot.
type Cache struct {
	loader *Loader

	mu     sync.RWMutex
	tables *Tables

	group singleflight.Group
}

// NewCache creates a Cache over the given loader.
func NewCache(loader *Loader) *Cache {
	return &Cache{loader: loader}
}

// Tables returns the cached snapshot, loading it on first use. Concurrent
// callers during the initial load share one Load invocation.
func (c *Cache) Tables(ctx context.Context) (*Tables, error) {
	c.mu.RLock()
	t := c.tables
	c.mu.RUnlock()
	if t != nil {
		return t, nil
	}

	v, err, _ := c.group.Do(c.loader.Paths().CountyYear, func() (interface{}, error) {
		// Re-check under the write lock path: another Clear/load cycle may
		// have finished between the RUnlock above and this closure running.
		c.mu.RLock()
		cached := c.tables
		c.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		loaded, err := c.loader.Load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tables), nil
}

// Clear drops the cached snapshot. The next Tables call reloads from disk.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.tables = nil
	c.mu.Unlock()
}

// Loaded reports whether a snapshot is currently cached.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tables != nil
}
