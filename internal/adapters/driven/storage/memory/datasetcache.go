// Package memory provides in-memory implementations of driven ports.
package memory

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driven"
)

// Ensure DatasetCache implements the interface.
var _ driven.DatasetCache = (*DatasetCache)(nil)

type cacheEntry struct {
	dataset  *domain.Dataset
	storedAt time.Time
}

// DatasetCache is an in-memory implementation of driven.DatasetCache.
// Keys are cleaned paths. A ttl of zero or less disables expiry.
type DatasetCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewDatasetCache creates a new in-memory dataset cache.
func NewDatasetCache(ttl time.Duration) *DatasetCache {
	return &DatasetCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached dataset for path if it has not expired.
func (c *DatasetCache) Get(path string) (*domain.Dataset, bool) {
	key := filepath.Clean(path)
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.expired(entry) {
		c.mu.Lock()
		// Re-check: a concurrent Put may have refreshed the entry.
		if current, ok := c.entries[key]; ok && c.expired(current) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.dataset, true
}

// Put stores ds under path.
func (c *DatasetCache) Put(path string, ds *domain.Dataset) {
	if ds == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[filepath.Clean(path)] = cacheEntry{dataset: ds, storedAt: c.now()}
}

// Invalidate drops the entry for path.
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, filepath.Clean(path))
}

// Len returns the number of stored entries, expired or not.
func (c *DatasetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *DatasetCache) expired(e cacheEntry) bool {
	return c.ttl > 0 && c.now().Sub(e.storedAt) >= c.ttl
}
