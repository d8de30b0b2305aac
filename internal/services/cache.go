package services

import (
	"sync"

	"github.com/RoqueChristian/analise-conexao/internal/models"
)

// DatasetCache memoizes the parsed-and-normalized feeds keyed by the joint
// fingerprint of both input files, so UI interactions like changing the
// region filter do not re-read the exports from disk. A changed fingerprint
// simply misses; entries are never evicted before process exit.
type DatasetCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedDatasets
}

type cachedDatasets struct {
	billing *models.Dataset
	orders  *models.Dataset
}

// NewDatasetCache creates an empty cache.
func NewDatasetCache() *DatasetCache {
	return &DatasetCache{entries: make(map[string]*cachedDatasets)}
}

// Get returns the datasets cached under key, if any.
func (c *DatasetCache) Get(key string) (billing, orders *models.Dataset, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, nil, false
	}
	return entry.billing, entry.orders, true
}

// Set stores the datasets under key.
func (c *DatasetCache) Set(key string, billing, orders *models.Dataset) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &cachedDatasets{billing: billing, orders: orders}
}

// Len reports the number of cached fingerprints.
func (c *DatasetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
