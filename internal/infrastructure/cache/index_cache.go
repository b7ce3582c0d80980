package cache

import (
	"sync"

	"github.com/docqa-labs/docqa/internal/core/ports"
)

// IndexCache keeps built indexes keyed by document content hash. Entries are
// immutable once stored; concurrent builders for the same hash race and the
// first writer wins. The cache is ephemeral: when the entry budget is
// exhausted it is reset wholesale rather than evicted piecemeal.
type IndexCache struct {
	mu         sync.RWMutex
	entries    map[string]ports.IndexEntry
	maxEntries int
}

func New(maxEntries int) *IndexCache {
	if maxEntries <= 0 {
		maxEntries = 64
	}
	return &IndexCache{
		entries:    make(map[string]ports.IndexEntry),
		maxEntries: maxEntries,
	}
}

func (c *IndexCache) Get(contentHash string) (ports.IndexEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[contentHash]
	return entry, ok
}

func (c *IndexCache) Put(contentHash string, entry ports.IndexEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[contentHash]; ok {
		return
	}
	if len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]ports.IndexEntry, c.maxEntries)
	}
	c.entries[contentHash] = entry
}

func (c *IndexCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
