package recon

import (
	"sync"
)

// Cache memoizes reconciliation results by input fingerprint. Purely a
// performance shortcut for repeated renders of unchanged trades; eviction is
// FIFO and a zero-size cache degrades to recomputing every time.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string]Result
	order   []string
}

func NewCache(max int) *Cache {
	return &Cache{
		max:     max,
		entries: make(map[string]Result),
	}
}

// Get returns the memoized Result for a fingerprint, if present.
func (c *Cache) Get(fingerprint string) (Result, bool) {
	if c == nil || c.max <= 0 {
		return Result{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	result, ok := c.entries[fingerprint]
	return result, ok
}

// Put stores a Result, evicting the oldest entry once the cache is full.
func (c *Cache) Put(fingerprint string, result Result) {
	if c == nil || c.max <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[fingerprint]; ok {
		c.entries[fingerprint] = result
		return
	}
	for len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[fingerprint] = result
	c.order = append(c.order, fingerprint)
}
