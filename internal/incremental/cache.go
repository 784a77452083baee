// Package incremental memoizes per-unit results across generation passes.
//
// Entries are keyed by a content hash over everything the result depends
// on (configuration fingerprint, unit kind, path and bytes), so a changed
// input simply misses and the stale entry ages out of the LRU. Nothing is
// ever invalidated explicitly.
package incremental

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize bounds the number of cached units
const DefaultSize = 4096

// Cache is a thread-safe LRU of computed values keyed by content hash.
type Cache[V any] struct {
	entries *lru.Cache[string, V]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Stats is a snapshot of cache counters
type Stats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}

// New creates a cache holding at most size entries; size <= 0 selects
// DefaultSize.
func New[V any](size int) (*Cache[V], error) {
	if size <= 0 {
		size = DefaultSize
	}
	c := &Cache[V]{}
	entries, err := lru.NewWithEvict(size, func(string, V) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	c.entries = entries
	return c, nil
}

// Get returns the value cached under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	v, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Put stores v under key.
func (c *Cache[V]) Put(key string, v V) {
	c.entries.Add(key, v)
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Errors are not cached. The boolean reports a hit.
//
// Concurrent misses on the same key may both compute; the results are
// equal because the key covers every input.
func (c *Cache[V]) GetOrCompute(key string, compute func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Put(key, v)
	return v, false, nil
}

// Purge drops every entry and resets the counters.
func (c *Cache[V]) Purge() {
	c.entries.Purge()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Stats returns the current counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Entries:   c.entries.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Key hashes parts into a cache key. Parts are length-prefixed so
// ("ab", "c") and ("a", "bc") differ.
func Key(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
