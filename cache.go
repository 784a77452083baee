package cssjit

import (
	"github.com/yacobolo/cssjit/internal/incremental"
)

// Cache memoizes unit scans across passes. Long-running hosts such as the
// watcher keep one Cache and pass it in Config.Cache; one-shot runs can
// leave it nil.
type Cache struct {
	units *incremental.Cache[UnitResult]
}

// CacheStats reports cache effectiveness
type CacheStats = incremental.Stats

// NewCache creates a cache of at most size units; size <= 0 selects the
// default.
func NewCache(size int) (*Cache, error) {
	units, err := incremental.New[UnitResult](size)
	if err != nil {
		return nil, err
	}
	return &Cache{units: units}, nil
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return c.units.Stats()
}

// Purge forgets every cached unit.
func (c *Cache) Purge() {
	c.units.Purge()
}

// unitKind separates source and auxiliary units that share a path
type unitKind string

const (
	unitSource unitKind = "source"
	unitFile   unitKind = "file"
)

// scan returns the cached result for (cfg, kind, path, content) or computes
// it. A nil cache always computes.
func (c *Cache) scan(cfg *EmissionConfig, kind unitKind, path string, content []byte, compute func() (UnitResult, error)) (UnitResult, bool, error) {
	if c == nil {
		r, err := compute()
		return r, false, err
	}
	key := incremental.Key([]byte(cfg.Fingerprint()), []byte(kind), []byte(path), content)
	return c.units.GetOrCompute(key, compute)
}
