package rank

import (
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nao1215/leaddeck/internal/model"
)

// Cache memoizes Rank results per lead store and filter spec.
//
// The cache relies on the store digest to identify the lead list: callers
// must pass the same digest only for identical leads. Results handed out are
// copies, so callers may modify them freely.
//
// Cache is safe for concurrent use. Concurrent misses for the same key are
// collapsed into a single Rank call.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]model.ScoreSnapshot
	group   singleflight.Group

	hits   int
	misses int
}

// NewCache creates an empty rank cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string][]model.ScoreSnapshot),
	}
}

// Rank returns the ranked deck for leads under spec, computing it at most
// once per (digest, spec) pair.
func (c *Cache) Rank(digest string, leads []model.Lead, spec model.FilterSpec) []model.ScoreSnapshot {
	key := cacheKey(digest, spec.Normalize())

	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return cloneSnapshots(cached)
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		result := Rank(leads, spec)

		c.mu.Lock()
		c.entries[key] = result
		c.misses++
		c.mu.Unlock()
		return result, nil
	})

	snapshots, _ := v.([]model.ScoreSnapshot)
	return cloneSnapshots(snapshots)
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the number of cache hits and computed misses.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func cacheKey(digest string, spec model.FilterSpec) string {
	var b strings.Builder
	b.WriteString(digest)
	b.WriteByte(0)
	b.WriteString(spec.Industry)
	b.WriteByte(0)
	b.WriteString(spec.Region)
	b.WriteByte(0)
	b.WriteString(spec.SearchTerm)
	b.WriteByte(0)
	b.WriteString(strconv.FormatBool(spec.HighlightHighValueOnly))
	return b.String()
}

func cloneSnapshots(in []model.ScoreSnapshot) []model.ScoreSnapshot {
	out := make([]model.ScoreSnapshot, len(in))
	for i, s := range in {
		out[i] = model.ScoreSnapshot{Lead: s.Lead.Clone(), Score: s.Score}
	}
	return out
}
