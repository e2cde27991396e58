package generics

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/cottand/jgenerics/types"
	"github.com/cottand/jgenerics/util"
)

// locatorKey identifies a lookup by the identity of the declaration and the receiver
type locatorKey = util.Pair[*types.TypeRef, *types.TypeRef]

// locatorEntry wraps a result so that "not found" can be cached too
type locatorEntry struct {
	found *types.TypeRef
}

// locatorCache memoizes findParameterizedType. It is bounded, least recently
// used entries are evicted first, and it is safe for concurrent use.
//
// A stale or missing entry only costs a recomputation: results never depend
// on whether they came from the cache.
type locatorCache struct {
	mu   sync.Mutex
	lru  *lru.Cache
	hits int
	miss int
}

// CacheStats reports locator cache usage since the last invalidation
type CacheStats struct {
	Entries int
	Hits    int
	Misses  int
}

func newLocatorCache(size int) *locatorCache {
	return &locatorCache{lru: lru.New(size)}
}

func (c *locatorCache) get(key locatorKey) (*types.TypeRef, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		c.miss++
		return nil, false
	}
	c.hits++
	return v.(locatorEntry).found, true
}

func (c *locatorCache) put(key locatorKey, found *types.TypeRef) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, locatorEntry{found: found})
}

func (c *locatorCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Clear()
	c.hits, c.miss = 0, 0
}

func (c *locatorCache) stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{Entries: c.lru.Len(), Hits: c.hits, Misses: c.miss}
}
