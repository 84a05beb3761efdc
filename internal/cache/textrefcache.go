// Package cache implements the C6 TextRef Cache: a fingerprint-keyed LRU
// with optional TTL and single-flight coalescing of concurrent misses.
package cache

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Result is the cached textref outcome (kept generic via `any` so this
// package does not import textref and create a cycle; callers store
// whatever their Provider.ToIPA returns).
type Result = any

type entry struct {
	key       string
	value     Result
	createdAt time.Time
	hits      int
}

// Stats summarizes cache behavior.
type Stats struct {
	Hits     int64
	Misses   int64
	Size     int
	Capacity int
}

// HitRate returns Hits / (Hits+Misses), or 0 when there have been no calls.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// TextRefCache is a sync.Mutex-guarded container/list.List + map LRU, the
// classic Go LRU shape. Single-flight coalescing is
// golang.org/x/sync/singleflight, purpose-built for exactly this
// "duplicate function call suppression" requirement.
type TextRefCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	ll       *list.List
	items    map[string]*list.Element

	sf singleflight.Group

	hits, misses int64
}

// New builds a TextRefCache with the given capacity and TTL (0 disables
// expiry).
func New(capacity int, ttl time.Duration) *TextRefCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &TextRefCache{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Key derives the fingerprint key per §4.6:
// sha256(provider || ':' || lang || ':' || text)[:32].
func Key(provider, lang, text string) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte(":"))
	h.Write([]byte(lang))
	h.Write([]byte(":"))
	h.Write([]byte(text))
	sum := hex.EncodeToString(h.Sum(nil))
	return sum[:32]
}

// Get looks up key, touching LRU order on hit. An entry older than the
// configured TTL is treated as a miss and evicted. Counts toward the
// hit/miss stats.
func (c *TextRefCache) Get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lookupLocked(key)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// peek is lookupLocked's unlocked-stats counterpart: it performs the same
// lookup (including TTL eviction and LRU touch) without recording a hit or
// miss. Used for the singleflight re-check below, which does not represent
// a second logical cache access.
func (c *TextRefCache) peek(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookupLocked(key)
}

func (c *TextRefCache) lookupLocked(key string) (Result, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	ent := el.Value.(*entry)
	if c.ttl > 0 && time.Since(ent.createdAt) > c.ttl {
		c.removeElement(el)
		return nil, false
	}
	c.ll.MoveToFront(el)
	ent.hits++
	return ent.value, true
}

// Set inserts or updates key, touching LRU order and evicting the oldest
// entry until size <= capacity.
func (c *TextRefCache) Set(key string, value Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(key, value)
}

func (c *TextRefCache) setLocked(key string, value Result) {
	if el, ok := c.items[key]; ok {
		ent := el.Value.(*entry)
		ent.value = value
		ent.createdAt = time.Now()
		c.ll.MoveToFront(el)
		return
	}
	ent := &entry{key: key, value: value, createdAt: time.Now()}
	el := c.ll.PushFront(ent)
	c.items[key] = el

	for c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *TextRefCache) removeElement(el *list.Element) {
	c.ll.Remove(el)
	ent := el.Value.(*entry)
	delete(c.items, ent.key)
}

// ComputeFunc produces a fresh value on a cache miss.
type ComputeFunc func(ctx context.Context) (Result, error)

// GetOrCompute returns the cached value for key, or invokes compute on a
// miss, storing and returning its result. Concurrent callers with the same
// key coalesce to one underlying compute call via singleflight; if that
// computation fails, every waiter observes the failure and nothing is
// cached (no partial/negative caching), per §4.6 and §7.
func (c *TextRefCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (Result, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Re-check under singleflight: another goroutine may have populated
		// the cache between our Get above and acquiring the singleflight
		// slot. Uses peek, not Get: this re-check is not a second logical
		// cache access and must not double-count the miss already recorded
		// above.
		if v, ok := c.peek(key); ok {
			return v, nil
		}
		result, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate removes key if present.
func (c *TextRefCache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.removeElement(el)
	}
}

// Clear empties the cache.
func (c *TextRefCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll = list.New()
	c.items = make(map[string]*list.Element)
}

// StatsSnapshot reports current hit/miss counters and size.
func (c *TextRefCache) StatsSnapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:     c.hits,
		Misses:   c.misses,
		Size:     c.ll.Len(),
		Capacity: c.capacity,
	}
}
