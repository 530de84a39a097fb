package cache

import "sync"

// Cache is a thread-safe LRU cache bounded by entry count and total cost.
// When either bound is exceeded, least recently used entries are evicted.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]*entry[K, V]
	order      lruList[K, V]
	maxEntries int
	maxCost    int64
	cost       int64
	costFn     func(V) int64

	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a cache holding at most maxEntries entries whose costs sum to
// at most maxCost. A bound of 0 disables it. A nil costFn gives every
// entry cost 1.
func New[K comparable, V any](maxEntries int, maxCost int64, costFn func(V) int64) *Cache[K, V] {
	if costFn == nil {
		costFn = func(V) int64 { return 1 }
	}
	return &Cache[K, V]{
		entries:    make(map[K]*entry[K, V]),
		maxEntries: maxEntries,
		maxCost:    maxCost,
		costFn:     costFn,
	}
}

// Get returns the value for key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(e)
	return e.value, true
}

// Add stores value under key, replacing any previous value. A value whose
// cost alone exceeds the cost bound is not stored. Add reports whether the
// value was stored.
func (c *Cache[K, V]) Add(key K, value V) bool {
	cost := c.costFn(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxCost > 0 && cost > c.maxCost {
		return false
	}

	if e, ok := c.entries[key]; ok {
		c.cost += cost - e.cost
		e.value, e.cost = value, cost
		c.order.moveToFront(e)
	} else {
		e := &entry[K, V]{key: key, value: value, cost: cost}
		c.entries[key] = e
		c.order.pushFront(e)
		c.cost += cost
	}

	c.evict()
	return true
}

// Delete removes key. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.remove(e)
	return true
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[K, V])
	c.order = lruList[K, V]{}
	c.cost = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:       len(c.entries),
		Cost:      c.cost,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// evict drops least recently used entries until both bounds hold.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	for {
		over := (c.maxEntries > 0 && len(c.entries) > c.maxEntries) ||
			(c.maxCost > 0 && c.cost > c.maxCost)
		if !over {
			return
		}
		e := c.order.back()
		if e == nil {
			return
		}
		c.remove(e)
		c.evictions++
	}
}

// remove unlinks e and forgets it. Caller must hold c.mu.
func (c *Cache[K, V]) remove(e *entry[K, V]) {
	c.order.unlink(e)
	delete(c.entries, e.key)
	c.cost -= e.cost
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int

	// Cost is the summed cost of all entries.
	Cost int64

	// Hits and Misses count Get calls.
	Hits   uint64
	Misses uint64

	// Evictions counts entries dropped to honor a bound.
	Evictions uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 before the first Get.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
