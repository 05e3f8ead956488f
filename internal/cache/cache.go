package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a generic thread-safe LRU cache with a fixed entry limit.
// When an insertion exceeds the limit, the least recently used entry is
// evicted.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	head    *node[K, V] // most recently used
	tail    *node[K, V] // least recently used
	limit   int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// node is an entry in the intrusive recency list.
type node[K comparable, V any] struct {
	key        K
	value      V
	prev, next *node[K, V]
}

// New creates a new cache holding at most limit entries.
// A limit of 0 or less means unlimited.
func New[K comparable, V any](limit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*node[K, V]),
		limit:   limit,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.moveToFront(n)
	return n.value, true
}

// GetOrCreate returns the cached value for key, calling create on a miss.
//
// create runs without the lock held so that concurrent misses on different
// keys do not serialize. Two goroutines missing on the same key may both
// call create; the first stored value wins and is returned to both, so
// create must be a pure function of key.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	value := create()

	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.moveToFront(n)
		return n.value
	}

	n := &node[K, V]{key: key, value: value}
	c.entries[key] = n
	c.pushFront(n)

	if c.limit > 0 {
		for len(c.entries) > c.limit {
			c.evict(c.tail)
		}
	}
	return value
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	n := len(c.entries)
	c.mu.Unlock()

	return Stats{
		Len:    n,
		Limit:  c.limit,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Limit is the maximum number of entries (0 = unlimited).
	Limit int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that found nothing.
	Misses uint64
}

// HitRate returns the fraction of lookups that were hits.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// pushFront links n as the most recently used entry.
// Caller must hold c.mu.
func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

// unlink removes n from the recency list.
// Caller must hold c.mu.
func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// moveToFront marks n as most recently used.
// Caller must hold c.mu.
func (c *Cache[K, V]) moveToFront(n *node[K, V]) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

// evict drops n from both the list and the map.
// Caller must hold c.mu.
func (c *Cache[K, V]) evict(n *node[K, V]) {
	c.unlink(n)
	delete(c.entries, n.key)
}
