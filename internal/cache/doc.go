// Package cache provides a small generic LRU cache.
//
// It backs the lazy line table, where rasterized pin-to-pin lines are
// recomputed on demand once the full table would be too large to hold:
//
//	c := cache.New[int, stringart.Line](4096)
//	line := c.GetOrCreate(pair, func() stringart.Line { return rasterize(pair) })
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
