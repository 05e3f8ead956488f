package stringart

import "github.com/gogpu/stringart/internal/cache"

// LineTable returns the rasterized line for any pin pair.
//
// Small tables are computed eagerly into a dense slice indexed by
// PairIndex. Once the pair count exceeds the cache limit, lines are
// rasterized on demand and the most recently used ones are kept.
// Lines are stored in the canonical direction, so callers must not rely
// on their order, only on their pixel set.
//
// LineTable is safe for concurrent use.
type LineTable struct {
	pins  []Point
	dense []Line
	lazy  *cache.Cache[int, Line]
}

// NewLineTable builds a table for pins. limit bounds the number of lines
// held in memory; 0 means precompute all of them.
func NewLineTable(pins []Point, limit int) *LineTable {
	t := &LineTable{pins: pins}
	n := PairCount(len(pins))
	if limit > 0 && n > limit {
		t.lazy = cache.New[int, Line](limit)
		return t
	}
	t.dense = make([]Line, n)
	for k := range t.dense {
		i, j := PairFromIndex(k)
		t.dense[k] = RasterizeLine(pins[i], pins[j])
	}
	return t
}

// Line returns the pixels connecting pins i and j.
func (t *LineTable) Line(i, j int) Line {
	k := PairIndex(i, j)
	if t.lazy == nil {
		return t.dense[k]
	}
	return t.lazy.GetOrCreate(k, func() Line {
		lo, hi := PairFromIndex(k)
		return RasterizeLine(t.pins[lo], t.pins[hi])
	})
}

// Lazy reports whether lines are computed on demand.
func (t *LineTable) Lazy() bool {
	return t.lazy != nil
}

// CacheStats returns the on-demand cache statistics, or the zero value
// when the table is dense.
func (t *LineTable) CacheStats() cache.Stats {
	if t.lazy == nil {
		return cache.Stats{}
	}
	return t.lazy.Stats()
}
