package cache

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestCache_GetMiss(t *testing.T) {
	c := New[int, string](4)
	if v, ok := c.Get(1); ok || v != "" {
		t.Errorf("Get(1) = (%q, %v), want (\"\", false)", v, ok)
	}
	if s := c.Stats(); s.Misses != 1 || s.Hits != 0 {
		t.Errorf("Stats() = %+v, want 1 miss, 0 hits", s)
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[int, int](0)
	calls := 0
	create := func() int {
		calls++
		return 42
	}

	if got := c.GetOrCreate(7, create); got != 42 {
		t.Fatalf("GetOrCreate() = %d, want 42", got)
	}
	if got := c.GetOrCreate(7, create); got != 42 {
		t.Fatalf("GetOrCreate() second call = %d, want 42", got)
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for k := range 3 {
		c.GetOrCreate(k, func() int { return k * 10 })
	}

	// Touch 0 so that 1 becomes the oldest entry.
	if _, ok := c.Get(0); !ok {
		t.Fatal("Get(0) missed before eviction")
	}
	c.GetOrCreate(3, func() int { return 30 })

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if _, ok := c.Get(1); ok {
		t.Error("entry 1 should have been evicted")
	}
	for _, k := range []int{0, 2, 3} {
		if v, ok := c.Get(k); !ok || v != k*10 {
			t.Errorf("Get(%d) = (%d, %v), want (%d, true)", k, v, ok, k*10)
		}
	}
}

func TestCache_Unlimited(t *testing.T) {
	c := New[int, int](0)
	for k := range 1000 {
		c.GetOrCreate(k, func() int { return k })
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000", c.Len())
	}
}

func TestCache_LimitOne(t *testing.T) {
	c := New[string, int](1)
	c.GetOrCreate("a", func() int { return 1 })
	c.GetOrCreate("b", func() int { return 2 })

	if _, ok := c.Get("a"); ok {
		t.Error("entry a should have been evicted")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = (%d, %v), want (2, true)", v, ok)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[int, int](64)
	var created atomic.Int64

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				k := (i + g) % 128
				v := c.GetOrCreate(k, func() int {
					created.Add(1)
					return k * 2
				})
				if v != k*2 {
					t.Errorf("GetOrCreate(%d) = %d, want %d", k, v, k*2)
					return
				}
			}
		}()
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d, exceeds limit 64", c.Len())
	}
	if created.Load() == 0 {
		t.Error("create was never called")
	}
}

func TestStats_HitRate(t *testing.T) {
	tests := []struct {
		name string
		s    Stats
		want float64
	}{
		{"empty", Stats{}, 0},
		{"all hits", Stats{Hits: 4}, 1},
		{"half", Stats{Hits: 2, Misses: 2}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.HitRate(); got != tt.want {
				t.Errorf("HitRate() = %v, want %v", got, tt.want)
			}
		})
	}
}
