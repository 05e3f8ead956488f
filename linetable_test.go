package stringart

import (
	"cmp"
	"image"
	"slices"
	"testing"
)

func comparePoints(a, b image.Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

func TestLineTable_DenseMatchesRasterizer(t *testing.T) {
	pins := Pins(InscribedCircle(64), 12)
	table := NewLineTable(pins, 0)
	if table.Lazy() {
		t.Fatal("limit 0 should build a dense table")
	}

	for i := range pins {
		for j := range pins {
			if i == j {
				continue
			}
			got := slices.Clone(table.Line(i, j))
			slices.SortFunc(got, comparePoints)
			want := RasterizeLine(pins[i], pins[j])
			slices.SortFunc(want, comparePoints)
			if !slices.Equal(got, want) {
				t.Fatalf("Line(%d,%d) pixel set differs from RasterizeLine", i, j)
			}
		}
	}
}

func TestLineTable_LazyMatchesDense(t *testing.T) {
	pins := Pins(InscribedCircle(80), 20)
	dense := NewLineTable(pins, 0)
	lazy := NewLineTable(pins, 10)
	if !lazy.Lazy() {
		t.Fatal("limit below pair count should build a lazy table")
	}

	for round := range 2 {
		for i := range pins {
			for j := i + 1; j < len(pins); j++ {
				if !slices.Equal(dense.Line(i, j), lazy.Line(j, i)) {
					t.Fatalf("round %d: lazy Line(%d,%d) differs from dense", round, j, i)
				}
			}
		}
	}
	if s := lazy.CacheStats(); s.Len > 10 {
		t.Errorf("lazy cache holds %d lines, limit 10", s.Len)
	}
}

func TestLineTable_SmallPairCountStaysDense(t *testing.T) {
	table := NewLineTable(Pins(InscribedCircle(32), 5), 100)
	if table.Lazy() {
		t.Error("10 pairs under a limit of 100 should be dense")
	}
	if s := table.CacheStats(); s.Len != 0 || s.Hits != 0 || s.Misses != 0 {
		t.Errorf("dense CacheStats() = %+v, want zero", s)
	}
}
