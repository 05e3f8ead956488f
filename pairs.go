package stringart

import "math"

// PairCount returns the number of unordered pin pairs among n pins.
func PairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// PairIndex maps the unordered pair {i, j} (i != j) to a dense index in
// [0, PairCount(n)). {i, j} and {j, i} share an index.
func PairIndex(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return j*(j-1)/2 + i
}

// PairFromIndex is the inverse of PairIndex. It returns the pair with i < j.
func PairFromIndex(k int) (i, j int) {
	// j is the largest integer with j(j-1)/2 <= k.
	j = int((1 + math.Sqrt(float64(8*k+1))) / 2)
	for j*(j-1)/2 > k {
		j--
	}
	for (j+1)*j/2 <= k {
		j++
	}
	return k - j*(j-1)/2, j
}
