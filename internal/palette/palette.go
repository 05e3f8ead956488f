// Package palette extracts a small set of representative thread colors
// from a reference image with deterministic k-means clustering.
//
// Seeding is k-means++ over a PCG source, so a given image always yields
// the same palette. Assignment and recentering use muesli/clusters.
package palette

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/muesli/clusters"

	"github.com/gogpu/stringart"
)

// Defaults for Extract.
const (
	DefaultSampleLimit = 1 << 16
	DefaultIterations  = 32
)

// ErrInvalidCount is returned when fewer than one color is requested.
var ErrInvalidCount = errors.New("palette: color count must be at least 1")

// Option configures Extract.
type Option func(*options)

type options struct {
	sampleLimit int
	iterations  int
	seed        uint64
}

// WithSampleLimit bounds the number of pixels clustered. Larger images
// are sampled with a fixed stride.
func WithSampleLimit(n int) Option {
	return func(o *options) {
		o.sampleLimit = max(n, 1)
	}
}

// WithIterations bounds the number of refinement rounds.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = max(n, 1)
	}
}

// WithSeed changes the seed of the centroid initialization.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func toColor(c clusters.Coordinates) stringart.Color {
	return stringart.Color{R: round8(c[0]), G: round8(c[1]), B: round8(c[2])}
}

func round8(v float64) uint8 {
	return uint8(min(max(v+0.5, 0), 255))
}

func distSq(a, b clusters.Coordinates) float64 {
	d0, d1, d2 := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return d0*d0 + d1*d1 + d2*d2
}

// swatch is a palette entry with the number of samples it represents.
type swatch struct {
	color stringart.Color
	count int
}

// Extract returns at most k distinct colors representing cv, ordered by
// how many pixels each one covers, most common first.
//
// The result is deterministic for a given image, k and options. Images
// with no more than k distinct colors yield exactly those colors.
func Extract(cv *stringart.Canvas, k int, opts ...Option) (stringart.Palette, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, k)
	}
	o := options{
		sampleLimit: DefaultSampleLimit,
		iterations:  DefaultIterations,
		seed:        0x5eed,
	}
	for _, opt := range opts {
		opt(&o)
	}

	samples := sample(cv, o.sampleLimit)
	if len(samples) == 0 {
		return stringart.Palette{}, nil
	}

	if distinct := countDistinct(samples); len(distinct) <= k {
		return order(distinct), nil
	}

	observations := make(clusters.Observations, len(samples))
	for i, c := range samples {
		observations[i] = clusters.Coordinates{float64(c.R), float64(c.G), float64(c.B)}
	}
	rng := rand.New(rand.NewPCG(o.seed, uint64(k)))
	cc := seedClusters(observations, k, rng)
	refine(cc, observations, o.iterations)

	swatches := make([]swatch, 0, len(cc))
	for _, c := range cc {
		if n := len(c.Observations); n > 0 {
			swatches = append(swatches, swatch{color: toColor(c.Center), count: n})
		}
	}
	return order(swatches), nil
}

// sample walks the pixels of cv with a fixed stride so that at most limit
// colors are returned.
func sample(cv *stringart.Canvas, limit int) []stringart.Color {
	w, h := cv.Width(), cv.Height()
	total := w * h
	if total == 0 {
		return nil
	}
	stride := max((total+limit-1)/limit, 1)
	out := make([]stringart.Color, 0, (total+stride-1)/stride)
	for i := 0; i < total; i += stride {
		out = append(out, cv.RGBAt(i%w, i/w))
	}
	return out
}

func countDistinct(samples []stringart.Color) []swatch {
	idx := make(map[stringart.Color]int)
	var out []swatch
	for _, c := range samples {
		if i, ok := idx[c]; ok {
			out[i].count++
			continue
		}
		idx[c] = len(out)
		out = append(out, swatch{color: c, count: 1})
	}
	return out
}

// seedClusters picks up to k initial centers with k-means++: each next
// center is drawn with probability proportional to its squared distance
// from the nearest center chosen so far.
func seedClusters(observations clusters.Observations, k int, rng *rand.Rand) clusters.Clusters {
	first := observations[rng.IntN(len(observations))].Coordinates()
	cc := clusters.Clusters{{Center: first}}

	dist := make([]float64, len(observations))
	for i, ob := range observations {
		dist[i] = distSq(ob.Coordinates(), first)
	}
	for len(cc) < k {
		var sum float64
		for _, d := range dist {
			sum += d
		}
		if sum == 0 {
			break
		}
		target := rng.Float64() * sum
		next := len(observations) - 1
		for i, d := range dist {
			target -= d
			if target < 0 {
				next = i
				break
			}
		}
		center := observations[next].Coordinates()
		cc = append(cc, clusters.Cluster{Center: center})
		for i, ob := range observations {
			dist[i] = min(dist[i], distSq(ob.Coordinates(), center))
		}
	}
	return cc
}

// refine runs Lloyd iterations until no observation changes cluster or
// the iteration bound is reached. On return every cluster holds the
// observations nearest to its center. A cluster that loses all its
// observations keeps its center.
func refine(cc clusters.Clusters, observations clusters.Observations, iterations int) {
	assign := make([]int, len(observations))
	for i := range assign {
		assign[i] = -1
	}
	for round := 0; ; round++ {
		cc.Reset()
		changed := false
		for i, ob := range observations {
			ci := cc.Nearest(ob)
			cc[ci].Append(ob)
			if ci != assign[i] {
				assign[i] = ci
				changed = true
			}
		}
		if !changed || round == iterations {
			return
		}
		cc.Recenter()
	}
}

// order sorts swatches by population, then by color value, and drops
// repeated colors.
func order(swatches []swatch) stringart.Palette {
	slices.SortFunc(swatches, func(a, b swatch) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Or(
			cmp.Compare(a.color.R, b.color.R),
			cmp.Compare(a.color.G, b.color.G),
			cmp.Compare(a.color.B, b.color.B),
		)
	})
	out := make(stringart.Palette, 0, len(swatches))
	seen := make(map[stringart.Color]bool, len(swatches))
	for _, c := range swatches {
		if !seen[c.color] {
			seen[c.color] = true
			out = append(out, c.color)
		}
	}
	return out
}
