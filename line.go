package stringart

import (
	"image"
	"iter"
	"slices"
)

// Line is a rasterized segment: an ordered run of integer pixel
// coordinates in pin space, gap-free, with both endpoints included.
type Line []image.Point

// RasterizeLine returns the pixels of the segment from a to b.
//
// Both endpoints are rounded to the nearest pixel first. Rasterizing (a, b)
// and (b, a) yields the same pixels in reverse order.
func RasterizeLine(a, b Point) Line {
	return slices.Collect(LinePoints(a, b))
}

// LinePoints returns the pixels of the segment from a to b as a sequence.
// The sequence may be iterated any number of times.
func LinePoints(a, b Point) iter.Seq[image.Point] {
	p0, p1 := a.Round(), b.Round()
	if canonical(p0, p1) {
		return func(yield func(image.Point) bool) {
			bresenham(p0, p1, yield)
		}
	}
	// Walk the canonical direction and hand the pixels back reversed, so
	// the pixel set never depends on argument order.
	return func(yield func(image.Point) bool) {
		var pts []image.Point
		bresenham(p1, p0, func(p image.Point) bool {
			pts = append(pts, p)
			return true
		})
		for i := len(pts) - 1; i >= 0; i-- {
			if !yield(pts[i]) {
				return
			}
		}
	}
}

// canonical reports whether p0 precedes or equals p1 in (X, Y) order.
func canonical(p0, p1 image.Point) bool {
	if p0.X != p1.X {
		return p0.X < p1.X
	}
	return p0.Y <= p1.Y
}

// bresenham steps from p0 to p1 inclusive with an integer error term.
// Each step advances one or both axes; the walk ends exactly on p1.
func bresenham(p0, p1 image.Point, yield func(image.Point) bool) {
	dx, sx := p1.X-p0.X, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := p1.Y-p0.Y, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}

	err := dx - dy
	x, y := p0.X, p0.Y
	for {
		if !yield(image.Point{X: x, Y: y}) {
			return
		}
		if x == p1.X && y == p1.Y {
			return
		}
		e := 2 * err
		if e > -dy {
			err -= dy
			x += sx
		}
		if e < dx {
			err += dx
			y += sy
		}
	}
}
