package stringart

import (
	"image"
	"math"
)

// Point represents a 2D point in pin space.
//
// Pin space has its origin at the bottom-left of the working image and
// its y axis pointing up, matching the angular convention used by [Pins].
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Round returns the nearest integer pixel coordinate.
// Halves round away from zero.
func (p Point) Round() image.Point {
	return image.Point{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}
