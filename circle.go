package stringart

import (
	"errors"
	"fmt"
	"math"
)

// Geometry errors.
var (
	// ErrInvalidRadius is returned when a circle radius is not positive.
	ErrInvalidRadius = errors.New("stringart: radius must be positive")

	// ErrInvalidPinCount is returned when fewer than one pin is requested.
	ErrInvalidPinCount = errors.New("stringart: pin count must be positive")
)

// Circle is the frame the pins are placed on.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle returns a circle after validating its radius.
func NewCircle(center Point, radius float64) (Circle, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Circle{}, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return Circle{Center: center, Radius: radius}, nil
}

// InscribedCircle returns the largest circle centered in a size×size square,
// the frame used for square working images.
func InscribedCircle(size int) Circle {
	half := float64(size) / 2
	return Circle{Center: Pt(half, half), Radius: half}
}

// Pins returns n points evenly spaced on c.
//
// Pin k lies at angle 2πk/n measured counter-clockwise from the positive
// x axis. The ordering is stable: paths refer to pins by index.
func Pins(c Circle, n int) []Point {
	if n <= 0 {
		return nil
	}
	pins := make([]Point, n)
	for k := range pins {
		theta := 2 * math.Pi * float64(k) / float64(n)
		pins[k] = c.Center.Add(Pt(math.Cos(theta), math.Sin(theta)).Mul(c.Radius))
	}
	return pins
}
