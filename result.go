package stringart

import "fmt"

// Path is the ordered pin sequence followed by one thread color.
// Consecutive pins always differ.
type Path struct {
	Color Color
	Pins  []int
}

// Lines returns the number of segments in the path.
func (p Path) Lines() int {
	return max(len(p.Pins)-1, 0)
}

// Move is one accepted line: path Path advanced from pin From to pin To.
type Move struct {
	Path  int
	From  int
	To    int
	Score Score
}

// StopReason explains why an optimizer run ended.
type StopReason uint8

const (
	// StopBudget means the line budget was used up.
	StopBudget StopReason = iota
	// StopNoImprovement means no candidate scored above zero.
	StopNoImprovement
	// StopQualityFloor means the best candidate fell below the accuracy
	// threshold.
	StopQualityFloor
	// StopNoCandidates means no legal line was left to evaluate.
	StopNoCandidates
	// StopCanceled means the context was canceled between iterations.
	StopCanceled
)

var stopNames = [...]string{
	StopBudget:        "budget exhausted",
	StopNoImprovement: "no improvement",
	StopQualityFloor:  "below quality floor",
	StopNoCandidates:  "no candidates",
	StopCanceled:      "canceled",
}

// String returns a human-readable stop reason.
func (s StopReason) String() string {
	if int(s) < len(stopNames) {
		return stopNames[s]
	}
	return fmt.Sprintf("StopReason(%d)", s)
}

// Early reports whether the run stopped before its budget for a reason
// other than cancellation.
func (s StopReason) Early() bool {
	return s == StopNoImprovement || s == StopQualityFloor || s == StopNoCandidates
}

// Result is the outcome of an optimizer run.
type Result struct {
	Mode Mode

	// Width and Height are the working raster dimensions.
	Width, Height int

	// Pins is the pin position table every path indexes into.
	Pins []Point

	// Paths holds one path per palette color, in palette order.
	Paths []Path

	// Moves lists accepted lines in the order they were applied.
	Moves []Move

	// Iterations counts evaluation rounds, including the one that halted.
	Iterations int

	Stop StopReason

	// Canvas is the final working canvas (color mode only).
	Canvas *Canvas

	// Remaining is the final remaining-darkness map (darkness and
	// accuracy modes only).
	Remaining *GrayMap
}

// Lines returns the total number of accepted lines.
func (r *Result) Lines() int {
	return len(r.Moves)
}

// Colors returns the color of each path.
func (r *Result) Colors() []Color {
	colors := make([]Color, len(r.Paths))
	for i, p := range r.Paths {
		colors[i] = p.Color
	}
	return colors
}

// Render strokes every move, in order, onto a fresh white canvas.
func (r *Result) Render(opacity float64) *Canvas {
	cv := NewCanvas(r.Width, r.Height, White)
	StrokeMoves(cv, r.Pins, r.Colors(), r.Moves, opacity)
	return cv
}

// StrokeMoves blends the line of each move onto cv, in the given order,
// using the color of the move's path.
//
// Replaying a run's moves in recorded order onto a fresh white canvas
// reproduces the run's final canvas exactly.
func StrokeMoves(cv *Canvas, pins []Point, colors []Color, moves []Move, opacity float64) {
	for _, m := range moves {
		cv.Stroke(RasterizeLine(pins[m.From], pins[m.To]), colors[m.Path], opacity)
	}
}

// LightenMoves lightens g along the line of each move, in the given order.
func LightenMoves(g *GrayMap, pins []Point, moves []Move, amount uint8) {
	for _, m := range moves {
		g.Lighten(RasterizeLine(pins[m.From], pins[m.To]), amount)
	}
}
