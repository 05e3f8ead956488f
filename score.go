package stringart

// Score is the desirability of one candidate line.
//
// Darkness and color modes rank by Value. Accuracy mode ranks by Ink, then
// by fewer Blank pixels, and leaves Value at the ink ratio for reporting.
type Score struct {
	Value float64
	Ink   int
	Blank int
}

// Ratio returns Ink/(Ink+Blank), or 0 when the line had no in-bounds pixels.
func (s Score) Ratio() float64 {
	n := s.Ink + s.Blank
	if n == 0 {
		return 0
	}
	return float64(s.Ink) / float64(n)
}

// better reports whether a strictly outranks b under mode m.
func (m Mode) better(a, b Score) bool {
	if m == ModeAccuracy {
		if a.Ink != b.Ink {
			return a.Ink > b.Ink
		}
		return a.Blank < b.Blank
	}
	return a.Value > b.Value
}

// DarknessScore returns Σ(255 - v) over the in-bounds pixels of line.
func DarknessScore(remaining *GrayMap, line Line) float64 {
	var sum int
	for _, p := range line {
		if v, ok := remaining.Value(p); ok {
			sum += 255 - int(v)
		}
	}
	return float64(sum)
}

// ColorScore returns how much stroking line with c at opacity would reduce
// the squared RGB error between canvas and ref. Negative values mean the
// stroke would move the canvas away from the reference.
func ColorScore(ref, canvas *Canvas, line Line, c Color, opacity float64) float64 {
	var sum float64
	for _, p := range line {
		i, ok := canvas.index(p)
		if !ok {
			continue
		}
		// ref and canvas share dimensions, so the offset is valid for both.
		src := ref.load(i)
		cur := canvas.load(i)
		sum += DistanceSq(src, cur) - DistanceSq(src, Blend(cur, c, opacity))
	}
	return sum
}

// AccuracyScore counts the in-bounds pixels of line that still hold ink
// (any value below white) and those that are already blank.
func AccuracyScore(remaining *GrayMap, line Line) (ink, blank int) {
	for _, p := range line {
		v, ok := remaining.Value(p)
		if !ok {
			continue
		}
		if v < 255 {
			ink++
		} else {
			blank++
		}
	}
	return ink, blank
}
