package stringart

import (
	"bufio"
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo/float"
)

// Defaults for SVG output. They describe the physical look of the thread
// and are independent of the optimizer's internal blending opacity.
const (
	DefaultStrokeWidth   = 0.64
	DefaultStrokeOpacity = 0.24
)

// SVGOptions controls how a Result is drawn.
type SVGOptions struct {
	StrokeWidth   float64
	StrokeOpacity float64

	// Title and Description are emitted as <title> and <desc> when set.
	Title       string
	Description string
}

// DefaultSVGOptions returns the default drawing options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		StrokeWidth:   DefaultStrokeWidth,
		StrokeOpacity: DefaultStrokeOpacity,
	}
}

// WriteSVG draws r as one straight stroke per consecutive pin pair of each
// path, over a white background.
//
// Pin space has y pointing up while SVG has y pointing down, so every y is
// written as Height - y. Paths with fewer than two pins are skipped.
func WriteSVG(w io.Writer, r *Result, opts SVGOptions) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := float64(r.Width), float64(r.Height)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, r.Width, r.Height))
	if opts.Title != "" {
		canvas.Title(opts.Title)
	}
	if opts.Description != "" {
		canvas.Desc(opts.Description)
	}
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, path := range r.Paths {
		if len(path.Pins) < 2 {
			continue
		}
		canvas.Gstyle(fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g;stroke-opacity:%g",
			path.Color.Hex(), opts.StrokeWidth, opts.StrokeOpacity))
		for i := 1; i < len(path.Pins); i++ {
			p1 := r.Pins[path.Pins[i-1]]
			p2 := r.Pins[path.Pins[i]]
			canvas.Line(p1.X, height-p1.Y, p2.X, height-p2.Y)
		}
		canvas.Gend()
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("stringart: write svg: %w", ew.err)
	}
	return nil
}

// SaveSVG writes r to the file at path, replacing it if it exists.
func SaveSVG(path string, r *Result, opts SVGOptions) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("stringart: write svg: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := WriteSVG(bw, r, opts); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("stringart: write svg: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("stringart: write svg: %w", err)
	}
	return nil
}

// errWriter remembers the first write error and drops later writes,
// since svgo does not report errors itself.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
