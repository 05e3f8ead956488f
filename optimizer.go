package stringart

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/stringart/internal/parallel"
)

// Optimizer input errors.
var (
	// ErrNilReference is returned when no reference image is given.
	ErrNilReference = errors.New("stringart: reference image is nil")

	// ErrEmptyReference is returned when the reference image has no pixels.
	ErrEmptyReference = errors.New("stringart: reference image is empty")

	// ErrEmptyPalette is returned when the palette has no colors.
	ErrEmptyPalette = errors.New("stringart: palette is empty")

	// ErrDuplicateColor is returned when a palette color repeats.
	ErrDuplicateColor = errors.New("stringart: palette has duplicate colors")

	// ErrInvalidOpacity is returned when the blend opacity is outside [0, 1].
	ErrInvalidOpacity = errors.New("stringart: opacity must be in [0, 1]")

	// ErrInvalidThreshold is returned when the quality threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("stringart: quality threshold must be in [0, 1]")

	// ErrInvalidMaxLines is returned when the line budget is negative.
	ErrInvalidMaxLines = errors.New("stringart: max lines must not be negative")

	// ErrInvalidMode is returned for an unknown Mode value.
	ErrInvalidMode = errors.New("stringart: invalid mode")

	// ErrInvalidReuse is returned for an unknown ReusePolicy value.
	ErrInvalidReuse = errors.New("stringart: invalid reuse policy")
)

// Progress reports optimizer state to the WithProgress callback.
type Progress struct {
	// Lines is the number of lines accepted so far.
	Lines    int
	MaxLines int

	// Last is the most recently accepted move, if any.
	Last Move

	// Done is set on the final report, together with Stop.
	Done bool
	Stop StopReason

	Elapsed time.Duration
}

// Optimizer greedily picks pin-to-pin lines that best approximate a
// reference image.
//
// Each iteration scores every legal candidate line against the state as it
// stood at the start of the iteration, in parallel, reduces the scores to
// the single best move, and applies only that move. Ties go to the lowest
// path index, then the lowest target pin, so the output does not depend on
// the number of workers.
//
// An Optimizer may be Run any number of times; each run starts from fresh
// state.
type Optimizer struct {
	opts    options
	reuse   ReusePolicy
	pins    []Point
	palette Palette
	lines   *LineTable

	width, height int

	// Exactly one reference is set, matching the mode.
	refColor *Canvas
	refGray  *GrayMap
}

// NewOptimizer validates its inputs and prepares the line table.
//
// ref is copied, so later changes to it do not affect the optimizer.
// Color mode compares against ref's RGB values; darkness and accuracy modes
// use its luma. Single-path modes draw with the first palette color only.
func NewOptimizer(ref image.Image, pins []Point, palette Palette, opts ...Option) (*Optimizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case ref == nil:
		return nil, ErrNilReference
	case ref.Bounds().Empty():
		return nil, ErrEmptyReference
	case len(pins) == 0:
		return nil, ErrInvalidPinCount
	case len(palette) == 0:
		return nil, ErrEmptyPalette
	case !palette.Unique():
		return nil, ErrDuplicateColor
	case !(o.opacity >= 0 && o.opacity <= 1):
		return nil, fmt.Errorf("%w: %v", ErrInvalidOpacity, o.opacity)
	case !(o.qualityThreshold >= 0 && o.qualityThreshold <= 1):
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, o.qualityThreshold)
	case o.maxLines < 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLines, o.maxLines)
	case int(o.mode) >= len(modeNames):
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, o.mode)
	case int(o.reuse) >= len(reuseNames):
		return nil, fmt.Errorf("%w: %v", ErrInvalidReuse, o.reuse)
	}

	if !o.mode.MultiPath() && len(palette) > 1 {
		Logger().Warn("stringart: single-path mode uses only the first palette color",
			"mode", o.mode, "colors", len(palette))
		palette = palette[:1]
	}

	opt := &Optimizer{
		opts:    o,
		reuse:   o.reuse,
		pins:    append([]Point(nil), pins...),
		palette: append(Palette(nil), palette...),
		width:   ref.Bounds().Dx(),
		height:  ref.Bounds().Dy(),
	}
	if opt.reuse == ReuseDefault {
		opt.reuse = o.mode.DefaultReuse()
	}
	if o.mode == ModeColor {
		opt.refColor = CanvasFromImage(ref)
	} else {
		opt.refGray = GrayFromImage(ref)
	}
	opt.lines = NewLineTable(opt.pins, o.lineCacheLimit)

	Logger().Debug("stringart: line table ready",
		"pins", len(pins), "pairs", PairCount(len(pins)), "lazy", opt.lines.Lazy())
	return opt, nil
}

// Mode returns the optimizer's mode.
func (opt *Optimizer) Mode() Mode {
	return opt.opts.mode
}

// Palette returns the colors the optimizer draws with, one per path.
func (opt *Optimizer) Palette() Palette {
	return append(Palette(nil), opt.palette...)
}

// candidate is a scored move, or the absence of one when !ok.
type candidate struct {
	ok    bool
	score Score
	path  int
	to    int
}

// task scans pins [lo, hi) as next pins for one path.
type task struct {
	path   int
	lo, hi int
}

// run holds the mutable state of a single Run.
type run struct {
	opt       *Optimizer
	canvas    *Canvas
	remaining *GrayMap
	paths     []Path
	visited   []pairSet // per path; nil when reuse is allowed
	moves     []Move
}

// Run executes the greedy loop until the line budget is spent or no
// candidate passes the mode's halt predicate.
//
// ctx is checked only between iterations. When it is canceled, Run returns
// the partial result together with ctx.Err().
func (opt *Optimizer) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	r := opt.newRun()
	res := &Result{
		Mode:   opt.opts.mode,
		Width:  opt.width,
		Height: opt.height,
		Pins:   opt.pins,
	}

	log := Logger()
	log.Info("stringart: run started",
		"mode", opt.opts.mode,
		"pins", len(opt.pins),
		"colors", len(opt.palette),
		"max_lines", opt.opts.maxLines,
		"reuse", opt.reuse)

	stop, err := opt.loop(ctx, r, res, start)

	res.Stop = stop
	res.Paths = r.paths
	res.Moves = r.moves
	res.Canvas = r.canvas
	res.Remaining = r.remaining

	if stop.Early() {
		log.Info("stringart: no more improvements", "stopped_at", res.Lines())
	}
	log.Info("stringart: run finished",
		"lines", res.Lines(),
		"iterations", res.Iterations,
		"stop", stop,
		"elapsed", time.Since(start))
	if opt.lines.Lazy() {
		s := opt.lines.CacheStats()
		log.Debug("stringart: line cache", "len", s.Len, "hit_rate", s.HitRate())
	}
	opt.report(Progress{
		Lines:    res.Lines(),
		MaxLines: opt.opts.maxLines,
		Last:     lastMove(r.moves),
		Done:     true,
		Stop:     stop,
		Elapsed:  time.Since(start),
	})
	return res, err
}

func (opt *Optimizer) loop(ctx context.Context, r *run, res *Result, start time.Time) (StopReason, error) {
	if opt.opts.maxLines == 0 {
		return StopBudget, nil
	}
	if len(opt.pins) < 2 {
		return StopNoCandidates, nil
	}

	pool := parallel.NewWorkerPool(opt.opts.workers)
	defer pool.Close()

	tasks := opt.tasks(pool.Workers())
	results := make([]candidate, len(tasks))
	work := make([]func(), len(tasks))
	for i, t := range tasks {
		work[i] = func() { results[i] = r.evaluate(t) }
	}

	for range opt.opts.maxLines {
		if err := ctx.Err(); err != nil {
			return StopCanceled, err
		}
		res.Iterations++

		// Read phase: every task sees the state left by the last commit.
		pool.ExecuteAll(work)

		best := candidate{}
		for _, c := range results {
			if c.ok && (!best.ok || opt.opts.mode.better(c.score, best.score)) {
				best = c
			}
		}
		if !best.ok {
			return StopNoCandidates, nil
		}
		if stop, halt := opt.halt(best.score); halt {
			return stop, nil
		}

		// Write phase: a single move, applied before the next read phase.
		r.commit(best)

		if n := len(r.moves); n%opt.opts.progressInterval == 0 {
			Logger().Debug("stringart: progress", "lines", n, "max_lines", opt.opts.maxLines)
			opt.report(Progress{
				Lines:    n,
				MaxLines: opt.opts.maxLines,
				Last:     r.moves[n-1],
				Elapsed:  time.Since(start),
			})
		}
	}
	return StopBudget, nil
}

// tasks splits the candidate scan into work items. A lone path is cut into
// contiguous pin ranges so that it still spreads over every worker; with
// several paths each path gets an equal share of the ranges.
func (opt *Optimizer) tasks(workers int) []task {
	n := len(opt.pins)
	perPath := max(workers/len(opt.palette), 1)
	perPath = min(perPath, n)

	tasks := make([]task, 0, perPath*len(opt.palette))
	for p := range opt.palette {
		for c := range perPath {
			tasks = append(tasks, task{path: p, lo: c * n / perPath, hi: (c + 1) * n / perPath})
		}
	}
	return tasks
}

// halt applies the mode's stopping rule to the best candidate.
func (opt *Optimizer) halt(s Score) (StopReason, bool) {
	switch opt.opts.mode {
	case ModeAccuracy:
		if s.Ink == 0 {
			return StopNoImprovement, true
		}
		if s.Ratio() < opt.opts.qualityThreshold {
			return StopQualityFloor, true
		}
	default:
		if s.Value <= 0 {
			return StopNoImprovement, true
		}
	}
	return 0, false
}

func (opt *Optimizer) report(p Progress) {
	if opt.opts.progress != nil {
		opt.opts.progress(p)
	}
}

func (opt *Optimizer) newRun() *run {
	r := &run{opt: opt, paths: make([]Path, len(opt.palette))}
	for i, c := range opt.palette {
		r.paths[i] = Path{Color: c, Pins: []int{0}}
	}
	if opt.reuse == ReuseForbidden {
		r.visited = make([]pairSet, len(opt.palette))
		for i := range r.visited {
			r.visited[i] = newPairSet(PairCount(len(opt.pins)))
		}
	}
	if opt.opts.mode == ModeColor {
		r.canvas = NewCanvas(opt.width, opt.height, White)
	} else {
		r.remaining = opt.refGray.Clone()
	}
	return r
}

// evaluate returns the best candidate of t. It only reads run state.
func (r *run) evaluate(t task) candidate {
	opt := r.opt
	path := r.paths[t.path]
	from := path.Pins[len(path.Pins)-1]

	best := candidate{}
	for to := t.lo; to < t.hi; to++ {
		if to == from {
			continue
		}
		if r.visited != nil && r.visited[t.path].has(PairIndex(from, to)) {
			continue
		}
		s := r.score(opt.lines.Line(from, to), path.Color)
		if !best.ok || opt.opts.mode.better(s, best.score) {
			best = candidate{ok: true, score: s, path: t.path, to: to}
		}
	}
	return best
}

func (r *run) score(line Line, c Color) Score {
	opt := r.opt
	switch opt.opts.mode {
	case ModeColor:
		return Score{Value: ColorScore(opt.refColor, r.canvas, line, c, opt.opts.opacity)}
	case ModeAccuracy:
		ink, blank := AccuracyScore(r.remaining, line)
		s := Score{Ink: ink, Blank: blank}
		s.Value = s.Ratio()
		return s
	default:
		return Score{Value: DarknessScore(r.remaining, line)}
	}
}

// commit applies the accepted move to the raster state and its path.
func (r *run) commit(c candidate) {
	opt := r.opt
	path := &r.paths[c.path]
	from := path.Pins[len(path.Pins)-1]
	line := opt.lines.Line(from, c.to)

	if r.canvas != nil {
		r.canvas.Stroke(line, path.Color, opt.opts.opacity)
	} else {
		r.remaining.Lighten(line, opt.opts.lighten)
	}
	if r.visited != nil {
		r.visited[c.path].add(PairIndex(from, c.to))
	}
	path.Pins = append(path.Pins, c.to)
	r.moves = append(r.moves, Move{Path: c.path, From: from, To: c.to, Score: c.score})
}

func lastMove(moves []Move) Move {
	if len(moves) == 0 {
		return Move{}
	}
	return moves[len(moves)-1]
}

// pairSet is a bitset over pair indices.
type pairSet []uint64

func newPairSet(n int) pairSet {
	return make(pairSet, (n+63)/64)
}

func (s pairSet) has(k int) bool {
	return s[k/64]&(1<<(k%64)) != 0
}

func (s pairSet) add(k int) {
	s[k/64] |= 1 << (k % 64)
}
