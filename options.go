package stringart

// Defaults for optimizer options.
const (
	// DefaultMaxLines is the line budget when none is given.
	DefaultMaxLines = 2000

	// DefaultOpacity is the opacity used to blend a stroke onto the
	// working canvas in color mode.
	DefaultOpacity = 0.16

	// DefaultLighten is how much each accepted line lightens the working
	// copy in darkness and accuracy modes.
	DefaultLighten = 64

	// DefaultQualityThreshold is the ink ratio below which accuracy mode
	// stops.
	DefaultQualityThreshold = 0.45

	// DefaultLineCacheLimit bounds how many rasterized lines are kept in
	// memory. Runs with fewer pin pairs precompute every line.
	DefaultLineCacheLimit = 1 << 14

	// DefaultProgressInterval is the number of accepted lines between
	// progress reports.
	DefaultProgressInterval = 100
)

// Option configures an Optimizer during creation.
//
// Example:
//
//	opt, err := stringart.NewOptimizer(ref, pins, palette,
//	    stringart.WithMode(stringart.ModeColor),
//	    stringart.WithMaxLines(4000),
//	)
type Option func(*options)

// options holds optional configuration for Optimizer creation.
type options struct {
	mode             Mode
	maxLines         int
	opacity          float64
	lighten          uint8
	qualityThreshold float64
	reuse            ReusePolicy
	workers          int
	lineCacheLimit   int
	progress         func(Progress)
	progressInterval int
}

// defaultOptions returns the default optimizer options.
func defaultOptions() options {
	return options{
		mode:             ModeDarkness,
		maxLines:         DefaultMaxLines,
		opacity:          DefaultOpacity,
		lighten:          DefaultLighten,
		qualityThreshold: DefaultQualityThreshold,
		reuse:            ReuseDefault,
		workers:          0, // GOMAXPROCS
		lineCacheLimit:   DefaultLineCacheLimit,
		progressInterval: DefaultProgressInterval,
	}
}

// WithMode selects the scoring policy and path layout.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithMaxLines sets the line budget. Zero returns the trivial paths.
func WithMaxLines(n int) Option {
	return func(o *options) {
		o.maxLines = n
	}
}

// WithOpacity sets the stroke opacity used when blending onto the working
// canvas in color mode. It must be in [0, 1].
func WithOpacity(a float64) Option {
	return func(o *options) {
		o.opacity = a
	}
}

// WithLighten sets the intensity each accepted line adds to the working
// copy in darkness and accuracy modes.
func WithLighten(v uint8) Option {
	return func(o *options) {
		o.lighten = v
	}
}

// WithQualityThreshold sets the ink ratio floor for accuracy mode.
// It must be in [0, 1].
func WithQualityThreshold(r float64) Option {
	return func(o *options) {
		o.qualityThreshold = r
	}
}

// WithReuse overrides the mode's line-reuse policy.
func WithReuse(r ReusePolicy) Option {
	return func(o *options) {
		o.reuse = r
	}
}

// WithWorkers sets the number of evaluation workers.
// Zero or negative means GOMAXPROCS. The result does not depend on it.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLineCacheLimit bounds the number of rasterized lines kept in memory.
// Zero precomputes every pin pair regardless of count.
func WithLineCacheLimit(n int) Option {
	return func(o *options) {
		o.lineCacheLimit = n
	}
}

// WithProgress registers a callback invoked from the optimizer goroutine
// every progress interval and once when the run stops.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressInterval sets the number of accepted lines between progress
// callbacks. Values below 1 are treated as 1.
func WithProgressInterval(n int) Option {
	return func(o *options) {
		o.progressInterval = max(n, 1)
	}
}
