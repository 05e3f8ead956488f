// Command stringart turns an image into string art: an ordered sequence of
// straight threads between pins on a circle, written as SVG.
//
// Usage:
//
//	stringart [flags] image
//
// Settings come from built-in defaults, then the -config YAML file, then
// a .env file and STRINGART_* environment variables, then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gogpu/stringart"
	"github.com/gogpu/stringart/internal/config"
	"github.com/gogpu/stringart/internal/imageio"
	"github.com/gogpu/stringart/internal/logging"
	"github.com/gogpu/stringart/internal/palette"
)

// Exit codes. Signal exits follow the 128 + signal number convention.
const (
	exitSuccess = 0
	exitError   = 1
	exitSIGINT  = 130
	exitSIGTERM = 143
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var signalCode atomic.Int32
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		if sig == syscall.SIGTERM {
			signalCode.Store(exitSIGTERM)
		} else {
			signalCode.Store(exitSIGINT)
		}
		cancel()
	}()

	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if code == exitSuccess {
		if c := signalCode.Load(); c != 0 {
			code = int(c)
		}
	}
	os.Exit(code)
}

// flags holds the command line, applied over the loaded configuration
// only where a flag was given explicitly.
type flags struct {
	config  string
	output  string
	preview string

	pins    int
	lines   int
	colors  int
	size    int
	mode    string
	workers int
	logFile string
	dev     bool
}

func parseFlags(args []string, stderr io.Writer) (*flag.FlagSet, *flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("stringart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: stringart [flags] image")
		fs.PrintDefaults()
	}

	fs.StringVar(&f.config, "config", "", "YAML configuration file")
	fs.StringVar(&f.output, "output", "", "SVG output file; prints pin coordinates when empty")
	fs.StringVar(&f.preview, "preview", "", "PNG preview of the rendered threads")
	fs.IntVar(&f.pins, "pins", config.DefaultPins, "number of pins on the circle")
	fs.IntVar(&f.lines, "lines", config.DefaultLines, "maximum number of lines")
	fs.IntVar(&f.colors, "colors", 1, "number of thread colors")
	fs.IntVar(&f.size, "size", config.DefaultSize, "working image size in pixels")
	fs.StringVar(&f.mode, "mode", stringart.ModeColor.String(), "scoring mode: darkness, color or accuracy")
	fs.IntVar(&f.workers, "workers", 0, "evaluation workers (0 = GOMAXPROCS)")
	fs.StringVar(&f.logFile, "log-file", "", "rotated JSON log file")
	fs.BoolVar(&f.dev, "dev", false, "verbose colored logging")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return fs, f, nil
}

// apply copies explicitly set flags onto cfg.
func (f *flags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "pins":
			cfg.Pins = f.pins
		case "lines":
			cfg.MaxLines = f.lines
		case "colors":
			cfg.Colors = f.colors
		case "size":
			cfg.Size = f.size
		case "mode":
			cfg.Mode = f.mode
		case "workers":
			cfg.Workers = f.workers
		case "log-file":
			cfg.LogFile = f.logFile
		case "dev":
			cfg.Dev = f.dev
		}
	})
}

// run executes one command invocation and returns the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs, f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitError
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitError
	}
	imagePath := fs.Arg(0)

	cfg, err := config.Load(f.config)
	if err != nil {
		fmt.Fprintf(stderr, "stringart: %v\n", err)
		return exitError
	}
	f.apply(fs, &cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "stringart: %v\n", err)
		return exitError
	}

	logger := logging.New(logging.Options{Dev: cfg.Dev, File: cfg.LogFile, Console: stderr})
	defer func() { _ = logger.Close() }()
	stringart.SetLogger(logger.Slog())
	defer stringart.SetLogger(nil)

	runID := uuid.New()
	log := logger.With(zap.String("run_id", runID.String()))

	res, err := generate(ctx, log, cfg, imagePath)
	if res == nil {
		log.Error("generation failed", zap.Error(err))
		return exitError
	}
	if err != nil {
		log.Warn("run interrupted, keeping partial result", zap.Error(err))
	}

	if f.preview != "" {
		if err := imageio.SavePNG(f.preview, res.Render(cfg.Opacity).ToImage()); err != nil {
			log.Error("saving preview failed", zap.Error(err))
			return exitError
		}
		log.Info("preview saved", zap.String("path", f.preview))
	}

	if f.output != "" {
		opts := cfg.SVGOptions()
		opts.Title = "stringart"
		opts.Description = fmt.Sprintf("run %s: %d pins, %d lines, %s mode", runID, len(res.Pins), res.Lines(), res.Mode)
		if err := stringart.SaveSVG(f.output, res, opts); err != nil {
			log.Error("saving SVG failed", zap.Error(err))
			return exitError
		}
		log.Info("SVG saved", zap.String("path", f.output))
	} else {
		printCoordinates(stdout, res)
	}

	printSummary(stderr, runID, res)
	return exitSuccess
}

// generate prepares the reference image and palette, then runs the
// optimizer. A canceled run returns its partial result with the error.
func generate(ctx context.Context, log *zap.Logger, cfg config.Config, imagePath string) (*stringart.Result, error) {
	mode, err := stringart.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	custom, err := cfg.ThreadColors()
	if err != nil {
		return nil, err
	}
	threads := cfg.Colors
	if custom != nil {
		threads = len(custom)
	}

	// Grayscale modes, and color mode with one thread, work on a dithered image.
	bilevel := !mode.MultiPath() || threads <= 1
	ref, err := imageio.Prepare(imagePath, cfg.Size, bilevel)
	if err != nil {
		return nil, err
	}

	colors := stringart.Palette{stringart.Black}
	switch {
	case custom != nil:
		colors = custom
	case mode.MultiPath() && cfg.Colors > 1:
		colors, err = palette.Extract(stringart.CanvasFromImage(ref), cfg.Colors)
		if err != nil {
			return nil, err
		}
	}
	log.Info("reference prepared",
		zap.String("image", imagePath),
		zap.Int("size", cfg.Size),
		zap.Bool("bilevel", bilevel),
		zap.Stringers("palette", []stringart.Color(colors)))

	opts, err := cfg.OptimizerOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, stringart.WithProgress(func(p stringart.Progress) {
		if !p.Done {
			log.Info("finding lines", zap.Int("line", p.Lines), zap.Int("max_lines", p.MaxLines))
		}
	}))

	pins := stringart.Pins(stringart.InscribedCircle(cfg.Size), cfg.Pins)
	opt, err := stringart.NewOptimizer(ref, pins, colors, opts...)
	if err != nil {
		return nil, err
	}
	return opt.Run(ctx)
}
