// Package config assembles a run configuration from defaults, an optional
// YAML file, a .env file and STRINGART_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/stringart"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "STRINGART_"

// Defaults.
const (
	DefaultPins  = 288
	DefaultLines = 4000
	DefaultSize  = 720
)

// Configuration errors.
var (
	// ErrInvalidConfig is wrapped by every Validate error.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config holds every tunable of a run.
type Config struct {
	Pins     int `yaml:"pins"`
	MaxLines int `yaml:"max_lines"`

	// Colors is the palette size. One selects a black thread over a
	// dithered reference.
	Colors int `yaml:"colors"`

	// Palette lists thread colors as hex strings. When set it replaces
	// colors extracted from the image and Colors is ignored.
	Palette []string `yaml:"palette"`

	// Size is the side of the square working image in pixels.
	Size int `yaml:"size"`

	Mode  string `yaml:"mode"`
	Reuse string `yaml:"reuse"`

	Opacity          float64 `yaml:"opacity"`
	Lighten          int     `yaml:"lighten"`
	QualityThreshold float64 `yaml:"quality_threshold"`
	Workers          int     `yaml:"workers"`
	LineCacheLimit   int     `yaml:"line_cache_limit"`

	StrokeWidth   float64 `yaml:"stroke_width"`
	StrokeOpacity float64 `yaml:"stroke_opacity"`

	LogFile string `yaml:"log_file"`
	Dev     bool   `yaml:"dev"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Pins:             DefaultPins,
		MaxLines:         DefaultLines,
		Colors:           1,
		Size:             DefaultSize,
		Mode:             stringart.ModeColor.String(),
		Reuse:            stringart.ReuseDefault.String(),
		Opacity:          stringart.DefaultOpacity,
		Lighten:          stringart.DefaultLighten,
		QualityThreshold: stringart.DefaultQualityThreshold,
		LineCacheLimit:   stringart.DefaultLineCacheLimit,
		StrokeWidth:      stringart.DefaultStrokeWidth,
		StrokeOpacity:    stringart.DefaultStrokeOpacity,
	}
}

// Load returns the default configuration overlaid with the YAML file at
// path (skipped when path is empty), the .env file in the working
// directory if present, and the process environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := LoadDotEnv(".env"); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("config: read file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads variables from the .env file at path into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if _, err := stringart.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := stringart.ParseReusePolicy(c.Reuse); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.ThreadColors(); err != nil {
		return err
	}
	switch {
	case c.Pins < 2:
		return fmt.Errorf("%w: pins must be at least 2, got %d", ErrInvalidConfig, c.Pins)
	case c.MaxLines < 0:
		return fmt.Errorf("%w: max_lines must not be negative, got %d", ErrInvalidConfig, c.MaxLines)
	case c.Colors < 1:
		return fmt.Errorf("%w: colors must be at least 1, got %d", ErrInvalidConfig, c.Colors)
	case c.Size < 1:
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	case c.Opacity < 0 || c.Opacity > 1:
		return fmt.Errorf("%w: opacity must be in [0, 1], got %v", ErrInvalidConfig, c.Opacity)
	case c.Lighten < 0 || c.Lighten > 255:
		return fmt.Errorf("%w: lighten must be in [0, 255], got %d", ErrInvalidConfig, c.Lighten)
	case c.QualityThreshold < 0 || c.QualityThreshold > 1:
		return fmt.Errorf("%w: quality_threshold must be in [0, 1], got %v", ErrInvalidConfig, c.QualityThreshold)
	case c.LineCacheLimit < 0:
		return fmt.Errorf("%w: line_cache_limit must not be negative, got %d", ErrInvalidConfig, c.LineCacheLimit)
	case c.StrokeWidth <= 0:
		return fmt.Errorf("%w: stroke_width must be positive, got %v", ErrInvalidConfig, c.StrokeWidth)
	case c.StrokeOpacity < 0 || c.StrokeOpacity > 1:
		return fmt.Errorf("%w: stroke_opacity must be in [0, 1], got %v", ErrInvalidConfig, c.StrokeOpacity)
	}
	return nil
}

// OptimizerOptions translates c into optimizer options. c must be valid.
func (c Config) OptimizerOptions() ([]stringart.Option, error) {
	mode, err := stringart.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	reuse, err := stringart.ParseReusePolicy(c.Reuse)
	if err != nil {
		return nil, err
	}
	return []stringart.Option{
		stringart.WithMode(mode),
		stringart.WithMaxLines(c.MaxLines),
		stringart.WithOpacity(c.Opacity),
		stringart.WithLighten(uint8(c.Lighten)),
		stringart.WithQualityThreshold(c.QualityThreshold),
		stringart.WithReuse(reuse),
		stringart.WithWorkers(c.Workers),
		stringart.WithLineCacheLimit(c.LineCacheLimit),
	}, nil
}

// ThreadColors parses Palette. It returns nil when no palette is set.
func (c Config) ThreadColors() (stringart.Palette, error) {
	if len(c.Palette) == 0 {
		return nil, nil
	}
	p := make(stringart.Palette, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, err := stringart.ParseHex(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: palette: %w", ErrInvalidConfig, err)
		}
		p = append(p, col)
	}
	if !p.Unique() {
		return nil, fmt.Errorf("%w: palette has duplicate colors", ErrInvalidConfig)
	}
	return p, nil
}

// SVGOptions returns the drawing options for c.
func (c Config) SVGOptions() stringart.SVGOptions {
	return stringart.SVGOptions{
		StrokeWidth:   c.StrokeWidth,
		StrokeOpacity: c.StrokeOpacity,
	}
}
