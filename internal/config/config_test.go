package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/stringart"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "run.yaml", `
pins: 200
mode: darkness
quality_threshold: 0.5
dev: true
`)
	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Pins != 200 || cfg.Mode != "darkness" || cfg.QualityThreshold != 0.5 || !cfg.Dev {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.MaxLines != DefaultLines || cfg.Size != DefaultSize {
		t.Errorf("unset keys changed: max_lines=%d size=%d", cfg.MaxLines, cfg.Size)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	if err := cfg.LoadFile(writeFile(t, "bad.yaml", "pins: [1, 2")); err == nil {
		t.Error("malformed YAML accepted")
	}
	if err := cfg.LoadFile(writeFile(t, "typo.yaml", "pinz: 3\n")); err == nil {
		t.Error("unknown key accepted")
	}
	if err := cfg.LoadFile(writeFile(t, "empty.yaml", "")); err != nil {
		t.Errorf("empty file error = %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("STRINGART_PINS", "120")
	t.Setenv("STRINGART_OPACITY", "0.3")
	t.Setenv("STRINGART_MODE", "accuracy")
	t.Setenv("STRINGART_DEV", "yes")
	t.Setenv("STRINGART_LOG_FILE", "run.log")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Pins != 120 || cfg.Opacity != 0.3 || cfg.Mode != "accuracy" || !cfg.Dev || cfg.LogFile != "run.log" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"STRINGART_PINS", "many"},
		{"STRINGART_OPACITY", "half"},
		{"STRINGART_DEV", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := Default()
			if err := cfg.ApplyEnv(); err == nil {
				t.Errorf("%s=%q accepted", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeFile(t, "run.yaml", "pins: 100\nsize: 300\ncolors: 3\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("STRINGART_SIZE=400\nSTRINGART_COLORS=5\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STRINGART_COLORS", "7")
	// .env values land in the process environment; clear them afterwards.
	t.Cleanup(func() { _ = os.Unsetenv("STRINGART_SIZE") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pins != 100 {
		t.Errorf("pins = %d, want 100 from file", cfg.Pins)
	}
	if cfg.Size != 400 {
		t.Errorf("size = %d, want 400 from .env", cfg.Size)
	}
	if cfg.Colors != 7 {
		t.Errorf("colors = %d, want 7 from environment", cfg.Colors)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"mode", func(c *Config) { c.Mode = "sepia" }},
		{"reuse", func(c *Config) { c.Reuse = "twice" }},
		{"pins", func(c *Config) { c.Pins = 1 }},
		{"max lines", func(c *Config) { c.MaxLines = -1 }},
		{"colors", func(c *Config) { c.Colors = 0 }},
		{"size", func(c *Config) { c.Size = 0 }},
		{"opacity", func(c *Config) { c.Opacity = 1.01 }},
		{"lighten", func(c *Config) { c.Lighten = 256 }},
		{"threshold", func(c *Config) { c.QualityThreshold = -0.5 }},
		{"cache", func(c *Config) { c.LineCacheLimit = -1 }},
		{"stroke width", func(c *Config) { c.StrokeWidth = 0 }},
		{"stroke opacity", func(c *Config) { c.StrokeOpacity = 2 }},
		{"palette color", func(c *Config) { c.Palette = []string{"#000", "#ggg"} }},
		{"palette duplicate", func(c *Config) { c.Palette = []string{"#000000", "#000"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestOptimizerOptions(t *testing.T) {
	cfg := Default()
	cfg.Mode = "darkness"
	cfg.MaxLines = 1
	cfg.Lighten = 255

	opts, err := cfg.OptimizerOptions()
	if err != nil {
		t.Fatalf("OptimizerOptions: %v", err)
	}
	ref := stringart.NewGrayMap(21, 21, 0)
	pins := stringart.Pins(stringart.Circle{Center: stringart.Pt(10, 10), Radius: 10}, 4)
	opt, err := stringart.NewOptimizer(ref, pins, stringart.Palette{stringart.Black}, opts...)
	if err != nil {
		t.Fatalf("NewOptimizer: %v", err)
	}
	if opt.Mode() != stringart.ModeDarkness {
		t.Errorf("mode = %v, want darkness", opt.Mode())
	}

	cfg.Mode = "bogus"
	if _, err := cfg.OptimizerOptions(); err == nil {
		t.Error("invalid mode accepted")
	}
}

func TestThreadColors(t *testing.T) {
	cfg := Default()
	if p, err := cfg.ThreadColors(); p != nil || err != nil {
		t.Errorf("ThreadColors() = %v, %v, want nil without a palette", p, err)
	}

	path := writeFile(t, "run.yaml", "palette: [\"#000000\", \"#c03\"]\n")
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got, err := cfg.ThreadColors()
	if err != nil {
		t.Fatalf("ThreadColors: %v", err)
	}
	want := stringart.Palette{stringart.Black, {R: 0xcc, G: 0x00, B: 0x33}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ThreadColors() = %v, want %v", got, want)
	}

	t.Setenv("STRINGART_PALETTE", " #fff, ,#00f ")
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	got, err = cfg.ThreadColors()
	if err != nil {
		t.Fatalf("ThreadColors: %v", err)
	}
	want = stringart.Palette{stringart.White, {B: 0xff}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ThreadColors() from env = %v, want %v", got, want)
	}
}

func TestSVGOptions(t *testing.T) {
	cfg := Default()
	cfg.StrokeWidth = 1.5
	got := cfg.SVGOptions()
	if got.StrokeWidth != 1.5 || got.StrokeOpacity != stringart.DefaultStrokeOpacity {
		t.Errorf("SVGOptions() = %+v", got)
	}
}
