package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overlays STRINGART_* environment variables onto c, for example
// STRINGART_PINS or STRINGART_QUALITY_THRESHOLD. Unset or empty variables
// are ignored; unparsable ones are an error.
func (c *Config) ApplyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"PINS", &c.Pins},
		{"MAX_LINES", &c.MaxLines},
		{"COLORS", &c.Colors},
		{"SIZE", &c.Size},
		{"LIGHTEN", &c.Lighten},
		{"WORKERS", &c.Workers},
		{"LINE_CACHE_LIMIT", &c.LineCacheLimit},
	}
	for _, v := range ints {
		if err := parseIntEnv(EnvPrefix+v.key, v.dst); err != nil {
			return err
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"OPACITY", &c.Opacity},
		{"QUALITY_THRESHOLD", &c.QualityThreshold},
		{"STROKE_WIDTH", &c.StrokeWidth},
		{"STROKE_OPACITY", &c.StrokeOpacity},
	}
	for _, v := range floats {
		if err := parseFloatEnv(EnvPrefix+v.key, v.dst); err != nil {
			return err
		}
	}

	stringEnv(EnvPrefix+"MODE", &c.Mode)
	stringEnv(EnvPrefix+"REUSE", &c.Reuse)
	stringEnv(EnvPrefix+"LOG_FILE", &c.LogFile)
	listEnv(EnvPrefix+"PALETTE", &c.Palette)
	return parseBoolEnv(EnvPrefix+"DEV", &c.Dev)
}

func stringEnv(key string, dst *string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// listEnv splits a comma-separated value, dropping empty items.
func listEnv(key string, dst *[]string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}

func parseIntEnv(key string, dst *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = n
	return nil
}

func parseFloatEnv(key string, dst *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = f
	return nil
}

// parseBoolEnv accepts true/1/yes/on and false/0/no/off, case-insensitively.
func parseBoolEnv(key string, dst *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		*dst = true
	case "false", "0", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("config: %s: invalid boolean %q", key, value)
	}
	return nil
}
