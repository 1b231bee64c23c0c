package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WatchConfig holds defaults for the watch command, loaded from a YAML file:
//
//	interval: 500ms
//	count: 10
//	format: json
//
// Every field is optional; command-line flags override anything set here.
type WatchConfig struct {
	Interval time.Duration
	Count    int
	Format   string
}

// rawWatchConfig is the wire shape: durations are written in Go's duration
// syntax ("1s", "500ms"), not as bare nanosecond counts.
type rawWatchConfig struct {
	Interval string `yaml:"interval"`
	Count    int    `yaml:"count"`
	Format   string `yaml:"format"`
}

// LoadWatchConfig reads and validates a watch config file.
// Unknown keys are rejected so typos don't silently fall back to defaults.
func LoadWatchConfig(path string) (*WatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var raw rawWatchConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		// io.EOF means an empty file, which is a valid all-defaults config.
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg := &WatchConfig{Count: raw.Count, Format: raw.Format}
	if raw.Interval != "" {
		d, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return nil, fmt.Errorf("config %s: invalid interval: %w", path, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("config %s: interval must be positive, got %v", path, d)
		}
		cfg.Interval = d
	}
	if raw.Count < 0 {
		return nil, fmt.Errorf("config %s: count must be non-negative, got %d", path, raw.Count)
	}
	if raw.Format != "" && !isValidFormat(raw.Format) {
		return nil, fmt.Errorf("config %s: invalid format %q: must be one of %v", path, raw.Format, ValidFormats)
	}
	return cfg, nil
}
