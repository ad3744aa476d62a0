// Package config loads the host monitor's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
}

// MonitorConfig describes one monitoring run: where the report stream
// goes, which channels to sample, and how.
type MonitorConfig struct {
	// Device is the serial device the report stream writes to.
	// Empty means standard output.
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	// Channels sampled each cycle, in order.
	Channels []uint8 `yaml:"channels"`

	// Samples per reading (oversampling burst size).
	Samples uint8 `yaml:"samples"`

	IntervalMs int `yaml:"interval_ms"`

	// Count of cycles to run; 0 runs until interrupted.
	Count int `yaml:"count"`

	// TimeoutMs bounds each conversion wait; 0 keeps the driver's
	// unbounded default.
	TimeoutMs int `yaml:"timeout_ms"`
}

// Load reads and parses path. The result is not yet validated.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Baud:       115200,
			Channels:   []uint8{0, 1, 2, 3, 4, 5, 6, 7},
			Samples:    8,
			IntervalMs: 1000,
			Count:      1,
		},
	}
}
