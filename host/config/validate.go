package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	m := &cfg.Monitor

	if m.Baud < 0 {
		return fmt.Errorf("config: baud must not be negative, got %d", m.Baud)
	}

	// The monitor is stricter than the driver here: the driver masks
	// out-of-range channels, a config file naming one is a typo.
	for i, ch := range m.Channels {
		if ch > 7 {
			return fmt.Errorf("config: channels[%d]: no such input %d (valid: 0-7)", i, ch)
		}
	}

	// Counts of 64+ would silently clamp inside the driver; reject them
	// at the config surface instead. Zero means "use the default".
	if m.Samples >= 64 {
		return fmt.Errorf("config: samples must stay below 64, got %d", m.Samples)
	}

	if m.IntervalMs < 0 {
		return fmt.Errorf("config: interval_ms must not be negative, got %d", m.IntervalMs)
	}
	if m.Count < 0 {
		return fmt.Errorf("config: count must not be negative, got %d", m.Count)
	}
	if m.TimeoutMs < 0 {
		return fmt.Errorf("config: timeout_ms must not be negative, got %d", m.TimeoutMs)
	}

	return nil
}
