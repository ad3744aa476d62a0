package config

import "sort"

// Normalize applies defaults and canonical ordering.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	m := &cfg.Monitor

	if m.Baud == 0 {
		m.Baud = 115200
	}
	if len(m.Channels) == 0 {
		m.Channels = []uint8{0, 1, 2, 3, 4, 5, 6, 7}
	}
	if m.Samples == 0 {
		m.Samples = 8
	}
	if m.IntervalMs == 0 {
		m.IntervalMs = 1000
	}

	// Canonical channel order, duplicates dropped.
	sort.Slice(m.Channels, func(i, j int) bool { return m.Channels[i] < m.Channels[j] })
	out := m.Channels[:0]
	var last uint8
	for i, ch := range m.Channels {
		if i == 0 || ch != last {
			out = append(out, ch)
		}
		last = ch
	}
	m.Channels = out
}
