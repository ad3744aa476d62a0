// adcmon runs the converter driver against a scripted peripheral and
// streams per-channel readings plus a final register dump to stdout or a
// serial port. It exercises the whole reporting path on a bench with no
// hardware attached.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goadc/core"
	"goadc/estream"
	"goadc/host/config"
	"goadc/host/serial"
	"goadc/sim"
)

var (
	cfgPath = flag.String("config", "", "YAML config path (optional)")
	device  = flag.String("device", "", "serial device for the report stream (default stdout)")
	count   = flag.Int("count", -1, "cycles to run, 0 = until interrupted (-1 = use config)")
	verbose = flag.Bool("verbose", false, "log each cycle to stderr")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.Normalize(cfg)

	m := &cfg.Monitor
	if *device != "" {
		m.Device = *device
	}
	if *count >= 0 {
		m.Count = *count
	}

	out, closeSink, err := openSink(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeSink()

	// Scripted peripheral: a stable, distinct level per channel so the
	// output is recognizable at a glance.
	p := sim.New()
	for ch := uint8(0); ch < core.NumChannels; ch++ {
		p.SetReading(ch, uint16(ch)*128)
	}

	var opts []core.Option
	if m.TimeoutMs > 0 {
		opts = append(opts, core.WithTimeout(time.Duration(m.TimeoutMs)*time.Millisecond))
	}

	s := estream.New(out)
	conv := core.New(p, s, opts...)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(m.IntervalMs) * time.Millisecond)
	defer ticker.Stop()

	cycle := 0
loop:
	for {
		for _, ch := range m.Channels {
			v, err := conv.ReadOversampled(ch, m.Samples)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: channel %d: %v\n", ch, err)
				os.Exit(1)
			}
			s.Str("CH").U8(ch).Str(" = ").U16(v).Endl()
		}

		cycle++
		if *verbose {
			fmt.Fprintf(os.Stderr, "cycle %d done\n", cycle)
		}
		if m.Count > 0 && cycle >= m.Count {
			break
		}

		select {
		case <-stop:
			break loop
		case <-ticker.C:
		}
	}

	// Closing report: raw registers plus one conversion per channel.
	conv.Dump(s)

	if err := s.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: report stream: %v\n", err)
		os.Exit(1)
	}
}

// openSink returns the report writer and a cleanup func.
func openSink(m *config.MonitorConfig) (io.Writer, func(), error) {
	if m.Device == "" {
		return os.Stdout, func() {}, nil
	}

	port, err := serial.Open(&serial.Config{
		Device: m.Device,
		Baud:   m.Baud,
	})
	if err != nil {
		return nil, nil, err
	}
	return port, func() {
		port.Flush()
		port.Close()
	}, nil
}
