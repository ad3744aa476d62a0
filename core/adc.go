// Package core implements the analog-to-digital converter driver: one-time
// peripheral setup, blocking single-shot conversions, oversampled reads,
// and a register dump for bring-up diagnostics.
package core

import (
	"errors"
	"sync"
	"time"

	"goadc/estream"
)

// Driver errors.
var (
	// ErrNoSamples is returned by ReadOversampled for a zero sample
	// count. Zero would otherwise divide by zero; it is rejected before
	// any hardware access.
	ErrNoSamples = errors.New("adc: oversample requires at least one sample")

	// ErrTimeout is returned when a bounded conversion wait expires.
	// Only possible after WithTimeout; the default wait is unbounded.
	ErrTimeout = errors.New("adc: conversion timeout")
)

// MaxSamples is the largest oversampling burst actually performed.
// Requests of 64 and above are clamped here so the worst-case sum of
// 60 x 1023 keeps headroom in the uint32 accumulator.
const MaxSamples = 60

// waitPollStep is the sleep between busy-flag polls once a timeout is
// configured. The untimed default spins without sleeping.
const waitPollStep = 200 * time.Microsecond

// Option configures optional Converter behavior.
type Option func(*Converter)

// WithTimeout bounds every conversion wait to d. Zero or negative d keeps
// the default unbounded wait.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) { c.timeout = d }
}

// Converter drives the converter block behind a Peripheral. A mutex
// serializes all conversions: the channel-select/trigger/wait/read
// sequence is a read-modify-write transaction against shared registers,
// and interleaved callers would silently read each other's channels.
type Converter struct {
	mu      sync.Mutex
	p       Peripheral
	out     *estream.Stream
	timeout time.Duration // 0 waits forever
}

var _ estream.Dumper = (*Converter)(nil)

// New configures the converter block and returns a ready driver: subsystem
// enabled, input clock prescaled to divide-by-32, reference set to the
// supply rail with its external capacitor. One confirmation line goes to
// out. out must not be nil; it is retained for the life of the driver and
// never reassigned.
func New(p Peripheral, out *estream.Stream, opts ...Option) *Converter {
	if out == nil {
		panic("adc: nil diagnostic stream")
	}
	c := &Converter{p: p, out: out}
	for _, opt := range opts {
		opt(c)
	}

	// Power on, then program the divide-by-32 prescaler pattern one bit
	// at a time, preserving the rest of the register.
	p.SetControl(p.Control() | CtlEnable)
	p.SetControl(p.Control() | CtlPrescale0)
	p.SetControl(p.Control() &^ CtlPrescale1)
	p.SetControl(p.Control() | CtlPrescale2)

	// Reference select: supply voltage with the external capacitor.
	p.SetMux(p.Mux() | MuxRef0)
	p.SetMux(p.Mux() &^ MuxRef1)

	c.out.Str("adc: converter ready").Endl()
	return c
}

// ReadOnce performs one blocking conversion on ch and returns the raw
// 10-bit result. Only the low three bits of ch select the channel; higher
// bits are masked off, so channel 255 reads channel 7.
//
// The error is nil unless a timeout is configured and the busy flag never
// clears, in which case the result is 0 and ErrTimeout is returned.
func (c *Converter) ReadOnce(ch uint8) (uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.convert(ch)
}

// ReadOversampled averages samples consecutive conversions of ch and
// returns the integer mean. Counts of 64 and above are clamped to
// MaxSamples before converting, and the clamped count is the divisor.
// A zero count returns ErrNoSamples.
//
// Each inner conversion takes the conversion lock on its own, so other
// callers may interleave between samples; every individual sample is
// still attributed to the right channel.
func (c *Converter) ReadOversampled(ch, samples uint8) (uint16, error) {
	if samples == 0 {
		return 0, ErrNoSamples
	}
	if samples >= 64 {
		samples = MaxSamples
	}

	var sum uint32
	for i := uint8(0); i < samples; i++ {
		v, err := c.ReadOnce(ch)
		if err != nil {
			return 0, err
		}
		sum += uint32(v)
	}
	return uint16(sum / uint32(samples)), nil
}

// Dump writes the converter state to s: both raw registers, then a fresh
// conversion from every channel in ascending order. Ten lines total, with
// eight real conversions, so dumping the driver drives the hardware.
// Returns s so the report can sit inside a longer chain. A conversion
// error (possible only with a timeout configured) marks that channel's
// line instead of aborting the report.
func (c *Converter) Dump(s *estream.Stream) *estream.Stream {
	s.Str("CTL: ").U8(c.p.Control()).Endl()
	s.Str("MUX: ").U8(c.p.Mux()).Endl()
	for ch := uint8(0); ch < NumChannels; ch++ {
		s.Str("CH").U8(ch).Str(" = ")
		if v, err := c.ReadOnce(ch); err != nil {
			s.Str("ERR")
		} else {
			s.U16(v)
		}
		s.Endl()
	}
	return s
}

// convert runs the full select/trigger/wait/read sequence. Callers must
// hold c.mu: the multiplexer update is a read-modify-write against a live
// register, and the conversion belongs to whatever channel the multiplexer
// holds when the hardware samples it.
func (c *Converter) convert(ch uint8) (uint16, error) {
	ch &= ChannelMask

	c.p.SetMux(c.p.Mux()&^ChannelMask | ch)
	c.p.SetControl(c.p.Control() | CtlStart)

	if err := c.wait(); err != nil {
		return 0, err
	}
	return c.p.Result(), nil
}

// wait blocks until the in-progress flag clears. The default is a pure
// spin with no escape path; hardware that never completes hangs the
// caller. With a timeout configured the spin becomes a bounded poll.
func (c *Converter) wait() error {
	if c.timeout <= 0 {
		for c.p.Control()&CtlStart != 0 {
		}
		return nil
	}

	deadline := time.Now().Add(c.timeout)
	for c.p.Control()&CtlStart != 0 {
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(waitPollStep)
	}
	return nil
}
