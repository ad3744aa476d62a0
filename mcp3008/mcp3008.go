// Package mcp3008 maps the converter driver's register contract onto an
// external MCP3008, an SPI-attached 8-channel 10-bit analog-to-digital
// converter. The chip shares the on-chip block's channel count and
// resolution, so the register view lines up: multiplexer writes pick the
// chip channel, a start-bit write runs one SPI exchange, and the data
// register holds the last latched sample.
package mcp3008

import (
	"tinygo.org/x/drivers"

	"goadc/core"
)

// Peripheral is a register view over an MCP3008. Chip select and bus
// configuration belong to the caller. Not safe for concurrent use on its
// own; the driver's conversion lock already serializes access.
type Peripheral struct {
	bus drivers.SPI
	tx  [3]byte
	rx  [3]byte

	ctl    uint8
	mux    uint8
	result uint16
	err    error
}

var _ core.Peripheral = (*Peripheral)(nil)

// New returns a Peripheral talking to an MCP3008 on bus.
func New(bus drivers.SPI) *Peripheral {
	return &Peripheral{bus: bus}
}

// Control returns the control/status view. The start bit never reads as
// set: the SPI exchange completes before the triggering write returns, so
// the driver's busy spin exits on its first poll.
func (p *Peripheral) Control() uint8 {
	return p.ctl
}

// SetControl stores the control view and converts on a rising start bit.
func (p *Peripheral) SetControl(v uint8) {
	start := v&core.CtlStart != 0 && p.ctl&core.CtlStart == 0
	p.ctl = v &^ core.CtlStart
	if start {
		p.convert()
	}
}

// Mux returns the multiplexer view.
func (p *Peripheral) Mux() uint8 {
	return p.mux
}

// SetMux stores the multiplexer view; the channel field takes effect on
// the next conversion.
func (p *Peripheral) SetMux(v uint8) {
	p.mux = v
}

// Result returns the last latched sample.
func (p *Peripheral) Result() uint16 {
	return p.result
}

// Err returns the first SPI fault since construction. Register access is
// unchecked by contract, so a failed exchange latches here and the
// affected conversions read as 0.
func (p *Peripheral) Err() error {
	return p.err
}

// convert runs one exchange using the chip's three-byte frame: a start
// bit, then single-ended mode with the channel in the high nibble, then a
// clock-out byte. The reply carries the sample in its 10 low bits.
func (p *Peripheral) convert() {
	ch := p.mux & core.ChannelMask

	p.tx[0] = 0x01
	p.tx[1] = 0x80 | ch<<4
	p.tx[2] = 0x00

	if err := p.bus.Tx(p.tx[:], p.rx[:]); err != nil {
		if p.err == nil {
			p.err = err
		}
		p.result = 0
		return
	}
	p.result = (uint16(p.rx[1])<<8 | uint16(p.rx[2])) & core.ResultMask
}
