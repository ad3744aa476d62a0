//go:build avr

// Package atmega runs the converter driver on the megaAVR's on-chip ADC
// block. The core register constants already use this silicon's bit
// layout, so registers pass through untranslated.
package atmega

import (
	"device/avr"

	"goadc/core"
)

type periph struct{}

var _ core.Peripheral = periph{}

// Periph returns the register view of the on-chip converter.
func Periph() core.Peripheral {
	return periph{}
}

func (periph) Control() uint8 {
	return avr.ADCSRA.Get()
}

func (periph) SetControl(v uint8) {
	avr.ADCSRA.Set(v)
}

func (periph) Mux() uint8 {
	return avr.ADMUX.Get()
}

func (periph) SetMux(v uint8) {
	avr.ADMUX.Set(v)
}

// Result reads ADCL before ADCH; the low-byte read latches the high byte,
// keeping the 10-bit sample consistent.
func (periph) Result() uint16 {
	low := uint16(avr.ADCL.Get())
	high := uint16(avr.ADCH.Get())
	return (high<<8 | low) & core.ResultMask
}
