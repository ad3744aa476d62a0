package core

// Register bit layout of the converter block, following the megaAVR ADC:
// one control/status register, one multiplexer register, one 10-bit data
// register. Backends that talk to real silicon pass these through
// untranslated; simulated and bridged backends honor the same semantics.

// Control/status register bits.
const (
	// CtlEnable powers the converter subsystem.
	CtlEnable uint8 = 1 << 7

	// CtlStart begins a conversion when written as 1. The same bit reads
	// as the conversion-in-progress flag: hardware holds it set while
	// busy and clears it on completion.
	CtlStart uint8 = 1 << 6

	// CtlPrescale2..0 form the input clock prescaler field.
	CtlPrescale2 uint8 = 1 << 2
	CtlPrescale1 uint8 = 1 << 1
	CtlPrescale0 uint8 = 1 << 0
)

// Multiplexer register bits.
const (
	// MuxRef1 and MuxRef0 form the reference voltage select field.
	MuxRef1 uint8 = 1 << 7
	MuxRef0 uint8 = 1 << 6

	// ChannelMask covers the channel select field. Only these three bits
	// of a caller-supplied channel number ever reach the hardware.
	ChannelMask uint8 = 0x07
)

// NumChannels is the number of selectable input channels.
const NumChannels = 8

// ResultMask bounds the 10-bit data register.
const ResultMask uint16 = 0x03FF

// Peripheral is the register-level view of the converter block the driver
// talks to. Implementations are memory-mapped registers on real targets,
// an SPI-attached converter chip, or a scripted simulation in tests.
//
// Register access is unchecked: reads and writes cannot fail at this
// level. The data register is only meaningful once the in-progress flag
// has cleared.
type Peripheral interface {
	// Control returns the control/status register.
	Control() uint8

	// SetControl writes the control/status register.
	SetControl(uint8)

	// Mux returns the multiplexer register.
	Mux() uint8

	// SetMux writes the multiplexer register.
	SetMux(uint8)

	// Result returns the 10-bit data register.
	Result() uint16
}
