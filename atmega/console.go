//go:build avr

package atmega

import (
	"machine"

	"goadc/estream"
)

// Console returns a diagnostic stream over the default serial output,
// ready to hand to the driver at construction.
func Console() *estream.Stream {
	return estream.New(machine.Serial)
}
