// Package gobotadc exposes the converter driver as a gobot connection, so
// gobot's analog sensor drivers can poll it like any other AnalogReader.
package gobotadc

import (
	"fmt"
	"strconv"

	"gobot.io/x/gobot"
	"gobot.io/x/gobot/drivers/aio"

	"goadc/core"
)

// Adaptor adapts a core.Converter to gobot's AnalogReader. Pins name the
// input channels, "0" through "7"; like the driver itself, the channel
// number is masked to three bits rather than rejected.
type Adaptor struct {
	name    string
	conv    *core.Converter
	samples uint8
}

var (
	_ gobot.Adaptor    = (*Adaptor)(nil)
	_ aio.AnalogReader = (*Adaptor)(nil)
)

// Option configures the adaptor.
type Option func(*Adaptor)

// WithSamples makes AnalogRead return the oversampled mean of n
// conversions instead of a single one.
func WithSamples(n uint8) Option {
	return func(a *Adaptor) { a.samples = n }
}

// NewAdaptor wraps conv for use as a gobot connection.
func NewAdaptor(conv *core.Converter, opts ...Option) *Adaptor {
	a := &Adaptor{
		name:    gobot.DefaultName("ADC"),
		conv:    conv,
		samples: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name returns the adaptor label.
func (a *Adaptor) Name() string {
	return a.name
}

// SetName sets the adaptor label.
func (a *Adaptor) SetName(n string) {
	a.name = n
}

// Connect checks the adaptor is usable. The converter itself was
// configured at construction; there is nothing to bring up here.
func (a *Adaptor) Connect() error {
	if a.conv == nil {
		return fmt.Errorf("gobotadc: no converter attached")
	}
	return nil
}

// Finalize is a no-op: peripheral state is not reset on teardown.
func (a *Adaptor) Finalize() error {
	return nil
}

// AnalogRead converts the channel named by pin and returns the raw
// 10-bit value.
func (a *Adaptor) AnalogRead(pin string) (int, error) {
	ch, err := strconv.ParseUint(pin, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("gobotadc: invalid pin %q", pin)
	}

	if a.samples > 1 {
		v, err := a.conv.ReadOversampled(uint8(ch), a.samples)
		return int(v), err
	}
	v, err := a.conv.ReadOnce(uint8(ch))
	return int(v), err
}
