package mcp3008

import (
	"bytes"
	"errors"
	"testing"

	"goadc/core"
	"goadc/estream"
)

// fakeSPI records transmitted frames and answers every exchange with a
// fixed sample value.
type fakeSPI struct {
	frames [][]byte
	value  uint16
	err    error
}

func (f *fakeSPI) Tx(w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	frame := make([]byte, len(w))
	copy(frame, w)
	f.frames = append(f.frames, frame)
	r[1] = byte(f.value >> 8)
	r[2] = byte(f.value)
	return nil
}

func (f *fakeSPI) Transfer(b byte) (byte, error) {
	return 0, nil
}

func TestConversionFrame(t *testing.T) {
	bus := &fakeSPI{value: 0x0155}
	p := New(bus)

	p.SetMux(5)
	p.SetControl(core.CtlStart)

	if len(bus.frames) != 1 {
		t.Fatalf("Expected 1 SPI exchange, got %d", len(bus.frames))
	}
	want := []byte{0x01, 0x80 | 5<<4, 0x00}
	if !bytes.Equal(bus.frames[0], want) {
		t.Errorf("Expected frame % x, got % x", want, bus.frames[0])
	}
	if p.Result() != 0x0155 {
		t.Errorf("Expected result 0x0155, got %#04x", p.Result())
	}
	if p.Control()&core.CtlStart != 0 {
		t.Error("Start bit still reads set after the exchange")
	}
}

func TestResultMaskedToTenBits(t *testing.T) {
	bus := &fakeSPI{value: 0xFFFF}
	p := New(bus)

	p.SetControl(core.CtlStart)
	if p.Result() != 0x03FF {
		t.Errorf("Expected 0x03ff, got %#04x", p.Result())
	}
}

func TestDriverOverBridge(t *testing.T) {
	bus := &fakeSPI{value: 513}
	p := New(bus)
	c := core.New(p, estream.New(&bytes.Buffer{}))
	if len(bus.frames) != 0 {
		t.Fatalf("Construction must not convert, got %d exchanges", len(bus.frames))
	}

	v, err := c.ReadOnce(3)
	if err != nil {
		t.Fatalf("ReadOnce failed: %v", err)
	}
	if v != 513 {
		t.Errorf("Expected 513, got %d", v)
	}
	if len(bus.frames) != 1 {
		t.Fatalf("Expected 1 SPI exchange, got %d", len(bus.frames))
	}
	if ch := bus.frames[0][1] >> 4 & 0x07; ch != 3 {
		t.Errorf("Expected channel 3 in frame, got %d", ch)
	}
}

func TestFaultLatches(t *testing.T) {
	busErr := errors.New("spi: bus stuck")
	bus := &fakeSPI{err: busErr}
	p := New(bus)
	c := core.New(p, estream.New(&bytes.Buffer{}))

	v, err := c.ReadOnce(0)
	if err != nil {
		t.Fatalf("Register-level access must stay unchecked, got %v", err)
	}
	if v != 0 {
		t.Errorf("Expected 0 after a failed exchange, got %d", v)
	}
	if !errors.Is(p.Err(), busErr) {
		t.Errorf("Expected latched %v, got %v", busErr, p.Err())
	}
}
