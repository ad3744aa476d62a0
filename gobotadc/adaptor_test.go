package gobotadc

import (
	"bytes"
	"testing"

	"gobot.io/x/gobot/drivers/aio"

	"goadc/core"
	"goadc/estream"
	"goadc/sim"
)

func newAdaptor(t *testing.T, opts ...Option) (*Adaptor, *sim.Peripheral) {
	t.Helper()
	p := sim.New()
	c := core.New(p, estream.New(&bytes.Buffer{}))
	return NewAdaptor(c, opts...), p
}

func TestAnalogRead(t *testing.T) {
	a, p := newAdaptor(t)
	p.SetReading(3, 777)

	v, err := a.AnalogRead("3")
	if err != nil {
		t.Fatalf("AnalogRead failed: %v", err)
	}
	if v != 777 {
		t.Errorf("Expected 777, got %d", v)
	}
}

func TestAnalogReadBadPin(t *testing.T) {
	a, _ := newAdaptor(t)

	if _, err := a.AnalogRead("A0"); err == nil {
		t.Error("Expected an error for a non-numeric pin")
	}
}

func TestAnalogReadOversampled(t *testing.T) {
	a, p := newAdaptor(t, WithSamples(3))
	p.QueueReadings(2, 100, 200, 300)

	v, err := a.AnalogRead("2")
	if err != nil {
		t.Fatalf("AnalogRead failed: %v", err)
	}
	if v != 200 {
		t.Errorf("Expected mean 200, got %d", v)
	}
	if got := p.Conversions(); got != 3 {
		t.Errorf("Expected 3 conversions, got %d", got)
	}
}

func TestAnalogSensorDriver(t *testing.T) {
	a, p := newAdaptor(t)
	p.SetReading(5, 444)

	sensor := aio.NewAnalogSensorDriver(a, "5")
	v, err := sensor.Read()
	if err != nil {
		t.Fatalf("sensor.Read failed: %v", err)
	}
	if v != 444 {
		t.Errorf("Expected 444 through the sensor driver, got %d", v)
	}
}

func TestAdaptorLifecycle(t *testing.T) {
	a, _ := newAdaptor(t)

	if a.Name() == "" {
		t.Error("Expected a default name")
	}
	a.SetName("bench adc")
	if a.Name() != "bench adc" {
		t.Errorf("Expected renamed adaptor, got %q", a.Name())
	}
	if err := a.Connect(); err != nil {
		t.Errorf("Connect failed: %v", err)
	}
	if err := a.Finalize(); err != nil {
		t.Errorf("Finalize failed: %v", err)
	}
}

func TestConnectWithoutConverter(t *testing.T) {
	a := NewAdaptor(nil)

	if err := a.Connect(); err == nil {
		t.Error("Expected Connect to fail without a converter")
	}
}
