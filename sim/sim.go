// Package sim provides a scripted, host-side stand-in for the converter
// register block. Tests and the host monitor run the real driver against
// it: conversions complete synchronously, readings are scripted per
// channel, and every register access lands in an inspectable log.
package sim

import "sync"

// Register layout mirrored from the driver's contract: the start/busy bit
// and the channel field are all the simulation needs to interpret.
const (
	ctlStart = 1 << 6
	chanMask = 0x07

	resultMask = 0x03FF
)

// Op identifies a logged register access.
type Op uint8

const (
	OpSelect Op = iota // multiplexer written
	OpStart            // conversion started
	OpResult           // data register read
)

func (o Op) String() string {
	switch o {
	case OpSelect:
		return "select"
	case OpStart:
		return "start"
	case OpResult:
		return "result"
	}
	return "unknown"
}

// Access is one logged register event. Channel is the multiplexer's low
// three bits at the time of the access; for OpResult, Value carries the
// data register contents handed out.
type Access struct {
	Op      Op
	Channel uint8
	Value   uint16
}

// Peripheral simulates the converter block. All methods are safe for
// concurrent use, but the internal lock covers one register access at a
// time: serializing whole conversions is the driver's job, and the access
// log shows it whenever the driver fails to.
type Peripheral struct {
	mu     sync.Mutex
	ctl    uint8
	mux    uint8
	result uint16
	lastCh uint8

	fixed    [8]uint16
	queued   [8][]uint16
	holdBusy bool

	log []Access
}

// New returns a simulated peripheral reading 0 on every channel.
func New() *Peripheral {
	return &Peripheral{}
}

// SetReading fixes the value conversions on ch return once any queued
// readings are exhausted.
func (p *Peripheral) SetReading(ch uint8, v uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fixed[ch&chanMask] = v
}

// QueueReadings appends one-shot values for ch, consumed in order before
// the fixed value applies again.
func (p *Peripheral) QueueReadings(ch uint8, vs ...uint16) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch &= chanMask
	p.queued[ch] = append(p.queued[ch], vs...)
}

// HoldBusy controls whether started conversions ever complete. While
// held, the start bit stays set and a busy spin never exits. This is the
// hardware fault the driver's optional timeout exists for.
func (p *Peripheral) HoldBusy(hold bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.holdBusy = hold
}

// Control returns the control/status register.
func (p *Peripheral) Control() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctl
}

// SetControl writes the control/status register. A rising start bit
// converts the channel currently in the multiplexer: the next scripted
// value is latched into the data register and the start bit clears again,
// unless the peripheral is held busy.
func (p *Peripheral) SetControl(v uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()

	started := v&ctlStart != 0 && p.ctl&ctlStart == 0
	p.ctl = v
	if !started {
		return
	}

	ch := p.mux & chanMask
	p.log = append(p.log, Access{Op: OpStart, Channel: ch})
	if p.holdBusy {
		return
	}
	p.result = p.next(ch) & resultMask
	p.lastCh = ch
	p.ctl &^= ctlStart
}

// Mux returns the multiplexer register.
func (p *Peripheral) Mux() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mux
}

// SetMux writes the multiplexer register and logs the channel selection.
func (p *Peripheral) SetMux(v uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mux = v
	p.log = append(p.log, Access{Op: OpSelect, Channel: v & chanMask})
}

// Result returns the data register.
func (p *Peripheral) Result() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = append(p.log, Access{Op: OpResult, Channel: p.lastCh, Value: p.result})
	return p.result
}

// Log returns a copy of the access log.
func (p *Peripheral) Log() []Access {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Access, len(p.log))
	copy(out, p.log)
	return out
}

// ResetLog discards the access log, typically right after driver
// construction to drop the init writes.
func (p *Peripheral) ResetLog() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log = nil
}

// Conversions returns the number of conversions started since the last
// ResetLog.
func (p *Peripheral) Conversions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, a := range p.log {
		if a.Op == OpStart {
			n++
		}
	}
	return n
}

// next pops the queued reading for ch, falling back to the fixed value.
func (p *Peripheral) next(ch uint8) uint16 {
	if q := p.queued[ch]; len(q) > 0 {
		v := q[0]
		p.queued[ch] = q[1:]
		return v
	}
	return p.fixed[ch]
}
