// Package estream provides the write-only diagnostic text stream the
// converter driver reports into. It is a thin chaining layer over an
// io.Writer: labels and unsigned values go in, text lines come out.
//
// Formatting avoids the fmt package so the same code serves TinyGo
// firmware builds and host tests alike.
package estream

import "io"

// Dumper is implemented by values that can write a report of themselves
// to a Stream. Print lets such reports appear mid-chain.
type Dumper interface {
	Dump(*Stream) *Stream
}

// Stream is a write-only text sink with chaining methods, so diagnostics
// read as one expression:
//
//	s.Str("CH0 = ").U16(v).Endl()
//
// The first write error sticks and suppresses all later output; check Err
// after a burst of writes rather than after every call. A Stream is not
// safe for concurrent use.
type Stream struct {
	w   io.Writer
	err error
}

// New returns a Stream writing to w.
func New(w io.Writer) *Stream {
	return &Stream{w: w}
}

// Str appends a literal string.
func (s *Stream) Str(v string) *Stream {
	if s.err != nil {
		return s
	}
	_, s.err = io.WriteString(s.w, v)
	return s
}

// U8 appends an unsigned 8-bit value in decimal.
func (s *Stream) U8(v uint8) *Stream {
	return s.write(appendUint(nil, uint32(v)))
}

// U16 appends an unsigned 16-bit value in decimal.
func (s *Stream) U16(v uint16) *Stream {
	return s.write(appendUint(nil, uint32(v)))
}

// U32 appends an unsigned 32-bit value in decimal.
func (s *Stream) U32(v uint32) *Stream {
	return s.write(appendUint(nil, v))
}

// Hex8 appends an 8-bit value as two hex digits with an 0x prefix.
func (s *Stream) Hex8(v uint8) *Stream {
	buf := [4]byte{'0', 'x', hexDigits[v>>4], hexDigits[v&0xF]}
	return s.write(buf[:])
}

// Endl terminates the current line.
func (s *Stream) Endl() *Stream {
	return s.write(newline)
}

// Print writes d's report into the stream and continues the chain.
func (s *Stream) Print(d Dumper) *Stream {
	return d.Dump(s)
}

// Err returns the first write error, if any.
func (s *Stream) Err() error {
	return s.err
}

var newline = []byte{'\n'}

const hexDigits = "0123456789abcdef"

func (s *Stream) write(b []byte) *Stream {
	if s.err != nil {
		return s
	}
	_, s.err = s.w.Write(b)
	return s
}

// appendUint appends n in decimal to buf without using the fmt package.
func appendUint(buf []byte, n uint32) []byte {
	if n == 0 {
		return append(buf, '0')
	}

	// Count digits
	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	// Build from right to left
	at := len(buf)
	buf = append(buf, make([]byte, digits)...)
	pos := at + digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return buf
}
