package estream

import (
	"bytes"
	"errors"
	"testing"
)

func TestChaining(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	ret := s.Str("CTL: ").U8(133).Endl().Str("CH0 = ").U16(1023).Endl()
	if ret != s {
		t.Error("Chained calls did not return the same stream")
	}

	want := "CTL: 133\nCH0 = 1023\n"
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if err := s.Err(); err != nil {
		t.Errorf("Unexpected stream error: %v", err)
	}
}

func TestUnsignedFormatting(t *testing.T) {
	testCases := []struct {
		name  string
		write func(*Stream)
		want  string
	}{
		{"u8 zero", func(s *Stream) { s.U8(0) }, "0"},
		{"u8 max", func(s *Stream) { s.U8(255) }, "255"},
		{"u16 result max", func(s *Stream) { s.U16(1023) }, "1023"},
		{"u16 max", func(s *Stream) { s.U16(65535) }, "65535"},
		{"u32 accumulator peak", func(s *Stream) { s.U32(61380) }, "61380"},
		{"u32 max", func(s *Stream) { s.U32(4294967295) }, "4294967295"},
		{"hex zero", func(s *Stream) { s.Hex8(0x00) }, "0x00"},
		{"hex low nibble", func(s *Stream) { s.Hex8(0x0f) }, "0x0f"},
		{"hex mixed", func(s *Stream) { s.Hex8(0xa5) }, "0xa5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := New(&buf)
			tc.write(s)
			if got := buf.String(); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}
}

// failAfter accepts n writes, then fails every call with err.
type failAfter struct {
	n   int
	err error
}

func (w *failAfter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, w.err
	}
	w.n--
	return len(p), nil
}

func TestStickyError(t *testing.T) {
	wantErr := errors.New("sink gone")
	w := &failAfter{n: 2, err: wantErr}
	s := New(w)

	s.Str("one").Str("two").Str("three").U16(42).Endl()

	if !errors.Is(s.Err(), wantErr) {
		t.Errorf("Expected sticky error %v, got %v", wantErr, s.Err())
	}
	if w.n != 0 {
		t.Errorf("Expected writer exhausted, %d writes left", w.n)
	}
}

type lineDumper struct{}

func (lineDumper) Dump(s *Stream) *Stream {
	return s.Str("dumped").Endl()
}

func TestPrintDumper(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	s.Str("before").Endl().Print(lineDumper{}).Str("after").Endl()

	want := "before\ndumped\nafter\n"
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
