package databuf

import (
	"errors"
	"testing"
)

func TestSetGetRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		bits   int
		width  int
		endian Endian
		off    int
		n      int
		value  uint64
	}{
		{name: "single word MSB0", bits: 64, width: 32, endian: MSB0, off: 0, n: 32, value: 0xDEADBEEF},
		{name: "single word LSB0", bits: 64, width: 32, endian: LSB0, off: 0, n: 32, value: 0xDEADBEEF},
		{name: "word spanning MSB0", bits: 64, width: 32, endian: MSB0, off: 20, n: 24, value: 0xABCDEF},
		{name: "word spanning LSB0", bits: 64, width: 32, endian: LSB0, off: 20, n: 24, value: 0xABCDEF},
		{name: "full 64-bit field", bits: 128, width: 32, endian: MSB0, off: 32, n: 64, value: 0x0123456789ABCDEF},
		{name: "odd width word", bits: 33, width: 11, endian: MSB0, off: 5, n: 17, value: 0x1ABCD},
		{name: "single bit", bits: 8, width: 8, endian: LSB0, off: 7, n: 1, value: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewWithOptions(tt.bits, tt.width, tt.endian)
			if err != nil {
				t.Fatalf("NewWithOptions: %v", err)
			}
			if err := b.Set(tt.off, tt.n, tt.value); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := b.Get(tt.off, tt.n)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			want := tt.value
			if tt.n < 64 {
				want &= (1 << uint(tt.n)) - 1
			}
			if got != want {
				t.Errorf("round trip = %#x, want %#x", got, want)
			}
		})
	}
}

func TestMultiWordConcatenation(t *testing.T) {
	// A multi-word read must equal reading each word in order and
	// concatenating per the endianness flag.
	b := New(64)
	if err := b.SetWord(0, 0xDEADBEEF); err != nil {
		t.Fatalf("SetWord: %v", err)
	}
	if err := b.SetWord(1, 0xCAFEF00D); err != nil {
		t.Fatalf("SetWord: %v", err)
	}

	got, err := b.Get(0, 64)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 0xDEADBEEFCAFEF00D {
		t.Errorf("MSB0 64-bit read = %#x, want 0xDEADBEEFCAFEF00D", got)
	}

	// Under LSB0, word 0 supplies the low bits.
	lb, err := NewWithOptions(64, 32, LSB0)
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	if err := lb.SetWord(0, 0xDEADBEEF); err != nil {
		t.Fatalf("SetWord: %v", err)
	}
	if err := lb.SetWord(1, 0xCAFEF00D); err != nil {
		t.Fatalf("SetWord: %v", err)
	}
	got, err = lb.Get(0, 64)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 0xCAFEF00DDEADBEEF {
		t.Errorf("LSB0 64-bit read = %#x, want 0xCAFEF00DDEADBEEF", got)
	}
}

func TestOutOfRangeAccess(t *testing.T) {
	b := New(32)

	if _, err := b.Get(16, 17); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Get past end: err = %v, want ErrOutOfRange", err)
	}
	if err := b.Set(-1, 4, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Set negative offset: err = %v, want ErrOutOfRange", err)
	}
	if _, err := b.WordAt(1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("WordAt past end: err = %v, want ErrOutOfRange", err)
	}
	if _, err := b.TestBit(32); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("TestBit at length: err = %v, want ErrOutOfRange", err)
	}
}

func TestResizePreservesAndZeroFills(t *testing.T) {
	b := New(32)
	if err := b.Set(0, 32, 0xA5A5A5A5); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := b.Resize(80); err != nil {
		t.Fatalf("Resize grow: %v", err)
	}
	got, err := b.Get(0, 32)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 0xA5A5A5A5 {
		t.Errorf("prior bits after grow = %#x, want 0xA5A5A5A5", got)
	}
	tail, err := b.Get(32, 48)
	if err != nil {
		t.Fatalf("Get tail: %v", err)
	}
	if tail != 0 {
		t.Errorf("grown bits = %#x, want all zero", tail)
	}

	if err := b.Resize(16); err != nil {
		t.Fatalf("Resize shrink: %v", err)
	}
	got, err = b.Get(0, 16)
	if err != nil {
		t.Fatalf("Get after shrink: %v", err)
	}
	if got != 0xA5A5 {
		t.Errorf("retained bits after shrink = %#x, want 0xA5A5", got)
	}

	// Grow again: previously truncated bits must not reappear.
	if err := b.Resize(32); err != nil {
		t.Fatalf("Resize regrow: %v", err)
	}
	got, err = b.Get(16, 16)
	if err != nil {
		t.Fatalf("Get regrown: %v", err)
	}
	if got != 0 {
		t.Errorf("regrown bits = %#x, want zero", got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for _, endian := range []Endian{MSB0, LSB0} {
		b, err := NewWithOptions(44, 32, endian)
		if err != nil {
			t.Fatalf("NewWithOptions: %v", err)
		}
		if err := b.Set(0, 44, 0xABCDEF01234>>0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		data := b.Bytes()
		back, err := FromBytes(data, 44, 32, endian)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		got, err := back.Get(0, 44)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		want, _ := b.Get(0, 44)
		if got != want {
			t.Errorf("endian %v: byte round trip = %#x, want %#x", endian, got, want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	b := New(32)
	if err := b.SetHex("DEADBEEF"); err != nil {
		t.Fatalf("SetHex: %v", err)
	}
	w, err := b.WordAt(0)
	if err != nil {
		t.Fatalf("WordAt: %v", err)
	}
	if w != 0xDEADBEEF {
		t.Errorf("word = %#x, want 0xDEADBEEF", w)
	}
	if got := b.Hex(); got != "DEADBEEF" {
		t.Errorf("Hex() = %q, want DEADBEEF", got)
	}

	// Partial trailing nibble.
	p := New(10)
	if err := p.SetHex("FFC"); err != nil {
		t.Fatalf("SetHex partial: %v", err)
	}
	v, err := p.Get(0, 10)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != 0x3FF {
		t.Errorf("partial nibble fill = %#x, want 0x3FF", v)
	}
}

func TestSetWordClampsPartialTrailingWord(t *testing.T) {
	b, err := NewWithOptions(40, 32, MSB0)
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}
	if err := b.SetWord(1, 0xFFFFFFFF); err != nil {
		t.Fatalf("SetWord: %v", err)
	}
	w, err := b.WordAt(1)
	if err != nil {
		t.Fatalf("WordAt: %v", err)
	}
	// Only the high 8 bits of word 1 are inside the 40-bit buffer.
	if w != 0xFF000000 {
		t.Errorf("trailing word = %#x, want 0xFF000000", w)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New(32)
	if err := b.Set(0, 32, 0x12345678); err != nil {
		t.Fatalf("Set: %v", err)
	}
	c := b.Clone()
	if err := c.Set(0, 32, 0); err != nil {
		t.Fatalf("Set clone: %v", err)
	}
	got, _ := b.Get(0, 32)
	if got != 0x12345678 {
		t.Errorf("original mutated by clone write: %#x", got)
	}
}
