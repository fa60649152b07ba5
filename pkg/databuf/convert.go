package databuf

import (
	"fmt"
	"strings"
)

// Bytes serializes the bit stream into ceil(BitLen/8) bytes. Buffer bit i
// lands in byte i/8; under MSB0 it occupies bit 7-i%8 of that byte, under
// LSB0 bit i%8. The packing is lossless for any word width, which lets the
// buffer round-trip through byte-oriented client APIs.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, (b.bits+7)/8)
	for i := 0; i < b.bits; i++ {
		set, _ := b.TestBit(i)
		if !set {
			continue
		}
		if b.endian == MSB0 {
			out[i/8] |= 1 << uint(7-i%8)
		} else {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// SetBytes fills the buffer from data packed as produced by Bytes. The
// buffer keeps its current length; data must cover it.
func (b *Buffer) SetBytes(data []byte) error {
	if len(data)*8 < b.bits {
		return fmt.Errorf("databuf: %d data bytes cover %d bits, need %d",
			len(data), len(data)*8, b.bits)
	}
	for i := 0; i < b.bits; i++ {
		var set bool
		if b.endian == MSB0 {
			set = data[i/8]>>uint(7-i%8)&1 == 1
		} else {
			set = data[i/8]>>uint(i%8)&1 == 1
		}
		b.writeBit(i, set)
	}
	return nil
}

// FromBytes constructs a buffer of the given bit length from packed data.
func FromBytes(data []byte, bits int, wordWidth int, endian Endian) (*Buffer, error) {
	b, err := NewWithOptions(bits, wordWidth, endian)
	if err != nil {
		return nil, err
	}
	if err := b.SetBytes(data); err != nil {
		return nil, err
	}
	return b, nil
}

// SetHex fills the buffer from a hex string starting at bit 0, four bits per
// nibble in bit order. A trailing partial nibble covers the remaining bits.
// The string must supply at least BitLen bits.
func (b *Buffer) SetHex(s string) error {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s)*4 < b.bits {
		return fmt.Errorf("databuf: hex %q covers %d bits, need %d", s, len(s)*4, b.bits)
	}
	for i, r := range s {
		v, err := nibble(r)
		if err != nil {
			return err
		}
		off := i * 4
		if off >= b.bits {
			break
		}
		n := min(4, b.bits-off)
		// A partial trailing nibble uses its high bits.
		if err := b.Set(off, n, uint64(v)>>(4-uint(n))); err != nil {
			return err
		}
	}
	return nil
}

// Hex renders the bit stream as a compact hex string, bit 0 first, with a
// trailing partial nibble padded by zeros.
func (b *Buffer) Hex() string {
	var sb strings.Builder
	for off := 0; off < b.bits; off += 4 {
		n := min(4, b.bits-off)
		v, _ := b.Get(off, n)
		sb.WriteByte("0123456789ABCDEF"[v<<(4-uint(n))&0xF])
	}
	return sb.String()
}

func nibble(r rune) (uint8, error) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), nil
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10, nil
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10, nil
	}
	return 0, fmt.Errorf("databuf: invalid hex digit %q", r)
}
