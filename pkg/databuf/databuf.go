// Package databuf provides the bit-addressable data buffer that crosses the
// command/engine boundary. Hardware register semantics depend on bit
// position, so every access is defined in terms of bit offsets within fixed
// width words and an explicit bit-numbering convention.
package databuf

import (
	"errors"
	"fmt"
	"strings"
)

// Endian selects the bit-numbering convention of a buffer.
type Endian uint8

const (
	// MSB0 numbers bit 0 as the most significant bit of word 0. This is the
	// convention of scan rings and SCOM registers.
	MSB0 Endian = iota
	// LSB0 numbers bit 0 as the least significant bit of word 0.
	LSB0
)

// DefaultWordWidth is the word size used by New.
const DefaultWordWidth = 32

// ErrOutOfRange signals an access outside [0, BitLen).
var ErrOutOfRange = errors.New("databuf: bit offset out of range")

// Buffer is an ordered sequence of bits grouped into fixed-width words.
// The zero value is unusable; construct with New or NewWithOptions.
type Buffer struct {
	words     []uint64
	bits      int
	wordWidth int
	endian    Endian
}

// New creates a buffer of the given bit length using 32-bit words and MSB0
// numbering.
func New(bits int) *Buffer {
	b, err := NewWithOptions(bits, DefaultWordWidth, MSB0)
	if err != nil {
		panic(err)
	}
	return b
}

// NewWithOptions creates a buffer with an explicit word width (1..64 bits)
// and bit-numbering convention. A bit length that is not a multiple of the
// word width leaves a partial trailing word.
func NewWithOptions(bits, wordWidth int, endian Endian) (*Buffer, error) {
	if bits < 0 {
		return nil, fmt.Errorf("databuf: negative bit length %d", bits)
	}
	if wordWidth < 1 || wordWidth > 64 {
		return nil, fmt.Errorf("databuf: word width %d not in 1..64", wordWidth)
	}
	return &Buffer{
		words:     make([]uint64, wordCount(bits, wordWidth)),
		bits:      bits,
		wordWidth: wordWidth,
		endian:    endian,
	}, nil
}

func wordCount(bits, width int) int {
	return (bits + width - 1) / width
}

// BitLen returns the buffer length in bits.
func (b *Buffer) BitLen() int { return b.bits }

// WordWidth returns the configured word width in bits.
func (b *Buffer) WordWidth() int { return b.wordWidth }

// Endianness returns the bit-numbering convention.
func (b *Buffer) Endianness() Endian { return b.endian }

// WordLen returns the number of words, counting a partial trailing word.
func (b *Buffer) WordLen() int { return wordCount(b.bits, b.wordWidth) }

func (b *Buffer) wordMask() uint64 {
	if b.wordWidth == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << b.wordWidth) - 1
}

// shiftFor maps an absolute bit index to the shift of that bit within its
// word, honoring the bit-numbering convention.
func (b *Buffer) shiftFor(bit int) (word int, shift uint) {
	word = bit / b.wordWidth
	pos := bit % b.wordWidth
	if b.endian == MSB0 {
		return word, uint(b.wordWidth - 1 - pos)
	}
	return word, uint(pos)
}

func (b *Buffer) checkRange(off, n int) error {
	if off < 0 || n < 0 || off+n > b.bits {
		return fmt.Errorf("databuf: range [%d,%d) exceeds %d bits: %w",
			off, off+n, b.bits, ErrOutOfRange)
	}
	return nil
}

// TestBit reports whether the bit at the given offset is set.
func (b *Buffer) TestBit(off int) (bool, error) {
	if err := b.checkRange(off, 1); err != nil {
		return false, err
	}
	w, s := b.shiftFor(off)
	return b.words[w]>>s&1 == 1, nil
}

func (b *Buffer) writeBit(off int, v bool) {
	w, s := b.shiftFor(off)
	if v {
		b.words[w] |= 1 << s
	} else {
		b.words[w] &^= 1 << s
	}
}

// SetBit sets the bit at the given offset.
func (b *Buffer) SetBit(off int) error {
	if err := b.checkRange(off, 1); err != nil {
		return err
	}
	b.writeBit(off, true)
	return nil
}

// ClearBit clears the bit at the given offset.
func (b *Buffer) ClearBit(off int) error {
	if err := b.checkRange(off, 1); err != nil {
		return err
	}
	b.writeBit(off, false)
	return nil
}

// Set writes the low n bits of value into the buffer starting at off. Under
// MSB0 the first written bit is the most significant of the n; under LSB0 it
// is the least significant. Writes spanning word boundaries behave exactly
// as n consecutive single-bit writes.
func (b *Buffer) Set(off, n int, value uint64) error {
	if n < 1 || n > 64 {
		return fmt.Errorf("databuf: field width %d not in 1..64", n)
	}
	if err := b.checkRange(off, n); err != nil {
		return err
	}
	for j := 0; j < n; j++ {
		var bit bool
		if b.endian == MSB0 {
			bit = value>>(uint(n-1-j))&1 == 1
		} else {
			bit = value>>uint(j)&1 == 1
		}
		b.writeBit(off+j, bit)
	}
	return nil
}

// Get reads n bits starting at off, the inverse of Set.
func (b *Buffer) Get(off, n int) (uint64, error) {
	if n < 1 || n > 64 {
		return 0, fmt.Errorf("databuf: field width %d not in 1..64", n)
	}
	if err := b.checkRange(off, n); err != nil {
		return 0, err
	}
	var v uint64
	for j := 0; j < n; j++ {
		w, s := b.shiftFor(off + j)
		bit := b.words[w] >> s & 1
		if b.endian == MSB0 {
			v = v<<1 | bit
		} else {
			v |= bit << uint(j)
		}
	}
	return v, nil
}

// WordAt returns the word at the given index. A partial trailing word is
// returned with its unused bits zero.
func (b *Buffer) WordAt(i int) (uint64, error) {
	if i < 0 || i >= b.WordLen() {
		return 0, fmt.Errorf("databuf: word index %d of %d: %w", i, b.WordLen(), ErrOutOfRange)
	}
	return b.words[i] & b.wordMask(), nil
}

// SetWord overwrites the word at the given index with the low WordWidth bits
// of v. Bits beyond BitLen in a partial trailing word are kept zero.
func (b *Buffer) SetWord(i int, v uint64) error {
	if i < 0 || i >= b.WordLen() {
		return fmt.Errorf("databuf: word index %d of %d: %w", i, b.WordLen(), ErrOutOfRange)
	}
	b.words[i] = v & b.wordMask()
	b.clampTrailing()
	return nil
}

// clampTrailing zeroes bits past BitLen in the final word so Resize growth
// is guaranteed to expose zeros.
func (b *Buffer) clampTrailing() {
	rem := b.bits % b.wordWidth
	if rem == 0 || len(b.words) == 0 {
		return
	}
	last := len(b.words) - 1
	var valid uint64
	if b.endian == MSB0 {
		// High rem bits of the word are in range.
		valid = b.wordMask() &^ ((uint64(1) << uint(b.wordWidth-rem)) - 1)
	} else {
		valid = (uint64(1) << uint(rem)) - 1
	}
	b.words[last] &= valid
}

// Resize changes the bit length. Bits up to the smaller of the old and new
// lengths are preserved; growth is zero-filled.
func (b *Buffer) Resize(bits int) error {
	if bits < 0 {
		return fmt.Errorf("databuf: negative bit length %d", bits)
	}
	b.bits = bits
	n := wordCount(bits, b.wordWidth)
	switch {
	case n > len(b.words):
		b.words = append(b.words, make([]uint64, n-len(b.words))...)
	case n < len(b.words):
		b.words = b.words[:n]
	}
	b.clampTrailing()
	return nil
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		words:     append([]uint64(nil), b.words...),
		bits:      b.bits,
		wordWidth: b.wordWidth,
		endian:    b.endian,
	}
	return out
}

// CopyFrom overwrites this buffer's content with src's bits, up to the
// smaller of the two lengths. Word width and endianness must match.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if src.wordWidth != b.wordWidth || src.endian != b.endian {
		return fmt.Errorf("databuf: layout mismatch (%d/%v vs %d/%v)",
			src.wordWidth, src.endian, b.wordWidth, b.endian)
	}
	n := min(b.bits, src.bits)
	for i := 0; i < n; i++ {
		v, _ := src.TestBit(i)
		b.writeBit(i, v)
	}
	return nil
}

// String renders the buffer as hex words for diagnostics.
func (b *Buffer) String() string {
	var sb strings.Builder
	nibbles := (b.wordWidth + 3) / 4
	for i := 0; i < b.WordLen(); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%0*X", nibbles, b.words[i]&b.wordMask())
	}
	return sb.String()
}
