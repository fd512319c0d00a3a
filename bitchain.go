package blockhuffman

import (
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
)

const bitsPerByte = 8

// BitChain represents an ordered sequence of bits.  The zero value is an
// empty chain, ready to use.
//
// A BitChain that was produced by CodeTable also carries the Symbol whose
// code it is.
//
type BitChain struct {
	bits      []Bit
	symbol    Symbol
	hasSymbol bool
}

// NewBitChain is a convenience function that constructs a BitChain holding
// the given bits.
func NewBitChain(bits ...Bit) *BitChain {
	c := &BitChain{bits: make([]Bit, len(bits))}
	copy(c.bits, bits)
	return c
}

// ParseBitChain constructs a BitChain from a string of '0' and '1'
// characters.
func ParseBitChain(str string) (*BitChain, error) {
	c := &BitChain{bits: make([]Bit, 0, len(str))}
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			c.bits = append(c.bits, Zero)
		case '1':
			c.bits = append(c.bits, One)
		default:
			return nil, invalidArgf("bad character %q at index %d in bit string %q", str[i], i, str)
		}
	}
	return c, nil
}

// Append appends one bit to the end of the chain.
func (c *BitChain) Append(bit Bit) {
	c.bits = append(c.bits, Bit(bit.Value()))
}

// AppendChain appends the bits of other to the end of the chain.  The bits
// are copied, so later changes to either chain do not affect the other.
func (c *BitChain) AppendChain(other *BitChain) {
	if other == nil {
		return
	}
	c.bits = append(c.bits, other.bits...)
}

// Copy returns an independent copy of this chain, including its symbol.
func (c *BitChain) Copy() *BitChain {
	dup := NewBitChain(c.bits...)
	dup.symbol = c.symbol
	dup.hasSymbol = c.hasSymbol
	return dup
}

// WithSymbol returns a copy of this chain that is tagged with sym.
func (c *BitChain) WithSymbol(sym Symbol) *BitChain {
	dup := c.Copy()
	dup.symbol = sym
	dup.hasSymbol = true
	return dup
}

// Symbol returns the symbol this chain is the code for, if any.
func (c *BitChain) Symbol() (Symbol, bool) {
	return c.symbol, c.hasSymbol
}

// Len returns the number of bits in the chain.
func (c *BitChain) Len() int {
	return len(c.bits)
}

// Bits returns a copy of the bits in the chain.
func (c *BitChain) Bits() []Bit {
	out := make([]Bit, len(c.bits))
	copy(out, c.bits)
	return out
}

// Equal reports whether both chains hold the same bits in the same order.
// Associated symbols are not compared.
func (c *BitChain) Equal(other *BitChain) bool {
	if other == nil {
		return false
	}
	if len(c.bits) != len(other.bits) {
		return false
	}
	for i := range c.bits {
		if c.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a prefix of this chain.
func (c *BitChain) HasPrefix(prefix *BitChain) bool {
	if len(prefix.bits) > len(c.bits) {
		return false
	}
	for i := range prefix.bits {
		if c.bits[i] != prefix.bits[i] {
			return false
		}
	}
	return true
}

// PadToByte appends Zero bits until the length of the chain is a multiple
// of 8.  It returns the number of bits appended.
func (c *BitChain) PadToByte() int {
	n := 0
	for len(c.bits)%bitsPerByte != 0 {
		c.bits = append(c.bits, Zero)
		n++
	}
	return n
}

// FlushBytesTo packs complete bytes from the front of the chain and writes
// them to w.  The first bit of the chain becomes the most significant bit of
// the first byte.  Fewer than 8 bits remain in the chain afterward.
//
// If w fails, the bits of the byte that could not be written stay in the
// chain.  The number of bytes successfully written is returned.
//
func (c *BitChain) FlushBytesTo(w io.ByteWriter) (int, error) {
	var written, consumed int
	var err error
	for len(c.bits)-consumed >= bitsPerByte {
		var b byte
		for i := 0; i < bitsPerByte; i++ {
			b |= c.bits[consumed+i].Value() << (bitsPerByte - 1 - i)
		}
		if err = w.WriteByte(b); err != nil {
			err = fmt.Errorf("failed to write packed byte: %w", err)
			break
		}
		consumed += bitsPerByte
		written++
	}

	if consumed != 0 {
		n := copy(c.bits, c.bits[consumed:])
		c.bits = c.bits[:n]
	}

	assert.Assertf(err != nil || len(c.bits) < bitsPerByte, "%d bits left in chain after flush", len(c.bits))
	return written, err
}

// String returns the bits of the chain as a string of '0' and '1'
// characters.
func (c *BitChain) String() string {
	var sb strings.Builder
	sb.Grow(len(c.bits))
	for _, bit := range c.bits {
		sb.WriteString(bit.String())
	}
	return sb.String()
}

var _ fmt.Stringer = (*BitChain)(nil)
