package blockhuffman

import (
	"io"

	"github.com/icza/bitio"
)

// BitSource is a lazy, forward-only source of bits.  ReadBit returns io.EOF
// once the source is exhausted.
type BitSource interface {
	ReadBit() (Bit, error)
}

// NewBitReader returns a BitSource that yields the bits of r, most
// significant bit of each byte first.
func NewBitReader(r io.Reader) BitSource {
	return &bitReader{r: bitio.NewReader(r)}
}

type bitReader struct {
	r *bitio.Reader
}

func (br *bitReader) ReadBit() (Bit, error) {
	b, err := br.r.ReadBool()
	if err != nil {
		return Zero, err
	}
	if b {
		return One, nil
	}
	return Zero, nil
}

// chainSource adapts a BitChain into a BitSource.
type chainSource struct {
	bits []Bit
	pos  int
}

// NewChainSource returns a BitSource that yields the bits of c in order.
// Later changes to c are not observed.
func NewChainSource(c *BitChain) BitSource {
	return &chainSource{bits: c.Bits()}
}

func (cs *chainSource) ReadBit() (Bit, error) {
	if cs.pos >= len(cs.bits) {
		return Zero, io.EOF
	}
	bit := cs.bits[cs.pos]
	cs.pos++
	return bit, nil
}

var (
	_ BitSource = (*bitReader)(nil)
	_ BitSource = (*chainSource)(nil)
)
