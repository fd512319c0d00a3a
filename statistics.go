package blockhuffman

import (
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// StatisticsSize is the size in bytes of the binary form of Statistics.
const StatisticsSize = NumSymbols * 8

// Statistics holds the number of occurrences of every byte value in some
// input.
type Statistics struct {
	counts [NumSymbols]uint64
}

// Analyse counts the occurrences of every byte value in data.
func Analyse(data []byte) *Statistics {
	s := new(Statistics)
	for _, b := range data {
		s.counts[b]++
	}
	return s
}

// Count returns the number of occurrences of sym.
func (s *Statistics) Count(sym Symbol) uint64 {
	return s.counts[sym]
}

// Sum returns the total of all counts.  The addition wraps on overflow.
func (s *Statistics) Sum() uint64 {
	var sum uint64
	for _, n := range s.counts {
		sum += n
	}
	return sum
}

// Distinct returns the number of symbols with a non-zero count.
func (s *Statistics) Distinct() int {
	n := 0
	for _, count := range s.counts {
		if count != 0 {
			n++
		}
	}
	return n
}

// Entropy returns the Shannon entropy of the distribution, in bits per
// symbol.  This is a lower bound on the average Huffman code length.
func (s *Statistics) Entropy() float64 {
	total := float64(s.Sum())
	if total == 0 {
		return 0
	}
	var h float64
	for _, count := range s.counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		h -= p * math.Log2(p)
	}
	return h
}

// ToForest returns a Forest holding one Leaf for every symbol with a
// non-zero count, inserted in ascending symbol order.  Symbols that never
// occur get no code at all.
//
func (s *Statistics) ToForest() *Forest {
	f := NewForest(s.Distinct())
	for sym := 0; sym < NumSymbols; sym++ {
		if count := s.counts[sym]; count != 0 {
			f.push(newLeaf(Symbol(sym), count))
		}
	}
	return f
}

// WriteTo writes the binary form of s to w: 256 big-endian uint64 counts in
// ascending symbol order, with no header.
func (s *Statistics) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.appendBinary(make([]byte, 0, StatisticsSize)))
	if err != nil {
		return int64(n), fmt.Errorf("failed to write statistics: %w", err)
	}
	return int64(n), nil
}

// MarshalBinary returns the binary form of s.
func (s *Statistics) MarshalBinary() ([]byte, error) {
	return s.appendBinary(make([]byte, 0, StatisticsSize)), nil
}

// appendBinary appends the binary form of s to buf.
func (s *Statistics) appendBinary(buf []byte) []byte {
	for _, count := range s.counts {
		buf = binary.BigEndian.AppendUint64(buf, count)
	}
	return buf
}

// UnmarshalBinary replaces the contents of s with the decoded form of data,
// which must be exactly StatisticsSize bytes long.
func (s *Statistics) UnmarshalBinary(data []byte) error {
	if len(data) != StatisticsSize {
		return corruptf("statistics are %d bytes long, expected %d", len(data), StatisticsSize)
	}
	for sym := range s.counts {
		s.counts[sym] = binary.BigEndian.Uint64(data[sym*8:])
	}
	return nil
}

// ReadStatistics reads the binary form of a Statistics from r.
func ReadStatistics(r io.Reader) (*Statistics, error) {
	if r == nil {
		return nil, invalidArgf("reader is nil")
	}
	buf := make([]byte, StatisticsSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, corruptf("truncated statistics")
		}
		return nil, fmt.Errorf("failed to read statistics: %w", err)
	}
	s := new(Statistics)
	if err := s.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return s, nil
}

var (
	_ io.WriterTo                = (*Statistics)(nil)
	_ encoding.BinaryMarshaler   = (*Statistics)(nil)
	_ encoding.BinaryUnmarshaler = (*Statistics)(nil)
)
