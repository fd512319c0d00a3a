package blockhuffman

import (
	"bytes"
	"fmt"
	"io"
)

// CodeTable maps every symbol present in a Huffman tree to its code.  It is
// immutable once built and safe for concurrent use.
type CodeTable struct {
	codes [NumSymbols]*BitChain
	size  int
}

// CodeTable derives the code of every Leaf in the tree.  The root has the
// empty code; the left child of a Node with code c has code c+"0" and the
// right child has code c+"1".  The tree itself is not modified.
//
// A tree that is a single Leaf maps its symbol to the empty code.  The Empty
// tree yields an empty table.
//
func (t *Tree) CodeTable() *CodeTable {
	ct := new(CodeTable)
	prefix := make([]Bit, 0, 16)
	ct.fill(t, prefix)
	return ct
}

func (ct *CodeTable) fill(t *Tree, prefix []Bit) {
	switch t.kind {
	case EmptyKind:
		// no symbols
	case LeafKind:
		code := NewBitChain(prefix...)
		code.symbol = t.symbol
		code.hasSymbol = true
		ct.codes[t.symbol] = code
		ct.size++
	case NodeKind:
		ct.fill(t.left, append(prefix, Zero))
		ct.fill(t.right, append(prefix, One))
	default:
		panic(fmt.Errorf("unknown tree kind %v", t.kind))
	}
}

// code returns the table's own chain for sym, without copying.
func (ct *CodeTable) code(sym Symbol) *BitChain {
	return ct.codes[sym]
}

// Lookup returns a copy of the code for sym.  ok is false if sym does not
// occur in the tree the table was derived from.
func (ct *CodeTable) Lookup(sym Symbol) (code *BitChain, ok bool) {
	c := ct.codes[sym]
	if c == nil {
		return nil, false
	}
	return c.Copy(), true
}

// Len returns the number of symbols that have a code.
func (ct *CodeTable) Len() int {
	return ct.size
}

// Symbols returns the symbols that have a code, in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ct.size)
	for sym, c := range ct.codes {
		if c != nil {
			out = append(out, Symbol(sym))
		}
	}
	return out
}

// SizeBySymbol returns an array containing the code length for each Symbol
// in the alphabet.  Symbols without a code have length 0, as does the only
// symbol of a single-Leaf tree.
//
func (ct *CodeTable) SizeBySymbol() []int {
	out := make([]int, NumSymbols)
	for sym, c := range ct.codes {
		if c != nil {
			out[sym] = c.Len()
		}
	}
	return out
}

// WeightedLength returns the total number of bits needed to encode the
// input described by stats with this table, i.e. the sum of count×length
// over all symbols.
func (ct *CodeTable) WeightedLength(stats *Statistics) uint64 {
	var total uint64
	for sym, c := range ct.codes {
		if c != nil {
			total += stats.counts[sym] * uint64(c.Len())
		}
	}
	return total
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", ct.size)
	for sym, c := range ct.codes {
		if c != nil {
			fmt.Fprintf(&buf, "\tLookup(%d) = %q\n", sym, c.String())
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
