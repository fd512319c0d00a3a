package blockhuffman

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kind identifies which variant of Tree a value is.
type Kind uint8

const (
	// EmptyKind is the tree of a corpus with no symbols at all.
	EmptyKind Kind = iota

	// LeafKind is a single symbol together with its count.
	LeafKind

	// NodeKind is an inner node with a left (0) and a right (1) subtree.
	NodeKind
)

var kindNames = [...]string{
	EmptyKind: "Empty",
	LeafKind:  "Leaf",
	NodeKind:  "Node",
}

// String returns the name of the variant.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Tree is a Huffman code tree.  It is one of three variants, told apart by
// Kind:
//
//   - Empty carries no data.
//   - Leaf carries a Symbol and its count, which is at least 1.
//   - Node owns a left and a right subtree; its count is the sum of theirs.
//
// Trees are immutable once built, so a single Tree may be shared by any
// number of goroutines.
//
type Tree struct {
	kind   Kind
	symbol Symbol
	count  uint64
	left   *Tree
	right  *Tree
}

// Empty returns the empty tree.
func Empty() *Tree {
	return &Tree{kind: EmptyKind}
}

// NewLeaf returns a Leaf for sym occurring count times.  count must be at
// least 1.
func NewLeaf(sym Symbol, count uint64) (*Tree, error) {
	if count == 0 {
		return nil, invalidArgf("leaf count for symbol %d must be >= 1", sym)
	}
	return newLeaf(sym, count), nil
}

func newLeaf(sym Symbol, count uint64) *Tree {
	return &Tree{kind: LeafKind, symbol: sym, count: count}
}

// Merge returns a Node with the given subtrees.  Neither may be nil.  The
// count of the Node is the (wrapping) sum of both counts.
func Merge(left, right *Tree) (*Tree, error) {
	if left == nil || right == nil {
		return nil, invalidArgf("cannot merge a nil tree")
	}
	return merge(left, right), nil
}

func merge(left, right *Tree) *Tree {
	return &Tree{kind: NodeKind, count: left.count + right.count, left: left, right: right}
}

// Kind returns the variant of this tree.
func (t *Tree) Kind() Kind {
	return t.kind
}

// IsEmpty reports whether this is the Empty tree.
func (t *Tree) IsEmpty() bool {
	return t.kind == EmptyKind
}

// Count returns the total number of symbol occurrences below this tree.
func (t *Tree) Count() uint64 {
	return t.count
}

// Symbol returns the symbol of a Leaf.  ok is false for other variants.
func (t *Tree) Symbol() (sym Symbol, ok bool) {
	if t.kind != LeafKind {
		return 0, false
	}
	return t.symbol, true
}

// Left returns the 0 subtree of a Node, or nil.
func (t *Tree) Left() *Tree {
	return t.left
}

// Right returns the 1 subtree of a Node, or nil.
func (t *Tree) Right() *Tree {
	return t.right
}

// IsWellFormed reports whether no Node in the tree has exactly one Empty
// child.
func (t *Tree) IsWellFormed() bool {
	switch t.kind {
	case EmptyKind, LeafKind:
		return true
	case NodeKind:
		if t.left.IsEmpty() != t.right.IsEmpty() {
			return false
		}
		return t.left.IsWellFormed() && t.right.IsWellFormed()
	default:
		panic(fmt.Errorf("unknown tree kind %v", t.kind))
	}
}

// Translate decodes n symbols from src and writes them to dst.  Starting at
// the root, every Zero bit moves to the left subtree and every One bit to
// the right, until a Leaf is reached and its symbol is emitted.
//
// A tree that is a single Leaf emits its symbol n times without reading any
// bits.  The Empty tree holds no symbols, so n must be 0 for it.
//
// If src runs dry before n symbols have been decoded, the returned error
// wraps ErrCorruptInput.
//
func (t *Tree) Translate(src BitSource, n int, dst io.ByteWriter) error {
	if n < 0 {
		return invalidArgf("symbol count %d must be >= 0", n)
	}
	if dst == nil {
		return invalidArgf("destination is nil")
	}

	switch t.kind {
	case EmptyKind:
		if n != 0 {
			return invalidArgf("cannot translate %d symbols with the empty tree", n)
		}
		return nil

	case LeafKind:
		for i := 0; i < n; i++ {
			if err := dst.WriteByte(byte(t.symbol)); err != nil {
				return fmt.Errorf("failed to write symbol: %w", err)
			}
		}
		return nil

	case NodeKind:
		if src == nil {
			return invalidArgf("bit source is nil")
		}
		for i := 0; i < n; i++ {
			sym, err := t.walk(src)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return corruptf("bit source exhausted after %d of %d symbols", i, n)
				}
				return err
			}
			if err := dst.WriteByte(byte(sym)); err != nil {
				return fmt.Errorf("failed to write symbol: %w", err)
			}
		}
		return nil

	default:
		panic(fmt.Errorf("unknown tree kind %v", t.kind))
	}
}

// walk follows bits from src down to a Leaf.
func (t *Tree) walk(src BitSource) (Symbol, error) {
	node := t
	for node.kind == NodeKind {
		bit, err := src.ReadBit()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("failed to read bit: %w", err)
		}
		if bit.Value() == 0 {
			node = node.left
		} else {
			node = node.right
		}
	}
	if node.kind != LeafKind {
		return 0, corruptf("code leads into an empty subtree")
	}
	return node.symbol, nil
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	t.dump(&buf, "", 0)
	return buf.WriteTo(w)
}

func (t *Tree) dump(buf *bytes.Buffer, edge string, depth int) {
	buf.WriteString(strings.Repeat("\t", depth))
	buf.WriteString(edge)
	switch t.kind {
	case EmptyKind:
		buf.WriteString("Empty\n")
	case LeafKind:
		fmt.Fprintf(buf, "Leaf(%s, %d)\n", symbolLabel(t.symbol), t.count)
	case NodeKind:
		fmt.Fprintf(buf, "Node(%d)\n", t.count)
		t.left.dump(buf, "0: ", depth+1)
		t.right.dump(buf, "1: ", depth+1)
	}
}
