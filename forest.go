package blockhuffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// Forest is a collection of trees ordered by count, used to build a
// Huffman tree by repeatedly merging the two trees with the smallest
// counts.
//
// Trees with equal counts are ordered by insertion: the one inserted first
// is considered smaller, and every merged tree counts as freshly inserted.
// This makes ToTree deterministic, so that the encoder and the decoder
// derive identical trees from identical Statistics.
//
type Forest struct {
	h       treeHeap
	nextSeq uint64
}

// NewForest returns an empty Forest with room for sizeHint trees.
func NewForest(sizeHint int) *Forest {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Forest{h: treeHeap{list: make([]treeAndSeq, 0, sizeHint)}}
}

// Insert adds a tree to the forest.
func (f *Forest) Insert(t *Tree) error {
	if t == nil {
		return invalidArgf("cannot insert a nil tree")
	}
	f.push(t)
	return nil
}

func (f *Forest) push(t *Tree) {
	heap.Push(&f.h, treeAndSeq{tree: t, seq: f.nextSeq})
	f.nextSeq++
}

func (f *Forest) pop() *Tree {
	return heap.Pop(&f.h).(treeAndSeq).tree
}

// Len returns the number of trees in the forest.
func (f *Forest) Len() int {
	return f.h.Len()
}

// ToTree merges all trees of the forest into one and returns it.  The
// forest is consumed in the process.  An empty forest yields the Empty
// tree.
//
// Each step pops the smallest tree a and the next smallest tree b, and
// pushes a Node with a on the left (0) and b on the right (1).
//
func (f *Forest) ToTree() *Tree {
	if f.h.Len() == 0 {
		return Empty()
	}
	for f.h.Len() > 1 {
		a := f.pop()
		b := f.pop()
		f.push(merge(a, b))
	}
	root := f.pop()
	assert.Assertf(f.h.Len() == 0, "forest still holds %d trees", f.h.Len())
	return root
}

// type treeAndSeq + type treeHeap {{{

type treeAndSeq struct {
	tree *Tree
	seq  uint64
}

type treeHeap struct {
	list []treeAndSeq
}

func (h *treeHeap) Len() int {
	return len(h.list)
}

func (h *treeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *treeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.tree.count != b.tree.count {
		return a.tree.count < b.tree.count
	}
	return a.seq < b.seq
}

func (h *treeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(treeAndSeq))
}

func (h *treeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = treeAndSeq{}
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*treeHeap)(nil)

// }}}
