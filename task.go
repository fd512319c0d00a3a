package blockhuffman

import (
	"bytes"
	"io"
)

// maxGrowHint bounds the up-front buffer reservation of a task.  Larger
// outputs still grow on demand.
const maxGrowHint = 1 << 20

func growHint(n int) int {
	if n > maxGrowHint {
		return maxGrowHint
	}
	return n
}

// EncoderTask encodes one block of the source with a shared CodeTable.
// Tasks share no mutable state, so any number of them may run at once.
type EncoderTask struct {
	table       *CodeTable
	data        []byte
	block       Block
	result      []byte
	contentBits int64
}

// NewEncoderTask returns a task that encodes data[start:start+length].
func NewEncoderTask(table *CodeTable, data []byte, start int, length int) (*EncoderTask, error) {
	if table == nil {
		return nil, invalidArgf("code table is nil")
	}
	if start < 0 {
		return nil, invalidArgf("start index %d must be >= 0", start)
	}
	if length < 0 {
		return nil, invalidArgf("block length %d must be >= 0", length)
	}
	if start > len(data) || length > len(data)-start {
		return nil, invalidArgf("block [%d, %d) exceeds input of %d bytes", start, start+length, len(data))
	}
	return &EncoderTask{
		table: table,
		data:  data,
		block: Block{Start: start, Length: length},
	}, nil
}

// Encode writes the encoded block to w, padded with Zero bits to a byte
// boundary.  It returns the number of bits written, excluding padding.
func (task *EncoderTask) Encode(w io.ByteWriter) (contentBits int64, err error) {
	var chain BitChain
	var flushed int64
	for _, b := range task.data[task.block.Start:task.block.End()] {
		code := task.table.code(Symbol(b))
		if code == nil {
			return 0, invalidArgf("symbol %d has no code", b)
		}
		chain.AppendChain(code)
		n, err := chain.FlushBytesTo(w)
		flushed += int64(n)
		if err != nil {
			return 0, err
		}
	}

	contentBits = flushed*bitsPerByte + int64(chain.Len())
	chain.PadToByte()
	if _, err := chain.FlushBytesTo(w); err != nil {
		return 0, err
	}
	return contentBits, nil
}

// Run encodes the block into a buffer owned by the task.
func (task *EncoderTask) Run() error {
	var buf bytes.Buffer
	buf.Grow(growHint(task.block.Length))
	n, err := task.Encode(&buf)
	if err != nil {
		return err
	}
	task.result = buf.Bytes()
	task.contentBits = n
	return nil
}

// Result returns the encoded bytes.  It is only valid after Run succeeds.
func (task *EncoderTask) Result() []byte {
	return task.result
}

// ContentBits returns the number of encoded bits, excluding padding.  It is
// only valid after Run succeeds.
func (task *EncoderTask) ContentBits() int64 {
	return task.contentBits
}

// DecoderTask decodes one block with a shared Tree.  Each task reads from
// its own BitSource.
type DecoderTask struct {
	tree   *Tree
	src    BitSource
	count  int
	result []byte
}

// NewDecoderTask returns a task that decodes count symbols from src.
func NewDecoderTask(tree *Tree, src BitSource, count int) (*DecoderTask, error) {
	if tree == nil {
		return nil, invalidArgf("tree is nil")
	}
	if src == nil {
		return nil, invalidArgf("bit source is nil")
	}
	if count < 0 {
		return nil, invalidArgf("symbol count %d must be >= 0", count)
	}
	return &DecoderTask{tree: tree, src: src, count: count}, nil
}

// Run decodes the block into a buffer owned by the task.
func (task *DecoderTask) Run() error {
	var buf bytes.Buffer
	buf.Grow(growHint(task.count))
	if err := task.tree.Translate(task.src, task.count, &buf); err != nil {
		return err
	}
	task.result = buf.Bytes()
	return nil
}

// Result returns the decoded bytes.  It is only valid after Run succeeds.
func (task *DecoderTask) Result() []byte {
	return task.result
}
