package blockhuffman

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/chronos-tachyon/assert"
	"golang.org/x/sync/errgroup"
)

// Encoder compresses byte slices into frames.
type Encoder struct {
	opts Options
}

// Init initializes this Encoder.
func (e *Encoder) Init(opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	*e = Encoder{opts: opts}
	return nil
}

// Encode compresses data and writes the resulting frame to w.  It returns
// the number of encoded content bits, which excludes the frame header and
// the padding at the end of every block.
//
// The steps are: count the bytes, build the Huffman tree and its code
// table, split data into blocks of nearly equal size, encode every block
// concurrently, and write the frame once all blocks are done.  Nothing is
// written to w if any block fails.
//
func (e Encoder) Encode(w io.Writer, data []byte) (int64, error) {
	if w == nil {
		return 0, invalidArgf("writer is nil")
	}

	stats := Analyse(data)
	tree := stats.ToForest().ToTree()
	table := tree.CodeTable()

	blocks, err := SplitBlocks(len(data), e.opts.blockCount())
	if err != nil {
		return 0, err
	}

	tasks := make([]*EncoderTask, len(blocks))
	runners := make([]runner, len(blocks))
	for i, b := range blocks {
		task, err := NewEncoderTask(table, data, b.Start, b.Length)
		if err != nil {
			return 0, err
		}
		tasks[i] = task
		runners[i] = task
	}

	if err := runAll("encode", runners, e.opts.Workers); err != nil {
		return 0, err
	}

	var contentBits int64
	results := make([][]byte, len(tasks))
	for i, task := range tasks {
		results[i] = task.Result()
		contentBits += task.ContentBits()
	}

	if err := writeFrame(w, stats, results); err != nil {
		return 0, err
	}

	e.opts.logger().Debug("encoded frame",
		slog.Int("bytes", len(data)),
		slog.Int("blocks", len(blocks)),
		slog.Int("symbols", table.Len()),
		slog.Float64("entropy", stats.Entropy()),
		slog.Int64("contentBits", contentBits))
	return contentBits, nil
}

// Decoder restores byte slices from frames.
type Decoder struct {
	opts Options
}

// Init initializes this Decoder.
func (d *Decoder) Init(opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	*d = Decoder{opts: opts}
	return nil
}

// Decode reads a whole frame from r and writes the decoded bytes to w.
//
// The Huffman tree is rebuilt from the statistics at the head of the frame.
// The total symbol count is split across the blocks with the same rule
// Encode uses, and every block is decoded concurrently from its own slice
// of the frame.  Nothing is written to w if the frame is corrupt or any
// block fails.
//
func (d Decoder) Decode(w io.Writer, r io.Reader) error {
	if w == nil {
		return invalidArgf("writer is nil")
	}
	if r == nil {
		return invalidArgf("reader is nil")
	}

	stats, err := ReadStatistics(r)
	if err != nil {
		return err
	}
	tree := stats.ToForest().ToTree()

	sum := stats.Sum()
	if sum > uint64(math.MaxInt) {
		return corruptf("symbol count %d is too large", sum)
	}
	if limit := d.opts.maxDecodedSize(); sum > uint64(limit) {
		return fmt.Errorf("%w: frame decodes to %d bytes, limit is %d", ErrSizeLimit, sum, limit)
	}
	assert.Assertf(sum == 0 || !tree.IsEmpty(), "empty tree for %d symbols", sum)
	total := int(sum)

	lengths, err := readBlockLengths(r)
	if err != nil {
		return err
	}
	blocks, err := SplitBlocks(total, len(lengths))
	if err != nil {
		return err
	}

	tasks := make([]*DecoderTask, len(blocks))
	runners := make([]runner, len(blocks))
	for i, b := range blocks {
		data, err := readBlock(r, i, lengths[i])
		if err != nil {
			return err
		}
		if tree.Kind() == NodeKind && int64(b.Length) > int64(len(data))*bitsPerByte {
			return corruptf("block %d holds %d bits, too few for %d symbols", i, len(data)*bitsPerByte, b.Length)
		}
		task, err := NewDecoderTask(tree, NewBitReader(bytes.NewReader(data)), b.Length)
		if err != nil {
			return err
		}
		tasks[i] = task
		runners[i] = task
	}
	if err := expectEOF(r); err != nil {
		return err
	}

	if err := runAll("decode", runners, d.opts.Workers); err != nil {
		return err
	}

	out := make([]byte, total)
	for i, task := range tasks {
		result := task.Result()
		assert.Assertf(len(result) == blocks[i].Length, "block %d decoded to %d bytes, expected %d", i, len(result), blocks[i].Length)
		copy(out[blocks[i].Start:], result)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write decoded bytes: %w", err)
	}

	d.opts.logger().Debug("decoded frame",
		slog.Int("bytes", total),
		slog.Int("blocks", len(blocks)),
		slog.Int("symbols", stats.Distinct()))
	return nil
}

// Encode compresses data into blockCount blocks and writes the frame to w.
// It returns the number of encoded content bits.
func Encode(w io.Writer, data []byte, blockCount int) (int64, error) {
	if blockCount < 1 {
		return 0, invalidArgf("block count %d must be >= 1", blockCount)
	}
	var e Encoder
	if err := e.Init(Options{BlockCount: blockCount}); err != nil {
		return 0, err
	}
	return e.Encode(w, data)
}

// EncodeBytes is like Encode, but returns the frame.
func EncodeBytes(data []byte, blockCount int) ([]byte, int64, error) {
	var buf bytes.Buffer
	n, err := Encode(&buf, data, blockCount)
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), n, nil
}

// Decode reads a frame from r and writes the decoded bytes to w.
func Decode(w io.Writer, r io.Reader) error {
	var d Decoder
	return d.Decode(w, r)
}

// DecodeBytes is like Decode, but operates on an in-memory frame.
func DecodeBytes(frame []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := Decode(&buf, bytes.NewReader(frame)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type runner interface {
	Run() error
}

// runAll runs every task on its own goroutine and waits for all of them.
// At most workers tasks run at once, unless workers is 0.  The first
// failure is returned as a *BlockError; all tasks still run to completion.
func runAll(op string, tasks []runner, workers int) error {
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := task.Run(); err != nil {
				return &BlockError{Op: op, Index: i, Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}
