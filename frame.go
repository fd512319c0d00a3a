package blockhuffman

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// writeFrame assembles the complete frame in memory, so that w sees either
// the whole frame or a single failed Write.
func writeFrame(w io.Writer, stats *Statistics, blocks [][]byte) error {
	size := StatisticsSize + 4 + 4*len(blocks)
	for i, blob := range blocks {
		if len(blob) > math.MaxInt32 {
			return invalidArgf("block %d encodes to %d bytes, more than a frame can describe", i, len(blob))
		}
		size += len(blob)
	}

	frame := make([]byte, 0, size)
	frame = stats.appendBinary(frame)
	frame = binary.BigEndian.AppendUint32(frame, uint32(int32(len(blocks))))
	for _, blob := range blocks {
		frame = binary.BigEndian.AppendUint32(frame, uint32(int32(len(blob))))
	}
	for _, blob := range blocks {
		frame = append(frame, blob...)
	}

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

// readBlockLengths reads the block count and the encoded length of every
// block.
func readBlockLengths(r io.Reader) ([]int, error) {
	count, err := readInt32(r, "block count")
	if err != nil {
		return nil, err
	}
	if count < 1 {
		return nil, corruptf("block count %d must be >= 1", count)
	}

	// grown as lengths arrive, so a bogus count cannot force a huge
	// allocation
	capacity := int(count)
	if capacity > 1024 {
		capacity = 1024
	}
	lengths := make([]int, 0, capacity)
	for i := int32(0); i < count; i++ {
		length, err := readInt32(r, "block length")
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return nil, corruptf("block %d has negative length %d", i, length)
		}
		lengths = append(lengths, int(length))
	}
	return lengths, nil
}

// readBlock reads exactly length bytes of block data.
func readBlock(r io.Reader, index int, length int) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, int64(length)))
	if err != nil {
		return nil, fmt.Errorf("failed to read block %d: %w", index, err)
	}
	if len(data) != length {
		return nil, corruptf("block %d is %d bytes long, frame declares %d", index, len(data), length)
	}
	return data, nil
}

// expectEOF fails if r has any bytes left.
func expectEOF(r io.Reader) error {
	var one [1]byte
	n, err := io.ReadFull(r, one[:])
	if n != 0 {
		return corruptf("trailing data after last block")
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read frame: %w", err)
	}
	return nil
}

func readInt32(r io.Reader, what string) (int32, error) {
	var word [4]byte
	if _, err := io.ReadFull(r, word[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, corruptf("truncated %s", what)
		}
		return 0, fmt.Errorf("failed to read %s: %w", what, err)
	}
	return int32(binary.BigEndian.Uint32(word[:])), nil
}
