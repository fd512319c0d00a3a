package blockhuffman

import (
	"github.com/chronos-tachyon/assert"
)

// Block is a contiguous range [Start, Start+Length) of some sequence.
type Block struct {
	Start  int
	Length int
}

// End returns the index just past the block.
func (b Block) End() int {
	return b.Start + b.Length
}

// SplitBlocks partitions [0, total) into n consecutive blocks.  Every block
// holds total/n items, and the first total%n blocks hold one more, so block
// sizes differ by at most 1.
func SplitBlocks(total int, n int) ([]Block, error) {
	if total < 0 {
		return nil, invalidArgf("total %d must be >= 0", total)
	}
	if n < 1 {
		return nil, invalidArgf("block count %d must be >= 1", n)
	}

	blocks := make([]Block, n)
	base, extra := total/n, total%n
	start := 0
	for i := range blocks {
		length := base
		if i < extra {
			length++
		}
		blocks[i] = Block{Start: start, Length: length}
		start += length
	}

	assert.Assertf(start == total, "blocks cover %d items, expected %d", start, total)
	return blocks, nil
}
