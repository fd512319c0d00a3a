package blockhuffman

import (
	"io"
	"log/slog"
)

// DefaultBlockCount is the block count used when Options.BlockCount is 0.
const DefaultBlockCount = 4

// DefaultMaxDecodedSize is the decoded size limit used when
// Options.MaxDecodedSize is 0.
const DefaultMaxDecodedSize = 1 << 30

// Options configures an Encoder or a Decoder.  The zero value is valid.
type Options struct {
	// BlockCount is the number of blocks the input is split into when
	// encoding.  0 means DefaultBlockCount.  Ignored by Decoder, which
	// takes the block count from the frame.
	BlockCount int

	// Workers bounds the number of blocks processed at the same time.  0
	// means one goroutine per block.
	Workers int

	// MaxDecodedSize bounds the number of bytes a frame may decode to.  0
	// means DefaultMaxDecodedSize.  The limit is enforced before any output
	// buffer is allocated.
	MaxDecodedSize int64

	// Logger receives debug records about every operation.  nil discards
	// them.
	Logger *slog.Logger
}

func (o Options) validate() error {
	if o.BlockCount < 0 {
		return invalidArgf("block count %d must be >= 0", o.BlockCount)
	}
	if o.Workers < 0 {
		return invalidArgf("worker count %d must be >= 0", o.Workers)
	}
	if o.MaxDecodedSize < 0 {
		return invalidArgf("maximum decoded size %d must be >= 0", o.MaxDecodedSize)
	}
	return nil
}

func (o Options) blockCount() int {
	if o.BlockCount == 0 {
		return DefaultBlockCount
	}
	return o.BlockCount
}

func (o Options) maxDecodedSize() int64 {
	if o.MaxDecodedSize == 0 {
		return DefaultMaxDecodedSize
	}
	return o.MaxDecodedSize
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
