package blockhuffman

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a caller passes a nil, negative,
	// or out-of-range argument.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCorruptInput is returned when an encoded frame is structurally
	// invalid.
	ErrCorruptInput = errors.New("corrupt input")

	// ErrSizeLimit is returned when a frame would decode to more bytes than
	// Options.MaxDecodedSize (or DefaultMaxDecodedSize) allows.
	ErrSizeLimit = errors.New("decoded size exceeds limit")
)

// BlockError reports the failure of a single block task.
type BlockError struct {
	Op    string
	Index int
	Err   error
}

// Error returns the error message.
func (e *BlockError) Error() string {
	return fmt.Sprintf("%s block %d: %v", e.Op, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *BlockError) Unwrap() error {
	return e.Err
}

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}

func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrCorruptInput}, args...)...)
}
