package blockhuffman

import (
	"fmt"
)

// Bit is a single binary digit.
type Bit byte

const (
	// Zero is the 0 bit.  It selects the left child of a Node.
	Zero Bit = 0

	// One is the 1 bit.  It selects the right child of a Node.
	One Bit = 1
)

// Value returns the numeric value of the bit, 0 or 1.
func (b Bit) Value() byte {
	return byte(b) & 1
}

// String returns "0" or "1".
func (b Bit) String() string {
	if b.Value() == 0 {
		return "0"
	}
	return "1"
}

var _ fmt.Stringer = Zero
