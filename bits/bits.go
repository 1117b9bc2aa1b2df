// Package bits implements bit-granular cursors over in-memory byte buffers.
//
// A Reader extracts fixed-width bit fields from a buffer and a Writer packs
// them into one. Both track a single bit position and support the two
// significance conventions used by compressed formats: MSBFirst (the
// earliest bit read is the most significant bit of the assembled value,
// the usual convention for MPEG-family bitstreams) and LSBFirst (the
// earliest bit is the least significant, the DEFLATE/VP8L convention).
//
// Cursors never copy the backing buffer and hold no heap state beyond the
// position counter. They are not safe for concurrent use; a cursor is meant
// to be owned by exactly one decode or encode pass.
package bits

import "errors"

// Order is the significance convention used when assembling or splitting
// multi-bit values.
type Order int

const (
	MSBFirst Order = iota
	LSBFirst
)

func (o Order) String() string {
	switch o {
	case MSBFirst:
		return "msb-first"
	case LSBFirst:
		return "lsb-first"
	default:
		return "unknown"
	}
}

// MaxFieldBits is the widest bit field a single Peek/Read/Write call can
// move. The field is assembled byte by byte, so up to 7 bits of the first
// partial byte ride along in the 64-bit accumulator; 57 keeps that from
// overflowing.
const MaxFieldBits = 57

var (
	// ErrEndOfStream is returned when a read asks for more bits than the
	// buffer has left. The cursor does not move.
	ErrEndOfStream = errors.New("bits: not enough bits left in stream")

	// ErrBufferFull is returned when a write does not fit in the writer's
	// buffer. The cursor does not move and nothing is truncated.
	ErrBufferFull = errors.New("bits: writer buffer capacity exhausted")
)

// checkField rejects field widths outside the 0..MaxFieldBits contract.
// An out-of-contract width is a caller bug, not a data condition.
func checkField(n int) {
	if n < 0 || n > MaxFieldBits {
		panic("bits: field width out of range")
	}
}

// lowMask returns a mask of the low n bits, n <= 63.
func lowMask(n int) uint64 {
	return 1<<uint(n) - 1
}
