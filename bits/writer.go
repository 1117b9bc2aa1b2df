package bits

// Writer is a write cursor over a byte buffer with bit granularity.
//
// The buffer is caller-owned and fixes the capacity: a write that does not
// fit fails with ErrBufferFull instead of growing or truncating. Each byte
// is zeroed the first time the cursor touches it and new bits are OR-merged
// in, so trailing pad bits in the final byte always read back as zero.
type Writer struct {
	buf   []byte
	pos   int // next bit to write, 0 <= pos <= len(buf)*8
	order Order
}

// NewWriter returns a Writer bound to buf. len(buf) is the capacity in
// bytes; the previous contents of the touched bytes are discarded.
func NewWriter(buf []byte, order Order) *Writer {
	return &Writer{buf: buf, order: order}
}

// Order returns the significance convention the writer packs with.
func (w *Writer) Order() Order {
	return w.order
}

// BitPosition returns the number of bits written so far.
func (w *Writer) BitPosition() int {
	return w.pos
}

// BitsRemaining returns how many bits of capacity are left.
func (w *Writer) BitsRemaining() int {
	return len(w.buf)*8 - w.pos
}

// WriteBits appends the low n bits of v at the current position,
// interpreted per the writer's Order. n must be between 0 and
// MaxFieldBits. The operation is atomic: on ErrBufferFull nothing is
// written and the position is unchanged.
func (w *Writer) WriteBits(v uint64, n int) error {
	checkField(n)
	if n > w.BitsRemaining() {
		return ErrBufferFull
	}
	v &= lowMask(n)

	for n > 0 {
		i := w.pos >> 3
		off := w.pos & 7
		if off == 0 {
			w.buf[i] = 0
		}
		space := 8 - off
		take := space
		if n < space {
			take = n
		}
		if w.order == MSBFirst {
			// The value's top bits go out first, placed just below the
			// bits already occupying the byte.
			chunk := v >> uint(n-take) & lowMask(take)
			w.buf[i] |= byte(chunk << uint(space-take))
		} else {
			chunk := v & lowMask(take)
			v >>= uint(take)
			w.buf[i] |= byte(chunk) << uint(off)
		}
		w.pos += take
		n -= take
	}
	return nil
}

// WriteBool appends a single bit.
func (w *Writer) WriteBool(b bool) error {
	var v uint64
	if b {
		v = 1
	}
	return w.WriteBits(v, 1)
}

// AlignToByte pads with zero bits up to the next byte boundary and returns
// the number of pad bits. No-op when already aligned. Padding never fails:
// an unaligned position means the final byte is already allocated.
func (w *Writer) AlignToByte() int {
	pad := (8 - w.pos&7) & 7
	w.pos += pad // pad bits are already zero, the byte was cleared on first touch
	return pad
}

// Finish byte-aligns the stream and returns the number of whole bytes
// written plus the number of zero pad bits used in the final byte, so the
// caller can size the output exactly.
func (w *Writer) Finish() (bytes int, padBits int) {
	padBits = w.AlignToByte()
	return w.pos / 8, padBits
}

// Bytes returns the written prefix of the underlying buffer, including a
// final partial byte if the position is unaligned.
func (w *Writer) Bytes() []byte {
	return w.buf[:(w.pos+7)/8]
}
