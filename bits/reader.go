package bits

// Reader is a read cursor over a byte buffer with bit granularity.
//
// The state is a single bit position: the current byte is pos/8 and the
// next bit inside it is pos%8. Failed reads leave the position untouched,
// so a decode loop can rely on exact bookkeeping after an error.
type Reader struct {
	buf   []byte
	pos   int // next bit to read, 0 <= pos <= len(buf)*8
	order Order
}

// NewReader returns a Reader bound to buf for its whole lifetime.
// The buffer is borrowed, never copied.
func NewReader(buf []byte, order Order) *Reader {
	return &Reader{buf: buf, order: order}
}

// Order returns the significance convention the reader assembles with.
func (r *Reader) Order() Order {
	return r.order
}

// BitPosition returns the number of bits consumed so far.
func (r *Reader) BitPosition() int {
	return r.pos
}

// BitsRemaining returns how many bits are left to read.
func (r *Reader) BitsRemaining() int {
	return len(r.buf)*8 - r.pos
}

// PeekBits returns the next n bits without consuming them, assembled
// according to the reader's Order. n must be between 0 and MaxFieldBits.
// Returns ErrEndOfStream when fewer than n bits remain.
//
// Peeking is the fast path of codebook decoding: peek the table width
// once, look up, then skip exactly the matched code length.
func (r *Reader) PeekBits(n int) (uint64, error) {
	checkField(n)
	if n > r.BitsRemaining() {
		return 0, ErrEndOfStream
	}
	if n == 0 {
		return 0, nil
	}

	i := r.pos >> 3
	off := r.pos & 7

	if r.order == MSBFirst {
		// First partial byte contributes its low 8-off bits, then whole
		// bytes are appended below until n bits are gathered.
		v := uint64(r.buf[i] & (0xff >> uint(off)))
		got := 8 - off
		for got < n {
			i++
			v = v<<8 | uint64(r.buf[i])
			got += 8
		}
		return v >> uint(got-n), nil
	}

	// LSBFirst: the earliest bit lands at bit 0 of the result.
	v := uint64(r.buf[i] >> uint(off))
	got := 8 - off
	for got < n {
		i++
		v |= uint64(r.buf[i]) << uint(got)
		got += 8
	}
	return v & lowMask(n), nil
}

// SkipBits advances the cursor by n bits. Unlike PeekBits it accepts any
// non-negative n. Returns ErrEndOfStream (position unchanged) when fewer
// than n bits remain.
func (r *Reader) SkipBits(n int) error {
	if n < 0 {
		panic("bits: negative skip")
	}
	if n > r.BitsRemaining() {
		return ErrEndOfStream
	}
	r.pos += n
	return nil
}

// ReadBits returns the next n bits and consumes them. The operation is
// atomic: on ErrEndOfStream the position is unchanged.
func (r *Reader) ReadBits(n int) (uint64, error) {
	v, err := r.PeekBits(n)
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

// ReadBool reads a single bit and reports whether it is set.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadBits(1)
	return v != 0, err
}

// AlignToByte advances the cursor to the next byte boundary and returns
// the number of bits skipped. No-op when already aligned.
func (r *Reader) AlignToByte() int {
	skip := (8 - r.pos&7) & 7
	r.pos += skip
	return skip
}
