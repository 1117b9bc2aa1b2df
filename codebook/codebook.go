// Package codebook builds canonical prefix-code tables and translates
// between symbols and variable-length bit codes through a bits cursor.
//
// A Codebook is constructed once per stream from an ordered list of
// (symbol, code length) assignments. Construction assigns code values by
// the canonical rule, validates the length distribution, and fills a
// direct lookup table of 2^MaxCodeLength entries, so decoding is a single
// peek plus a table index. A constructed Codebook is immutable and safe to
// share read-only across any number of concurrent cursors.
package codebook

import (
	"errors"
	"fmt"
	mathbits "math/bits"

	"github.com/rust-av/rust-av/bits"
)

var (
	// ErrInvalidLengths is returned when an assignment list cannot
	// describe a codebook: a length outside 1..MaxCodeLength, a duplicate
	// symbol, an empty list, or a bad configuration.
	ErrInvalidLengths = errors.New("codebook: invalid code length distribution")

	// ErrOverSubscribedTree is returned when the lengths describe more
	// codes than a prefix tree of MaxCodeLength depth can hold.
	ErrOverSubscribedTree = errors.New("codebook: length distribution oversubscribes the prefix tree")

	// ErrUnderSubscribedTree is returned for a valid but incomplete tree
	// when Config.AllowIncomplete is false.
	ErrUnderSubscribedTree = errors.New("codebook: length distribution leaves the prefix tree incomplete")

	// ErrInvalidCode is returned by DecodeSymbol when the stream holds a
	// bit pattern with no assigned symbol. The stream is desynchronized
	// or corrupt; the caller decides where to resync.
	ErrInvalidCode = errors.New("codebook: bit pattern matches no registered code")

	// ErrUnknownSymbol is returned by EncodeSymbol for a symbol that was
	// never registered.
	ErrUnknownSymbol = errors.New("codebook: symbol not registered")
)

// MaxTableBits bounds MaxCodeLength; the direct table has 2^MaxCodeLength
// entries, so this caps table memory at 64Ki entries.
const MaxTableBits = 16

// invalidEntry marks table slots not covered by any code.
const invalidEntry = ^uint32(0)

// Assignment pairs a symbol with its code length. Input order is
// significant: canonical construction assigns code values in increasing
// (length, position-in-input) order.
type Assignment[S any] struct {
	Sym    S
	Length uint8
}

// Config parameterizes codebook construction.
type Config struct {
	// MaxCodeLength is the longest admissible code, 1..MaxTableBits.
	// It also sets the lookup table size to 2^MaxCodeLength entries.
	MaxCodeLength uint8

	// Order must match the bit order of the cursors the codebook will
	// drive. In LSBFirst mode code values are stored bit-reversed so the
	// canonical first code bit is the cursor's first transmitted bit.
	Order bits.Order

	// AllowIncomplete accepts undersubscribed trees (valid but not fully
	// populated). The default strict mode rejects them.
	AllowIncomplete bool
}

// codeword is one entry of the encoder map, already in cursor bit order.
type codeword struct {
	value  uint32
	length uint8
}

// Codebook translates symbols to and from canonical prefix codes.
// Immutable after New.
type Codebook[S comparable] struct {
	order   bits.Order
	lutBits int
	// table maps every lutBits-wide prefix to symIdx<<8|length, or to
	// invalidEntry. Entries of short codes are replicated across all
	// don't-care suffix combinations.
	table []uint32
	syms  []S
	enc   map[S]codeword
}

// New builds a codebook from the ordered assignment list.
//
// Canonical assignment: codes are handed out in increasing length, in
// input order within a length class; the first code of each length is the
// previous length's next free code shifted left by one. The distribution
// must satisfy the Kraft inequality, so the table can never hold two
// conflicting prefixes. All failure modes surface here, never at decode
// time.
func New[S comparable](assignments []Assignment[S], cfg Config) (*Codebook[S], error) {
	if cfg.MaxCodeLength < 1 || cfg.MaxCodeLength > MaxTableBits {
		return nil, fmt.Errorf("%w: max code length %d outside 1..%d",
			ErrInvalidLengths, cfg.MaxCodeLength, MaxTableBits)
	}
	if len(assignments) == 0 {
		return nil, fmt.Errorf("%w: empty assignment list", ErrInvalidLengths)
	}
	maxLen := int(cfg.MaxCodeLength)

	counts := make([]uint32, maxLen+1)
	for _, a := range assignments {
		if a.Length < 1 || int(a.Length) > maxLen {
			return nil, fmt.Errorf("%w: code length %d outside 1..%d",
				ErrInvalidLengths, a.Length, maxLen)
		}
		counts[a.Length]++
	}

	// Kraft sum, scaled by 2^maxLen to stay integral.
	var kraft uint64
	for l := 1; l <= maxLen; l++ {
		kraft += uint64(counts[l]) << uint(maxLen-l)
	}
	full := uint64(1) << uint(maxLen)
	if kraft > full {
		return nil, ErrOverSubscribedTree
	}
	if kraft < full && !cfg.AllowIncomplete {
		return nil, ErrUnderSubscribedTree
	}

	// First canonical code value of each length class.
	next := make([]uint32, maxLen+1)
	code := uint32(0)
	for l := 1; l <= maxLen; l++ {
		code = (code + counts[l-1]) << 1
		next[l] = code
	}

	cb := &Codebook[S]{
		order:   cfg.Order,
		lutBits: maxLen,
		table:   make([]uint32, 1<<uint(maxLen)),
		syms:    make([]S, 0, len(assignments)),
		enc:     make(map[S]codeword, len(assignments)),
	}
	for i := range cb.table {
		cb.table[i] = invalidEntry
	}

	for _, a := range assignments {
		if _, dup := cb.enc[a.Sym]; dup {
			return nil, fmt.Errorf("%w: symbol %v registered twice", ErrInvalidLengths, a.Sym)
		}
		length := int(a.Length)
		c := next[length]
		next[length]++

		stored := c
		if cfg.Order == bits.LSBFirst {
			// DEFLATE convention: reverse so bit 0 goes out first.
			stored = mathbits.Reverse32(c) >> uint(32-length)
		}

		symIdx := uint32(len(cb.syms))
		cb.syms = append(cb.syms, a.Sym)
		cb.enc[a.Sym] = codeword{value: stored, length: a.Length}
		cb.fill(stored, length, symIdx)
	}
	return cb, nil
}

// fill replicates one code's entry across every table index whose
// significant bits equal the code, covering the 2^(lutBits-length)
// don't-care suffix combinations.
func (cb *Codebook[S]) fill(code uint32, length int, symIdx uint32) {
	entry := symIdx<<8 | uint32(length)
	slack := uint(cb.lutBits - length)
	if cb.order == bits.MSBFirst {
		base := code << slack
		for j := uint32(0); j < 1<<slack; j++ {
			cb.table[base+j] = entry
		}
	} else {
		for j := uint32(0); j < 1<<slack; j++ {
			cb.table[code|j<<uint(length)] = entry
		}
	}
}

// DecodeSymbol reads one variable-length code from the cursor and returns
// its symbol. The cursor advances by exactly the matched code length.
//
// The fast path is a single peek of MaxCodeLength bits and one table
// index. Near the end of the stream fewer real bits are peeked and the
// missing low-significance positions are treated as don't-care: any valid
// code fits in the remaining real bits of a well-formed stream, and a
// match longer than what remains is reported as ErrInvalidCode.
func (cb *Codebook[S]) DecodeSymbol(r *bits.Reader) (S, error) {
	var zero S
	remaining := r.BitsRemaining()
	if remaining == 0 {
		return zero, bits.ErrEndOfStream
	}
	n := cb.lutBits
	if remaining < n {
		n = remaining
	}
	v, err := r.PeekBits(n)
	if err != nil {
		return zero, err
	}
	idx := v
	if cb.order == bits.MSBFirst {
		idx <<= uint(cb.lutBits - n)
	}
	e := cb.table[idx]
	if e == invalidEntry {
		return zero, ErrInvalidCode
	}
	length := int(e & 0xff)
	if length > remaining {
		return zero, ErrInvalidCode
	}
	if err := r.SkipBits(length); err != nil {
		return zero, err
	}
	return cb.syms[e>>8], nil
}

// EncodeSymbol writes the symbol's code to the cursor. Fails with
// ErrUnknownSymbol for unregistered symbols and passes through
// bits.ErrBufferFull from the writer.
func (cb *Codebook[S]) EncodeSymbol(w *bits.Writer, sym S) error {
	c, ok := cb.enc[sym]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownSymbol, sym)
	}
	return w.WriteBits(uint64(c.value), int(c.length))
}

// CodeFor returns the symbol's code value and length in cursor bit order
// (LSBFirst codebooks report the bit-reversed value that actually goes on
// the wire). ok is false for unregistered symbols.
func (cb *Codebook[S]) CodeFor(sym S) (code uint32, length uint8, ok bool) {
	c, ok := cb.enc[sym]
	return c.value, c.length, ok
}

// Len returns the number of registered symbols.
func (cb *Codebook[S]) Len() int {
	return len(cb.syms)
}

// MaxCodeLength returns the table width chosen at construction.
func (cb *Codebook[S]) MaxCodeLength() uint8 {
	return uint8(cb.lutBits)
}

// Order returns the bit order the codebook was built for.
func (cb *Codebook[S]) Order() bits.Order {
	return cb.order
}
