// Package byteio reads and writes fixed-width numeric values at byte
// offsets inside a caller-supplied buffer.
//
// Every function takes the byte order as an explicit parameter; nothing is
// ever inferred from the host. The functions are pure: they keep no state
// between calls and never touch the buffer outside the requested window.
// Callers that need bit-granular access layer the bits package on top.
package byteio

import (
	"errors"
	"math"
)

// Endianness selects the byte order used to compose and decompose
// multi-byte values.
type Endianness int

const (
	BigEndian Endianness = iota
	LittleEndian
)

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return "unknown"
	}
}

// ErrOutOfRange is returned when a read or write window does not fit
// inside the buffer.
var ErrOutOfRange = errors.New("byteio: access outside buffer bounds")

// checkWidth rejects widths outside the supported 1..8 byte range.
// Passing an unsupported width is a caller bug, not a data error.
func checkWidth(width int) {
	if width < 1 || width > 8 {
		panic("byteio: width must be between 1 and 8 bytes")
	}
}

// ReadUint returns the unsigned integer stored in width bytes at off.
func ReadUint(buf []byte, off, width int, order Endianness) (uint64, error) {
	checkWidth(width)
	if off < 0 || off > len(buf)-width {
		return 0, ErrOutOfRange
	}
	var v uint64
	if order == BigEndian {
		for i := 0; i < width; i++ {
			v = v<<8 | uint64(buf[off+i])
		}
	} else {
		for i := width - 1; i >= 0; i-- {
			v = v<<8 | uint64(buf[off+i])
		}
	}
	return v, nil
}

// WriteUint stores the low width bytes of v at off.
func WriteUint(buf []byte, off, width int, order Endianness, v uint64) error {
	checkWidth(width)
	if off < 0 || off > len(buf)-width {
		return ErrOutOfRange
	}
	if order == BigEndian {
		for i := width - 1; i >= 0; i-- {
			buf[off+i] = byte(v)
			v >>= 8
		}
	} else {
		for i := 0; i < width; i++ {
			buf[off+i] = byte(v)
			v >>= 8
		}
	}
	return nil
}

// ReadInt reads width bytes at off and sign-extends them to an int64.
// Signedness is selected by calling this function instead of ReadUint.
func ReadInt(buf []byte, off, width int, order Endianness) (int64, error) {
	u, err := ReadUint(buf, off, width, order)
	if err != nil {
		return 0, err
	}
	shift := 64 - 8*uint(width)
	return int64(u<<shift) >> shift, nil
}

// WriteInt stores the low width bytes of v's two's complement form at off.
func WriteInt(buf []byte, off, width int, order Endianness, v int64) error {
	return WriteUint(buf, off, width, order, uint64(v))
}

// ReadFloat32 reads a 4-byte IEEE-754 bit pattern at off. The pattern is
// returned verbatim; NaN payloads are not canonicalized.
func ReadFloat32(buf []byte, off int, order Endianness) (float32, error) {
	u, err := ReadUint(buf, off, 4, order)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(u)), nil
}

// WriteFloat32 stores the 4-byte IEEE-754 bit pattern of v at off.
func WriteFloat32(buf []byte, off int, order Endianness, v float32) error {
	return WriteUint(buf, off, 4, order, uint64(math.Float32bits(v)))
}

// ReadFloat64 reads an 8-byte IEEE-754 bit pattern at off.
func ReadFloat64(buf []byte, off int, order Endianness) (float64, error) {
	u, err := ReadUint(buf, off, 8, order)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// WriteFloat64 stores the 8-byte IEEE-754 bit pattern of v at off.
func WriteFloat64(buf []byte, off int, order Endianness, v float64) error {
	return WriteUint(buf, off, 8, order, math.Float64bits(v))
}
