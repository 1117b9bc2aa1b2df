package byteio

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadUintKnownVectors pins the byte order semantics to fixed vectors
// so a regression cannot hide behind a symmetric round-trip bug.
func TestReadUintKnownVectors(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	tests := []struct {
		name  string
		off   int
		width int
		order Endianness
		want  uint64
	}{
		{"u16 BE", 0, 2, BigEndian, 0x0102},
		{"u16 LE", 0, 2, LittleEndian, 0x0201},
		{"u32 BE", 0, 4, BigEndian, 0x01020304},
		{"u32 LE", 0, 4, LittleEndian, 0x04030201},
		{"u64 BE", 0, 8, BigEndian, 0x0102030405060708},
		{"u64 LE", 0, 8, LittleEndian, 0x0807060504030201},
		{"u8 mid-buffer", 3, 1, BigEndian, 0x04},
		{"u24 BE offset", 2, 3, BigEndian, 0x030405},
		{"u24 LE offset", 2, 3, LittleEndian, 0x050403},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, err := ReadUint(buf, tc.off, tc.width, tc.order)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

// TestUintRoundTrip writes and re-reads random values for every width and
// both byte orders.
func TestUintRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for _, order := range []Endianness{BigEndian, LittleEndian} {
		for width := 1; width <= 8; width++ {
			t.Run(fmt.Sprintf("%s width=%d", order, width), func(t *testing.T) {
				buf := make([]byte, 16)
				for i := 0; i < 100; i++ {
					v := r.Uint64()
					if width < 8 {
						v &= 1<<uint(8*width) - 1
					}
					off := r.Intn(16 - width + 1)
					require.NoError(t, WriteUint(buf, off, width, order, v))
					got, err := ReadUint(buf, off, width, order)
					require.NoError(t, err)
					require.Equal(t, v, got)
				}
			})
		}
	}
}

// TestIntSignExtension verifies that ReadInt extends the sign of the
// stored width, not of the full 64-bit word.
func TestIntSignExtension(t *testing.T) {
	buf := make([]byte, 8)

	tests := []struct {
		name  string
		width int
		v     int64
	}{
		{"minus one 1 byte", 1, -1},
		{"minus one 4 bytes", 4, -1},
		{"min i16", 2, math.MinInt16},
		{"max i16", 2, math.MaxInt16},
		{"negative i24", 3, -(1 << 23)},
		{"positive i24", 3, 1<<23 - 1},
		{"min i64", 8, math.MinInt64},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, order := range []Endianness{BigEndian, LittleEndian} {
				require.NoError(t, WriteInt(buf, 0, tc.width, order, tc.v))
				got, err := ReadInt(buf, 0, tc.width, order)
				require.NoError(t, err)
				assert.Equal(t, tc.v, got, "order %s", order)
			}
		})
	}
}

// TestFloatBitPatterns checks that float round-trips preserve the exact
// IEEE-754 bit pattern, including NaN payloads.
func TestFloatBitPatterns(t *testing.T) {
	buf := make([]byte, 8)

	t.Run("float64", func(t *testing.T) {
		for _, order := range []Endianness{BigEndian, LittleEndian} {
			for _, v := range []float64{0, 1.5, -math.Pi, math.Inf(1), math.SmallestNonzeroFloat64} {
				require.NoError(t, WriteFloat64(buf, 0, order, v))
				got, err := ReadFloat64(buf, 0, order)
				require.NoError(t, err)
				assert.Equal(t, math.Float64bits(v), math.Float64bits(got))
			}
		}
	})

	t.Run("float32", func(t *testing.T) {
		for _, order := range []Endianness{BigEndian, LittleEndian} {
			for _, v := range []float32{0, -2.25, float32(math.Inf(-1))} {
				require.NoError(t, WriteFloat32(buf, 0, order, v))
				got, err := ReadFloat32(buf, 0, order)
				require.NoError(t, err)
				assert.Equal(t, math.Float32bits(v), math.Float32bits(got))
			}
		}
	})

	t.Run("nan payload survives", func(t *testing.T) {
		// A NaN with a non-default payload must come back bit-exact.
		nan := math.Float64frombits(0x7FF0_0000_0000_BEEF)
		require.NoError(t, WriteFloat64(buf, 0, BigEndian, nan))
		got, err := ReadFloat64(buf, 0, BigEndian)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x7FF0_0000_0000_BEEF), math.Float64bits(got))
	})
}

// TestOutOfRange checks the boundary: a window ending exactly at the
// buffer end succeeds, one byte further fails and writes nothing.
func TestOutOfRange(t *testing.T) {
	buf := make([]byte, 4)

	_, err := ReadUint(buf, 0, 4, BigEndian)
	assert.NoError(t, err)

	_, err = ReadUint(buf, 1, 4, BigEndian)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = ReadUint(buf, -1, 2, BigEndian)
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = WriteUint(buf, 3, 2, LittleEndian, 0xFFFF)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, []byte{0, 0, 0, 0}, buf, "failed write must not touch the buffer")

	_, err = ReadFloat64(buf, 0, BigEndian)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// TestWidthContract verifies that out-of-contract widths panic instead of
// being reported as data errors.
func TestWidthContract(t *testing.T) {
	buf := make([]byte, 16)
	assert.Panics(t, func() { _, _ = ReadUint(buf, 0, 0, BigEndian) })
	assert.Panics(t, func() { _, _ = ReadUint(buf, 0, 9, BigEndian) })
	assert.Panics(t, func() { _ = WriteUint(buf, 0, -1, LittleEndian, 0) })
}
