package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// WidthFor returns the smallest width able to represent n. A count of zero
// has no representation and fails with ErrEmptyCollection.
func WidthFor(n uint64) (ByteLength, error) {
	switch {
	case n == 0:
		return LengthZero, ErrEmptyCollection
	case n <= math.MaxUint8:
		return LengthOne, nil
	case n <= math.MaxUint16:
		return LengthTwo, nil
	case n <= math.MaxUint32:
		return LengthFour, nil
	}
	return LengthEight, nil
}

// AppendLength appends n as a big-endian fixed-width count of the given
// width. The caller is responsible for having chosen a width that fits n.
func AppendLength(dst []byte, n uint64, width ByteLength) []byte {
	switch width {
	case LengthOne:
		return append(dst, byte(n))
	case LengthTwo:
		return binary.BigEndian.AppendUint16(dst, uint16(n))
	case LengthFour:
		return binary.BigEndian.AppendUint32(dst, uint32(n))
	case LengthEight:
		return binary.BigEndian.AppendUint64(dst, n)
	}
	return dst
}

// DecodeLength reads a big-endian count of the given width from the front of
// b. Counts that cannot be indexed on this platform fail with
// ErrLengthOverflow.
func DecodeLength(b []byte, width ByteLength) (uint64, error) {
	if width == LengthZero {
		return 0, ErrEmptyCollection
	}

	w := width.Bytes()
	if len(b) < w {
		return 0, fmt.Errorf("length field: %w", ErrNotEnoughBytes)
	}

	var n uint64
	switch width {
	case LengthOne:
		n = uint64(b[0])
	case LengthTwo:
		n = uint64(binary.BigEndian.Uint16(b))
	case LengthFour:
		n = uint64(binary.BigEndian.Uint32(b))
	case LengthEight:
		n = binary.BigEndian.Uint64(b)
	}

	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: %d", ErrLengthOverflow, n)
	}

	return n, nil
}
