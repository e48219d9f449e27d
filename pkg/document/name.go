package document

import (
	"fmt"
	"unicode/utf8"

	"github.com/ssargent/yad/pkg/codec"
)

// appendName frames a row or key name onto dst: marker|width, a big-endian
// length field of the minimal width, then the UTF-8 bytes.
func appendName(dst []byte, marker byte, name string) ([]byte, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	width, err := codec.WidthFor(uint64(len(name)))
	if err != nil {
		return nil, err
	}
	dst = append(dst, marker|byte(width))
	dst = codec.AppendLength(dst, uint64(len(name)), width)
	return append(dst, name...), nil
}

// parseName reads a name chunk from the front of b and returns the name and
// the number of bytes consumed.
func parseName(b []byte, marker byte) (string, int, error) {
	if len(b) == 0 {
		return "", 0, fmt.Errorf("%w: %w", ErrMalformedName, codec.ErrNotEnoughBytes)
	}
	if b[0]&0xF0 != marker {
		return "", 0, fmt.Errorf("%w: marker 0x%02X", ErrMalformedName, b[0])
	}

	width, err := codec.ParseByteLength(b[0])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrMalformedName, err)
	}
	if width == codec.LengthZero {
		return "", 0, ErrEmptyName
	}

	w := width.Bytes()
	if len(b) < 1+w {
		return "", 0, fmt.Errorf("%w: %w", ErrMalformedName, codec.ErrNotEnoughBytes)
	}
	n, err := codec.DecodeLength(b[1:1+w], width)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrMalformedName, err)
	}
	if n == 0 {
		return "", 0, ErrEmptyName
	}
	if uint64(len(b)-1-w) < n {
		return "", 0, fmt.Errorf("%w: %w", ErrMalformedName, codec.ErrNotEnoughBytes)
	}

	raw := b[1+w : 1+w+int(n)]
	if !utf8.Valid(raw) {
		return "", 0, fmt.Errorf("%w: %w", ErrMalformedName, codec.ErrInvalidUTF8)
	}
	return string(raw), 1 + w + int(n), nil
}
