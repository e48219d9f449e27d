package codec

import "errors"

// Decode errors. Every failure mode of the value codec maps to exactly one of
// these sentinels; callers match with errors.Is.
var (
	// ErrNotEnoughBytes indicates the buffer is shorter than a declared or
	// required field needs. This is the codec's defense against truncated
	// or malicious input: no read ever goes past the supplied buffer.
	ErrNotEnoughBytes = errors.New("not enough bytes")

	// ErrInvalidType indicates a header byte whose type nibble matches no
	// known encoding.
	ErrInvalidType = errors.New("invalid type header")

	// ErrInvalidLength indicates a header byte whose length nibble matches
	// no known width, or a width that is not valid for the type.
	ErrInvalidLength = errors.New("invalid length header")

	// ErrInvalidUTF8 indicates a string payload that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("malformed utf-8")

	// ErrEmptyCollection indicates a string or array of length zero. The
	// format has no representation for empty collections; they are rejected
	// on both encode and decode.
	ErrEmptyCollection = errors.New("zero-length collection")

	// ErrLengthOverflow indicates a decoded 64-bit count that cannot be
	// indexed on this platform.
	ErrLengthOverflow = errors.New("length exceeds addressable range")

	// ErrKindMismatch is returned by value accessors when the value holds a
	// different type or width than the accessor expects.
	ErrKindMismatch = errors.New("value kind mismatch")
)
