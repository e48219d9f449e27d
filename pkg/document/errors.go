package document

import "errors"

var (
	// ErrEmptyName indicates a row or key name with no characters. Names
	// must contain at least one character.
	ErrEmptyName = errors.New("name must contain at least one character")

	// ErrMalformedKey indicates a buffer that cannot be decoded as a valid
	// key: a missing start or end sentinel, a bad name chunk, or anything
	// other than exactly one value between the name and the end sentinel.
	ErrMalformedKey = errors.New("buffer cannot be decoded as a valid key")

	// ErrMalformedRow indicates a buffer that cannot be decoded as a valid
	// row.
	ErrMalformedRow = errors.New("buffer cannot be decoded as a valid row")

	// ErrMalformedName indicates a name chunk whose marker nibble or length
	// framing is wrong.
	ErrMalformedName = errors.New("buffer cannot be decoded as a valid name")

	// ErrMalformedVersion indicates a document whose leading five bytes are
	// absent or do not form a version stamp.
	ErrMalformedVersion = errors.New("malformed version header")
)
