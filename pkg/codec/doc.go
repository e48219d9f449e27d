// Package codec implements the YAD value codec: the recursive engine that
// turns typed values into a self-describing, type+length-tagged byte stream
// and back. This is the foundation the document framing layer builds on.
//
// # Value Format
//
// Every value starts with a single header byte packing two nibbles:
//
//	[type nibble | length nibble]
//
// Type nibbles: Uint=0x10, Int=0x20, Float=0x30, String=0x40, Array=0x50.
// Booleans are full-byte discriminants: 0x80 is false and 0x81 is true, with
// no length field and no payload.
//
// Length nibbles are enum ordinals, not literal widths: 0x01, 0x02, 0x03 and
// 0x04 stand for 1, 2, 4 and 8 bytes respectively. 0x00 means "no length
// field" and is only ever valid for booleans; a string or array declaring a
// zero width (or a zero count) is rejected, since empty collections have no
// representation in the format.
//
// The payload follows the header:
//
//	Uint/Int/Float  header, then width big-endian bytes
//	Bool            1 byte total (0x80 or 0x81)
//	String          header, width-byte big-endian byte length, UTF-8 bytes
//	Array           header, width-byte big-endian count, then each element's
//	                complete encoding concatenated in order
//
// Integers are big-endian two's complement. Floats are IEEE 754 bit
// patterns; the 1-byte float is an E4M3 minifloat and the 2-byte float is
// half precision, both carried as raw bits end to end so a round trip is
// always bit-exact. The width chosen for a string's byte length or an
// array's count is always the smallest that fits.
//
// # Usage
//
//	v, err := codec.String("Johan")
//	if err != nil {
//	    return err
//	}
//	encoded := v.Encode() // [0x41, 0x05, 'J', 'o', 'h', 'a', 'n']
//
//	decoded, n, err := codec.Decode(encoded)
//	if err != nil {
//	    return err
//	}
//	// n == len(encoded), decoded.Equal(v) == true
//
// # Error Handling
//
// Decoding never reads past the end of the supplied buffer: every
// length-prefixed read is bounds-checked first and fails with
// ErrNotEnoughBytes otherwise. Unknown headers fail with ErrInvalidType or
// ErrInvalidLength, bad string payloads with ErrInvalidUTF8, zero-length
// collections with ErrEmptyCollection, and counts beyond the platform's
// addressable range with ErrLengthOverflow. There is no partial-success
// mode; a value decodes completely or the call fails as a whole.
//
// # Thread Safety
//
// Values are immutable after construction and safe to share between
// goroutines. Encode and decode are pure functions with no shared state;
// independent buffers may be processed fully in parallel.
package codec
