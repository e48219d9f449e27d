package codec

import "fmt"

// Type is the high nibble of a value's header byte. It defines how the bytes
// that follow the header are interpreted.
//
// TypeFalse and TypeTrue are full-byte discriminants: a boolean is encoded as
// a single byte (0x80 or 0x81) whose low nibble is part of the discriminant,
// not a length field.
type Type byte

const (
	TypeUint   Type = 0x10
	TypeInt    Type = 0x20
	TypeFloat  Type = 0x30
	TypeString Type = 0x40
	TypeArray  Type = 0x50
	TypeFalse  Type = 0x80
	TypeTrue   Type = 0x81
)

// ParseType extracts the type from a header byte. The boolean full-byte
// discriminants are checked first since they overlap the 0x80 nibble range;
// any other 0x8X byte is rejected.
func ParseType(b byte) (Type, error) {
	switch b {
	case byte(TypeFalse):
		return TypeFalse, nil
	case byte(TypeTrue):
		return TypeTrue, nil
	}

	switch t := Type(b & 0xF0); t {
	case TypeUint, TypeInt, TypeFloat, TypeString, TypeArray:
		return t, nil
	}

	return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidType, b)
}

// IsBool reports whether t is one of the boolean discriminants.
func (t Type) IsBool() bool {
	return t == TypeTrue || t == TypeFalse
}

// IsNumeric reports whether t carries a fixed-width numeric payload.
func (t Type) IsNumeric() bool {
	return t == TypeUint || t == TypeInt || t == TypeFloat
}

func (t Type) String() string {
	switch t {
	case TypeUint:
		return "uint"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeFalse, TypeTrue:
		return "bool"
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(t))
}

// ByteLength is the low nibble of a value's header byte. The nibble is an
// enum ordinal, not the literal width: LengthFour (nibble 0x03) means a
// four-byte field and LengthEight (nibble 0x04) an eight-byte field.
//
// For numeric types the width is the size of the payload itself. For strings
// and arrays it is the size of the count field that precedes the payload;
// LengthZero is reserved there and always invalid, since empty collections
// have no representation.
type ByteLength byte

const (
	LengthZero  ByteLength = 0x00
	LengthOne   ByteLength = 0x01
	LengthTwo   ByteLength = 0x02
	LengthFour  ByteLength = 0x03
	LengthEight ByteLength = 0x04
)

// ParseByteLength extracts the length width from a header byte.
func ParseByteLength(b byte) (ByteLength, error) {
	switch bl := ByteLength(b & 0x0F); bl {
	case LengthZero, LengthOne, LengthTwo, LengthFour, LengthEight:
		return bl, nil
	}
	return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidLength, b)
}

// Bytes returns the number of bytes the width stands for.
func (l ByteLength) Bytes() int {
	switch l {
	case LengthOne:
		return 1
	case LengthTwo:
		return 2
	case LengthFour:
		return 4
	case LengthEight:
		return 8
	}
	return 0
}

func (l ByteLength) String() string {
	switch l {
	case LengthZero:
		return "zero"
	case LengthOne:
		return "one"
	case LengthTwo:
		return "two"
	case LengthFour:
		return "four"
	case LengthEight:
		return "eight"
	}
	return fmt.Sprintf("unknown(0x%02X)", byte(l))
}
