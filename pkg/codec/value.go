package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Value is one instance of the format's type system: an unsigned or signed
// integer, a float (8, 16, 32 or 64 bit), a UTF-8 string, a boolean, or an
// ordered array of values.
//
// A Value is immutable once constructed. Numeric payloads are held as raw
// big-endian bit patterns so that a decode of an encode is bit-exact; the 8
// and 16 bit float micro-formats in particular are never widened through a
// larger float on the wire path.
type Value struct {
	kind  Type
	width ByteLength
	bits  uint64 // numeric payload, low width.Bytes() bytes significant
	str   string
	elems []Value
}

// Uint8 builds a one-byte unsigned integer value.
func Uint8(v uint8) Value {
	return Value{kind: TypeUint, width: LengthOne, bits: uint64(v)}
}

// Uint16 builds a two-byte unsigned integer value.
func Uint16(v uint16) Value {
	return Value{kind: TypeUint, width: LengthTwo, bits: uint64(v)}
}

// Uint32 builds a four-byte unsigned integer value.
func Uint32(v uint32) Value {
	return Value{kind: TypeUint, width: LengthFour, bits: uint64(v)}
}

// Uint64 builds an eight-byte unsigned integer value.
func Uint64(v uint64) Value {
	return Value{kind: TypeUint, width: LengthEight, bits: v}
}

// Int8 builds a one-byte two's-complement integer value.
func Int8(v int8) Value {
	return Value{kind: TypeInt, width: LengthOne, bits: uint64(uint8(v))}
}

// Int16 builds a two-byte two's-complement integer value.
func Int16(v int16) Value {
	return Value{kind: TypeInt, width: LengthTwo, bits: uint64(uint16(v))}
}

// Int32 builds a four-byte two's-complement integer value.
func Int32(v int32) Value {
	return Value{kind: TypeInt, width: LengthFour, bits: uint64(uint32(v))}
}

// Int64 builds an eight-byte two's-complement integer value.
func Int64(v int64) Value {
	return Value{kind: TypeInt, width: LengthEight, bits: uint64(v)}
}

// Float8 builds an 8-bit minifloat value from its raw E4M3 bit pattern.
// Use Float8FromFloat64 to obtain a bit pattern from a regular float.
func Float8(bits uint8) Value {
	return Value{kind: TypeFloat, width: LengthOne, bits: uint64(bits)}
}

// Float16 builds a half-precision float value from its raw IEEE 754
// binary16 bit pattern. Use Float16FromFloat64 to obtain a bit pattern from
// a regular float.
func Float16(bits uint16) Value {
	return Value{kind: TypeFloat, width: LengthTwo, bits: uint64(bits)}
}

// Float32 builds a single-precision float value.
func Float32(v float32) Value {
	return Value{kind: TypeFloat, width: LengthFour, bits: uint64(math.Float32bits(v))}
}

// Float64 builds a double-precision float value.
func Float64(v float64) Value {
	return Value{kind: TypeFloat, width: LengthEight, bits: math.Float64bits(v)}
}

// Bool builds a boolean value. Booleans carry no payload; true and false are
// distinct type discriminants.
func Bool(v bool) Value {
	if v {
		return Value{kind: TypeTrue, width: LengthZero}
	}
	return Value{kind: TypeFalse, width: LengthZero}
}

// String builds a string value. The empty string has no representation in
// the format and fails with ErrEmptyCollection.
func String(s string) (Value, error) {
	width, err := WidthFor(uint64(len(s)))
	if err != nil {
		return Value{}, fmt.Errorf("string: %w", err)
	}
	if !utf8.ValidString(s) {
		return Value{}, fmt.Errorf("string: %w", ErrInvalidUTF8)
	}
	return Value{kind: TypeString, width: width, str: s}, nil
}

// Array builds an array value from the given elements, preserving their
// order. Empty arrays have no representation and fail with
// ErrEmptyCollection.
func Array(elems ...Value) (Value, error) {
	width, err := WidthFor(uint64(len(elems)))
	if err != nil {
		return Value{}, fmt.Errorf("array: %w", err)
	}
	owned := make([]Value, len(elems))
	copy(owned, elems)
	return Value{kind: TypeArray, width: width, elems: owned}, nil
}

// Kind returns the value's type discriminant.
func (v Value) Kind() Type { return v.kind }

// Width returns the value's byte-length nibble: the payload width for
// numeric values, the count-field width for strings and arrays, and
// LengthZero for booleans.
func (v Value) Width() ByteLength { return v.width }

func (v Value) numeric(kind Type, width ByteLength, what string) (uint64, error) {
	if v.kind != kind || v.width != width {
		return 0, fmt.Errorf("%w: want %s, have %s/%s", ErrKindMismatch, what, v.kind, v.width)
	}
	return v.bits, nil
}

// Uint8 returns the value as a uint8, failing unless the value is a one-byte
// unsigned integer. The remaining numeric accessors follow the same pattern
// for their kind and width.
func (v Value) Uint8() (uint8, error) {
	bits, err := v.numeric(TypeUint, LengthOne, "uint8")
	return uint8(bits), err
}

func (v Value) Uint16() (uint16, error) {
	bits, err := v.numeric(TypeUint, LengthTwo, "uint16")
	return uint16(bits), err
}

func (v Value) Uint32() (uint32, error) {
	bits, err := v.numeric(TypeUint, LengthFour, "uint32")
	return uint32(bits), err
}

func (v Value) Uint64() (uint64, error) {
	return v.numeric(TypeUint, LengthEight, "uint64")
}

func (v Value) Int8() (int8, error) {
	bits, err := v.numeric(TypeInt, LengthOne, "int8")
	return int8(uint8(bits)), err
}

func (v Value) Int16() (int16, error) {
	bits, err := v.numeric(TypeInt, LengthTwo, "int16")
	return int16(uint16(bits)), err
}

func (v Value) Int32() (int32, error) {
	bits, err := v.numeric(TypeInt, LengthFour, "int32")
	return int32(uint32(bits)), err
}

func (v Value) Int64() (int64, error) {
	bits, err := v.numeric(TypeInt, LengthEight, "int64")
	return int64(bits), err
}

// Float8 returns the raw E4M3 bit pattern of an 8-bit float value.
func (v Value) Float8() (uint8, error) {
	bits, err := v.numeric(TypeFloat, LengthOne, "float8")
	return uint8(bits), err
}

// Float16 returns the raw binary16 bit pattern of a half-precision value.
func (v Value) Float16() (uint16, error) {
	bits, err := v.numeric(TypeFloat, LengthTwo, "float16")
	return uint16(bits), err
}

func (v Value) Float32() (float32, error) {
	bits, err := v.numeric(TypeFloat, LengthFour, "float32")
	return math.Float32frombits(uint32(bits)), err
}

func (v Value) Float64() (float64, error) {
	bits, err := v.numeric(TypeFloat, LengthEight, "float64")
	return math.Float64frombits(bits), err
}

// Bool returns the value as a boolean.
func (v Value) Bool() (bool, error) {
	if !v.kind.IsBool() {
		return false, fmt.Errorf("%w: want bool, have %s", ErrKindMismatch, v.kind)
	}
	return v.kind == TypeTrue, nil
}

// Str returns the value's string payload.
func (v Value) Str() (string, error) {
	if v.kind != TypeString {
		return "", fmt.Errorf("%w: want string, have %s", ErrKindMismatch, v.kind)
	}
	return v.str, nil
}

// Array returns the value's elements in order. The returned slice is shared;
// callers must not modify it.
func (v Value) Array() ([]Value, error) {
	if v.kind != TypeArray {
		return nil, fmt.Errorf("%w: want array, have %s", ErrKindMismatch, v.kind)
	}
	return v.elems, nil
}

// Equal reports whether two values have the same type, width and payload.
// Array elements are compared in order. Float values compare by bit pattern,
// so NaN equals NaN of the same encoding.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.width != o.width {
		return false
	}
	switch v.kind {
	case TypeString:
		return v.str == o.str
	case TypeArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return v.bits == o.bits
}

// String renders a human-readable form of the value, e.g. "uint8(42)" or
// "string(\"Johan\")". It is a display helper, not the wire encoding.
func (v Value) String() string {
	switch v.kind {
	case TypeUint:
		return fmt.Sprintf("uint%d(%d)", v.width.Bytes()*8, v.bits)
	case TypeInt:
		var n int64
		switch v.width {
		case LengthOne:
			n = int64(int8(uint8(v.bits)))
		case LengthTwo:
			n = int64(int16(uint16(v.bits)))
		case LengthFour:
			n = int64(int32(uint32(v.bits)))
		default:
			n = int64(v.bits)
		}
		return fmt.Sprintf("int%d(%d)", v.width.Bytes()*8, n)
	case TypeFloat:
		var f float64
		switch v.width {
		case LengthOne:
			f = Float8ToFloat64(uint8(v.bits))
		case LengthTwo:
			f = Float16ToFloat64(uint16(v.bits))
		case LengthFour:
			f = float64(math.Float32frombits(uint32(v.bits)))
		default:
			f = math.Float64frombits(v.bits)
		}
		return fmt.Sprintf("float%d(%g)", v.width.Bytes()*8, f)
	case TypeString:
		return "string(" + strconv.Quote(v.str) + ")"
	case TypeArray:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			parts[i] = e.String()
		}
		return "array[" + strings.Join(parts, ", ") + "]"
	case TypeTrue:
		return "bool(true)"
	case TypeFalse:
		return "bool(false)"
	}
	return "invalid"
}

// EncodedSize returns the number of bytes Encode will produce.
func (v Value) EncodedSize() int {
	switch v.kind {
	case TypeTrue, TypeFalse:
		return 1
	case TypeUint, TypeInt, TypeFloat:
		return 1 + v.width.Bytes()
	case TypeString:
		return 1 + v.width.Bytes() + len(v.str)
	case TypeArray:
		n := 1 + v.width.Bytes()
		for _, e := range v.elems {
			n += e.EncodedSize()
		}
		return n
	}
	return 0
}

// Encode serializes the value into its complete wire form: header byte,
// optional length field, payload.
func (v Value) Encode() []byte {
	return v.Append(make([]byte, 0, v.EncodedSize()))
}

// Append appends the value's wire form to dst and returns the extended
// slice.
func (v Value) Append(dst []byte) []byte {
	switch v.kind {
	case TypeTrue, TypeFalse:
		return append(dst, byte(v.kind))
	case TypeUint, TypeInt, TypeFloat:
		dst = append(dst, byte(v.kind)|byte(v.width))
		for i := v.width.Bytes() - 1; i >= 0; i-- {
			dst = append(dst, byte(v.bits>>(8*i)))
		}
		return dst
	case TypeString:
		dst = append(dst, byte(TypeString)|byte(v.width))
		dst = AppendLength(dst, uint64(len(v.str)), v.width)
		return append(dst, v.str...)
	case TypeArray:
		dst = append(dst, byte(TypeArray)|byte(v.width))
		dst = AppendLength(dst, uint64(len(v.elems)), v.width)
		for _, e := range v.elems {
			dst = e.Append(dst)
		}
		return dst
	}
	return dst
}

// Decode parses a single value from the front of b, returning the value and
// the number of bytes it occupied. Decoding is a pure recursive descent:
// nothing beyond the consumed prefix is read, and every length-prefixed read
// is bounds-checked before it happens.
//
// The decoded value preserves the width declared on the wire even when a
// smaller width would have sufficed, so re-encoding a decoded value always
// reproduces the consumed bytes exactly.
func Decode(b []byte) (Value, int, error) {
	if len(b) == 0 {
		return Value{}, 0, fmt.Errorf("value header: %w", ErrNotEnoughBytes)
	}

	t, err := ParseType(b[0])
	if err != nil {
		return Value{}, 0, err
	}
	if t.IsBool() {
		return Value{kind: t, width: LengthZero}, 1, nil
	}

	width, err := ParseByteLength(b[0])
	if err != nil {
		return Value{}, 0, err
	}

	switch t {
	case TypeUint, TypeInt, TypeFloat:
		if width == LengthZero {
			return Value{}, 0, fmt.Errorf("%w: zero-width %s", ErrInvalidLength, t)
		}
		w := width.Bytes()
		if len(b) < 1+w {
			return Value{}, 0, fmt.Errorf("%s payload: %w", t, ErrNotEnoughBytes)
		}
		var bits uint64
		for _, p := range b[1 : 1+w] {
			bits = bits<<8 | uint64(p)
		}
		return Value{kind: t, width: width, bits: bits}, 1 + w, nil

	case TypeString:
		payload, total, err := collectionPayload(b, width, "string")
		if err != nil {
			return Value{}, 0, err
		}
		if !utf8.Valid(payload) {
			return Value{}, 0, fmt.Errorf("string payload: %w", ErrInvalidUTF8)
		}
		return Value{kind: TypeString, width: width, str: string(payload)}, total, nil

	case TypeArray:
		count, header, err := collectionCount(b, width, "array")
		if err != nil {
			return Value{}, 0, err
		}
		elems := make([]Value, 0, min(int(count), 64))
		pos := header
		for i := uint64(0); i < count; i++ {
			elem, used, err := Decode(b[pos:])
			if err != nil {
				return Value{}, 0, fmt.Errorf("array element %d: %w", i, err)
			}
			elems = append(elems, elem)
			pos += used
		}
		return Value{kind: TypeArray, width: width, elems: elems}, pos, nil
	}

	return Value{}, 0, fmt.Errorf("%w: 0x%02X", ErrInvalidType, b[0])
}

// Next returns the total encoded size of the first value in b without
// materializing it. It performs the same validation as Decode, so the two
// accept and reject exactly the same inputs.
func Next(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("value header: %w", ErrNotEnoughBytes)
	}

	t, err := ParseType(b[0])
	if err != nil {
		return 0, err
	}
	if t.IsBool() {
		return 1, nil
	}

	width, err := ParseByteLength(b[0])
	if err != nil {
		return 0, err
	}

	switch t {
	case TypeUint, TypeInt, TypeFloat:
		if width == LengthZero {
			return 0, fmt.Errorf("%w: zero-width %s", ErrInvalidLength, t)
		}
		w := width.Bytes()
		if len(b) < 1+w {
			return 0, fmt.Errorf("%s payload: %w", t, ErrNotEnoughBytes)
		}
		return 1 + w, nil

	case TypeString:
		payload, total, err := collectionPayload(b, width, "string")
		if err != nil {
			return 0, err
		}
		if !utf8.Valid(payload) {
			return 0, fmt.Errorf("string payload: %w", ErrInvalidUTF8)
		}
		return total, nil

	case TypeArray:
		count, header, err := collectionCount(b, width, "array")
		if err != nil {
			return 0, err
		}
		pos := header
		for i := uint64(0); i < count; i++ {
			used, err := Next(b[pos:])
			if err != nil {
				return 0, fmt.Errorf("array element %d: %w", i, err)
			}
			pos += used
		}
		return pos, nil
	}

	return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidType, b[0])
}

// collectionCount reads the count field of a string or array header and
// returns the count and the header size (type byte plus count field).
func collectionCount(b []byte, width ByteLength, what string) (uint64, int, error) {
	if width == LengthZero {
		return 0, 0, fmt.Errorf("%s: %w", what, ErrEmptyCollection)
	}
	w := width.Bytes()
	if len(b) < 1+w {
		return 0, 0, fmt.Errorf("%s length: %w", what, ErrNotEnoughBytes)
	}
	count, err := DecodeLength(b[1:1+w], width)
	if err != nil {
		return 0, 0, fmt.Errorf("%s length: %w", what, err)
	}
	if count == 0 {
		return 0, 0, fmt.Errorf("%s: %w", what, ErrEmptyCollection)
	}
	return count, 1 + w, nil
}

// collectionPayload resolves a string's payload slice and total encoded size
// after bounds-checking the declared byte length against the buffer.
func collectionPayload(b []byte, width ByteLength, what string) ([]byte, int, error) {
	size, header, err := collectionCount(b, width, what)
	if err != nil {
		return nil, 0, err
	}
	if uint64(len(b)-header) < size {
		return nil, 0, fmt.Errorf("%s payload: %w", what, ErrNotEnoughBytes)
	}
	total := header + int(size)
	return b[header:total], total, nil
}
