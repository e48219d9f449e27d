package codec

import (
	"errors"
	"testing"
)

func TestParseType(t *testing.T) {
	testCases := []struct {
		name string
		in   byte
		want Type
		err  error
	}{
		{"uint8 header", 0x11, TypeUint, nil},
		{"uint64 header", 0x14, TypeUint, nil},
		{"int header", 0x22, TypeInt, nil},
		{"float header", 0x33, TypeFloat, nil},
		{"string header", 0x41, TypeString, nil},
		{"array header", 0x52, TypeArray, nil},
		{"false", 0x80, TypeFalse, nil},
		{"true", 0x81, TypeTrue, nil},
		{"bool range is not a width field", 0x8F, 0, ErrInvalidType},
		{"zero byte", 0x00, 0, ErrInvalidType},
		{"row name marker is not a value type", 0x61, 0, ErrInvalidType},
		{"key name marker is not a value type", 0x71, 0, ErrInvalidType},
		{"sentinel range", 0xF1, 0, ErrInvalidType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseType(tc.in)
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseType(0x%02X) error = %v, want %v", tc.in, err, tc.err)
			}
			if err == nil && got != tc.want {
				t.Errorf("ParseType(0x%02X) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseByteLength(t *testing.T) {
	testCases := []struct {
		in    byte
		want  ByteLength
		bytes int
		err   error
	}{
		{0x10, LengthZero, 0, nil},
		{0x11, LengthOne, 1, nil},
		{0x42, LengthTwo, 2, nil},
		{0x23, LengthFour, 4, nil},
		{0x34, LengthEight, 8, nil},
		{0x15, 0, 0, ErrInvalidLength},
		{0x1F, 0, 0, ErrInvalidLength},
	}

	for _, tc := range testCases {
		got, err := ParseByteLength(tc.in)
		if !errors.Is(err, tc.err) {
			t.Fatalf("ParseByteLength(0x%02X) error = %v, want %v", tc.in, err, tc.err)
		}
		if err != nil {
			continue
		}
		if got != tc.want {
			t.Errorf("ParseByteLength(0x%02X) = %v, want %v", tc.in, got, tc.want)
		}
		if got.Bytes() != tc.bytes {
			t.Errorf("ByteLength(0x%02X).Bytes() = %d, want %d", byte(got), got.Bytes(), tc.bytes)
		}
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	// type | width must survive a parse of both nibbles
	for _, typ := range []Type{TypeUint, TypeInt, TypeFloat, TypeString, TypeArray} {
		for _, width := range []ByteLength{LengthOne, LengthTwo, LengthFour, LengthEight} {
			header := byte(typ) | byte(width)

			gotType, err := ParseType(header)
			if err != nil {
				t.Fatalf("ParseType(0x%02X): %v", header, err)
			}
			gotWidth, err := ParseByteLength(header)
			if err != nil {
				t.Fatalf("ParseByteLength(0x%02X): %v", header, err)
			}

			if gotType != typ || gotWidth != width {
				t.Errorf("header 0x%02X parsed as (%v, %v), want (%v, %v)",
					header, gotType, gotWidth, typ, width)
			}
		}
	}
}
