package codec

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func mustString(t *testing.T, s string) Value {
	t.Helper()
	v, err := String(s)
	if err != nil {
		t.Fatalf("String(%q): %v", s, err)
	}
	return v
}

func mustArray(t *testing.T, elems ...Value) Value {
	t.Helper()
	v, err := Array(elems...)
	if err != nil {
		t.Fatalf("Array(%d elems): %v", len(elems), err)
	}
	return v
}

func TestEncode_WireFormat(t *testing.T) {
	testCases := []struct {
		name string
		v    Value
		want []byte
	}{
		// scenario A
		{"uint8(42)", Uint8(42), []byte{0x11, 0x2A}},
		{"uint16", Uint16(0x0102), []byte{0x12, 0x01, 0x02}},
		{"uint32", Uint32(0xDEADBEEF), []byte{0x13, 0xDE, 0xAD, 0xBE, 0xEF}},
		{"uint64", Uint64(1), []byte{0x14, 0, 0, 0, 0, 0, 0, 0, 1}},
		{"int8(-1)", Int8(-1), []byte{0x21, 0xFF}},
		{"int16(-2)", Int16(-2), []byte{0x22, 0xFF, 0xFE}},
		{"float32(1.5)", Float32(1.5), []byte{0x33, 0x3F, 0xC0, 0x00, 0x00}},
		{"float8 bits", Float8(0x3C), []byte{0x31, 0x3C}},
		{"float16 bits", Float16(0x3C00), []byte{0x32, 0x3C, 0x00}},
		{"true", Bool(true), []byte{0x81}},
		{"false", Bool(false), []byte{0x80}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Encode()
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Encode() = %x, want %x", got, tc.want)
			}
			if tc.v.EncodedSize() != len(tc.want) {
				t.Errorf("EncodedSize() = %d, want %d", tc.v.EncodedSize(), len(tc.want))
			}
		})
	}
}

func TestEncode_String(t *testing.T) {
	// scenario B
	v := mustString(t, "Johan")
	want := []byte{0x41, 0x05, 'J', 'o', 'h', 'a', 'n'}
	if got := v.Encode(); !bytes.Equal(got, want) {
		t.Fatalf("Encode(%q) = %x, want %x", "Johan", got, want)
	}

	// a string longer than 255 bytes needs a two-byte length field
	long := mustString(t, strings.Repeat("a", 300))
	enc := long.Encode()
	if enc[0] != 0x42 {
		t.Errorf("long string header = 0x%02X, want 0x42", enc[0])
	}
	if enc[1] != 0x01 || enc[2] != 0x2C {
		t.Errorf("long string length field = %x, want 012C", enc[1:3])
	}
}

func TestEncode_Array(t *testing.T) {
	// scenario C
	v := mustArray(t, Uint8(20), Uint8(50))
	want := []byte{0x51, 0x02, 0x11, 0x14, 0x11, 0x32}
	if got := v.Encode(); !bytes.Equal(got, want) {
		t.Fatalf("Encode(array) = %x, want %x", got, want)
	}
}

func TestDecode_Scenarios(t *testing.T) {
	// scenario A: decode back to 42
	v, n, err := Decode([]byte{0x11, 0x2A})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 2 {
		t.Errorf("consumed %d bytes, want 2", n)
	}
	got, err := v.Uint8()
	if err != nil || got != 42 {
		t.Errorf("Uint8() = (%d, %v), want (42, nil)", got, err)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		Uint8(0),
		Uint8(255),
		Uint16(65535),
		Uint32(1 << 30),
		Uint64(math.MaxUint64),
		Int8(-128),
		Int16(-32768),
		Int32(-1),
		Int64(math.MinInt64),
		Float8(0x01),              // smallest subnormal minifloat
		Float8(0x7E),              // largest finite minifloat
		Float16(0x3C00),           // 1.0
		Float16(0xFBFF),           // most negative finite half
		Float32(float32(math.Pi)),
		Float64(math.Inf(-1)),
		Bool(true),
		Bool(false),
	}

	s, err := String("héllo wörld")
	if err != nil {
		t.Fatal(err)
	}
	values = append(values, s)

	inner, err := Array(Uint8(1), Bool(true), s)
	if err != nil {
		t.Fatal(err)
	}
	nested, err := Array(inner, Int64(-9), inner)
	if err != nil {
		t.Fatal(err)
	}
	values = append(values, inner, nested)

	for _, v := range values {
		enc := v.Encode()
		back, n, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%s): %v", v, err)
		}
		if n != len(enc) {
			t.Errorf("Decode(%s) consumed %d of %d bytes", v, n, len(enc))
		}
		if !back.Equal(v) {
			t.Errorf("round trip changed value: %s -> %s", v, back)
		}
		// bit-exact: re-encoding the decoded value reproduces the bytes
		if again := back.Encode(); !bytes.Equal(again, enc) {
			t.Errorf("re-encode of %s = %x, want %x", v, again, enc)
		}
	}
}

func TestDecode_ConsumesExactPrefix(t *testing.T) {
	// a value followed by trailing data must only consume its own bytes
	enc := append(Uint16(7).Encode(), 0xAA, 0xBB)
	v, n, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 3 {
		t.Errorf("consumed %d bytes, want 3", n)
	}
	if got, _ := v.Uint16(); got != 7 {
		t.Errorf("decoded %d, want 7", got)
	}
}

func TestDecode_TruncationSafety(t *testing.T) {
	full := [][]byte{
		Uint64(math.MaxUint64).Encode(),
		mustString(t, "truncate me").Encode(),
		mustArray(t, Uint8(1), mustString(t, "x"), mustArray(t, Bool(true))).Encode(),
		Float64(1.25).Encode(),
	}

	for _, enc := range full {
		for k := 0; k < len(enc); k++ {
			if _, _, err := Decode(enc[:k]); err == nil {
				t.Errorf("Decode of %d-byte prefix of %x succeeded, want error", k, enc)
			}
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	testCases := []struct {
		name string
		in   []byte
		err  error
	}{
		{"empty buffer", nil, ErrNotEnoughBytes},
		{"unknown type", []byte{0x01}, ErrInvalidType},
		{"bad width nibble", []byte{0x17, 0x00}, ErrInvalidLength},
		{"zero-width numeric", []byte{0x10}, ErrInvalidLength},
		{"zero-width string", []byte{0x40}, ErrEmptyCollection},
		{"zero-count string", []byte{0x41, 0x00}, ErrEmptyCollection},
		{"zero-width array", []byte{0x50}, ErrEmptyCollection},
		{"zero-count array", []byte{0x51, 0x00}, ErrEmptyCollection},
		{"string payload short", []byte{0x41, 0x05, 'J', 'o'}, ErrNotEnoughBytes},
		{"string length field short", []byte{0x42, 0x01}, ErrNotEnoughBytes},
		{"invalid utf-8 payload", []byte{0x41, 0x02, 0xC3, 0x28}, ErrInvalidUTF8},
		{"array element missing", []byte{0x51, 0x02, 0x11, 0x14}, ErrNotEnoughBytes},
		{"array element bad header", []byte{0x51, 0x01, 0x0F}, ErrInvalidType},
		{"bool range byte", []byte{0x8F}, ErrInvalidType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode(tc.in)
			if !errors.Is(err, tc.err) {
				t.Errorf("Decode(%x) error = %v, want %v", tc.in, err, tc.err)
			}

			// Next must agree with Decode on malformed input
			if _, err := Next(tc.in); !errors.Is(err, tc.err) {
				t.Errorf("Next(%x) error = %v, want %v", tc.in, err, tc.err)
			}
		})
	}
}

func TestNext_MatchesDecode(t *testing.T) {
	values := []Value{
		Uint8(9),
		Bool(false),
		mustString(t, "sized"),
		mustArray(t, Uint8(1), mustString(t, "two"), Bool(true)),
	}

	for _, v := range values {
		enc := append(v.Encode(), 0xFF) // trailing byte must be ignored
		want, _, err := Decode(enc)
		if err != nil {
			t.Fatal(err)
		}
		_ = want

		n, err := Next(enc)
		if err != nil {
			t.Fatalf("Next(%s): %v", v, err)
		}
		if n != v.EncodedSize() {
			t.Errorf("Next(%s) = %d, want %d", v, n, v.EncodedSize())
		}
	}
}

func TestEmptyCollectionsRejected(t *testing.T) {
	if _, err := String(""); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("String(\"\") error = %v, want ErrEmptyCollection", err)
	}
	if _, err := Array(); !errors.Is(err, ErrEmptyCollection) {
		t.Errorf("Array() error = %v, want ErrEmptyCollection", err)
	}
}

func TestString_RejectsInvalidUTF8(t *testing.T) {
	if _, err := String("ok\xC3\x28"); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("String with bad utf-8 error = %v, want ErrInvalidUTF8", err)
	}
}

func TestAccessors_KindMismatch(t *testing.T) {
	v := Uint8(1)

	if _, err := v.Int8(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Int8 on uint8 error = %v, want ErrKindMismatch", err)
	}
	if _, err := v.Uint16(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Uint16 on uint8 error = %v, want ErrKindMismatch", err)
	}
	if _, err := v.Str(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Str on uint8 error = %v, want ErrKindMismatch", err)
	}
	if _, err := v.Array(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Array on uint8 error = %v, want ErrKindMismatch", err)
	}
	if _, err := v.Bool(); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("Bool on uint8 error = %v, want ErrKindMismatch", err)
	}
}

func TestAccessors(t *testing.T) {
	if got, err := Int32(-77).Int32(); err != nil || got != -77 {
		t.Errorf("Int32 accessor = (%d, %v)", got, err)
	}
	if got, err := Float64(2.5).Float64(); err != nil || got != 2.5 {
		t.Errorf("Float64 accessor = (%g, %v)", got, err)
	}
	if got, err := Bool(true).Bool(); err != nil || !got {
		t.Errorf("Bool accessor = (%v, %v)", got, err)
	}
	if got, err := mustString(t, "v").Str(); err != nil || got != "v" {
		t.Errorf("Str accessor = (%q, %v)", got, err)
	}

	arr := mustArray(t, Uint8(3), Uint8(4))
	elems, err := arr.Array()
	if err != nil || len(elems) != 2 {
		t.Fatalf("Array accessor = (%d elems, %v)", len(elems), err)
	}
	if got, _ := elems[1].Uint8(); got != 4 {
		t.Errorf("element order not preserved: got %d, want 4", got)
	}
}

func TestDecode_NonMinimalWidthPreserved(t *testing.T) {
	// a 5-byte string framed with a two-byte length field is legal on the
	// wire even though one byte would do; re-encoding must not shrink it
	in := []byte{0x42, 0x00, 0x05, 'J', 'o', 'h', 'a', 'n'}
	v, n, err := Decode(in)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(in) {
		t.Fatalf("consumed %d of %d bytes", n, len(in))
	}
	if v.Width() != LengthTwo {
		t.Errorf("Width() = %v, want LengthTwo", v.Width())
	}
	if got := v.Encode(); !bytes.Equal(got, in) {
		t.Errorf("re-encode = %x, want %x", got, in)
	}
}

func TestEqual(t *testing.T) {
	if !Uint8(5).Equal(Uint8(5)) {
		t.Error("identical uint8 values not equal")
	}
	if Uint8(5).Equal(Uint16(5)) {
		t.Error("values of different width compare equal")
	}
	if Uint8(5).Equal(Int8(5)) {
		t.Error("values of different kind compare equal")
	}
	if !Float64(math.NaN()).Equal(Float64(math.NaN())) {
		t.Error("NaN of identical bits should compare equal (bit comparison)")
	}

	a := mustArray(t, Uint8(1), Uint8(2))
	b := mustArray(t, Uint8(1), Uint8(2))
	c := mustArray(t, Uint8(2), Uint8(1))
	if !a.Equal(b) {
		t.Error("identical arrays not equal")
	}
	if a.Equal(c) {
		t.Error("arrays with different element order compare equal")
	}
}
