package document

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ssargent/yad/pkg/codec"
)

func mustString(t *testing.T, s string) codec.Value {
	t.Helper()
	v, err := codec.String(s)
	if err != nil {
		t.Fatalf("String(%q) error = %v", s, err)
	}
	return v
}

func mustArray(t *testing.T, elems ...codec.Value) codec.Value {
	t.Helper()
	v, err := codec.Array(elems...)
	if err != nil {
		t.Fatalf("Array() error = %v", err)
	}
	return v
}

func TestKeyEncode(t *testing.T) {
	k := NewKey("id", codec.Uint8(42))
	got, err := k.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := []byte{
		0xF3,             // key start
		0x71, 0x02,       // key name marker, one-byte length 2
		'i', 'd',         // name
		0x11, 0x2A,       // uint8(42)
		0xF4,             // key end
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode() = % X, want % X", got, want)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		key  Key
	}{
		{"uint", NewKey("age", codec.Uint8(30))},
		{"int", NewKey("delta", codec.Int16(-5))},
		{"string", NewKey("name", mustString(t, "Johan"))},
		{"bool", NewKey("active", codec.Bool(true))},
		{"float", NewKey("score", codec.Float64(3.25))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.key.Encode()
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := DecodeKey(raw)
			if err != nil {
				t.Fatalf("DecodeKey() error = %v", err)
			}
			if got.Name != tt.key.Name || !got.Value.Equal(tt.key.Value) {
				t.Fatalf("round trip = %v, want %v", got, tt.key)
			}
		})
	}
}

func TestKeyEncodeEmptyName(t *testing.T) {
	_, err := NewKey("", codec.Uint8(1)).Encode()
	if !errors.Is(err, ErrEmptyName) {
		t.Fatalf("Encode() error = %v, want %v", err, ErrEmptyName)
	}
}

func TestDecodeKeyMalformed(t *testing.T) {
	valid, err := NewKey("id", codec.Uint8(42)).Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"missing start", valid[1:]},
		{"missing end", valid[:len(valid)-1]},
		{"wrong start", append([]byte{0xF1}, valid[1:]...)},
		{"trailing value", append(append([]byte{}, valid[:len(valid)-1]...), 0x11, 0x01, 0xF4)},
		{"row name marker", []byte{0xF3, 0x61, 0x02, 'i', 'd', 0x11, 0x2A, 0xF4}},
		{"empty name", []byte{0xF3, 0x70, 0x11, 0x2A, 0xF4}},
		{"no value", []byte{0xF3, 0x71, 0x02, 'i', 'd', 0xF4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeKey(tt.input); err == nil {
				t.Fatalf("DecodeKey(% X) succeeded, want error", tt.input)
			}
		})
	}
}

func TestDecodeKeyArrayValue(t *testing.T) {
	arr := mustArray(t, codec.Uint8(20), codec.Uint8(50))
	k := NewKey("scores", arr)
	raw, err := k.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := DecodeKey(raw)
	if err != nil {
		t.Fatalf("DecodeKey() error = %v", err)
	}
	if !got.Value.Equal(arr) {
		t.Fatalf("round trip = %v, want %v", got.Value, arr)
	}
}
