package document

import (
	"bytes"
	"errors"
	"testing"
)

func TestVersionSerialize(t *testing.T) {
	v := Version{Major: 1, Minor: 2, Patch: 3, Beta: 4}
	got := v.Serialize()
	want := [5]byte{0xF0, 0x01, 0x02, 0x03, 0x04}
	if got != want {
		t.Fatalf("Serialize() = % X, want % X", got, want)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    Version
		wantErr error
	}{
		{"current", []byte{0xF0, 0x01, 0x00, 0x00, 0x00}, Version{Major: 1}, nil},
		{"beta", []byte{0xF0, 0x02, 0x05, 0x01, 0x07}, Version{2, 5, 1, 7}, nil},
		{"empty", nil, Version{}, ErrMalformedVersion},
		{"wrong header", []byte{0xF1, 0x01, 0x00, 0x00, 0x00}, Version{}, ErrMalformedVersion},
		{"truncated", []byte{0xF0, 0x01, 0x00}, Version{}, ErrMalformedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVersion() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseVersion() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVersionRoundTrip(t *testing.T) {
	v := Version{Major: 3, Minor: 1, Patch: 4, Beta: 1}
	raw := v.Serialize()
	got, err := ParseVersion(raw[:])
	if err != nil {
		t.Fatalf("ParseVersion() error = %v", err)
	}
	if got != v {
		t.Fatalf("round trip = %+v, want %+v", got, v)
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 0, 0, 0}, Version{1, 0, 0, 0}, 0},
		{Version{1, 0, 0, 0}, Version{2, 0, 0, 0}, -1},
		{Version{2, 0, 0, 0}, Version{1, 9, 9, 9}, 1},
		{Version{1, 1, 0, 0}, Version{1, 0, 9, 0}, 1},
		{Version{1, 0, 1, 0}, Version{1, 0, 2, 0}, -1},
		{Version{1, 0, 0, 1}, Version{1, 0, 0, 2}, -1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	if got := (Version{1, 2, 3, 0}).String(); got != "1.2.3" {
		t.Errorf("String() = %q, want %q", got, "1.2.3")
	}
	if got := (Version{1, 2, 3, 4}).String(); got != "1.2.3-beta.4" {
		t.Errorf("String() = %q, want %q", got, "1.2.3-beta.4")
	}
	if (Version{1, 0, 0, 1}).Stable() {
		t.Error("beta version reported stable")
	}
	if !(Version{1, 0, 0, 0}).Stable() {
		t.Error("release version reported unstable")
	}
}

func TestVersionStampBytes(t *testing.T) {
	raw := Current.Serialize()
	if !bytes.Equal(raw[:], []byte{0xF0, 0x01, 0x00, 0x00, 0x00}) {
		t.Fatalf("current stamp = % X", raw)
	}
}
