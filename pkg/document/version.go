package document

import "fmt"

// Sentinel bytes of the container framing. They live in a range disjoint
// from the value codec's type/length nibble space.
const (
	VersionHeader byte = 0xF0
	RowStart      byte = 0xF1
	RowEnd        byte = 0xF2
	KeyStart      byte = 0xF3
	KeyEnd        byte = 0xF4

	// Name marker nibbles. A row or key name is framed like a string value
	// but with these type nibbles, so it cannot be confused with one.
	RowName byte = 0x60
	KeyName byte = 0x70
)

// Version is the 4-field format version stamped at the head of every
// document. Beta zero means a stable release.
type Version struct {
	Major uint8
	Minor uint8
	Patch uint8
	Beta  uint8
}

// Current is the format version written by this package.
var Current = Version{Major: 1, Minor: 0, Patch: 0, Beta: 0}

// Serialize renders the 5-byte version stamp: a fixed header byte followed
// by the four fields.
func (v Version) Serialize() [5]byte {
	return [5]byte{VersionHeader, v.Major, v.Minor, v.Patch, v.Beta}
}

// ParseVersion reads a version stamp from the front of b.
func ParseVersion(b []byte) (Version, error) {
	if len(b) == 0 || b[0] != VersionHeader {
		return Version{}, ErrMalformedVersion
	}
	if len(b) < 5 {
		return Version{}, fmt.Errorf("%w: want 5 bytes, have %d", ErrMalformedVersion, len(b))
	}
	return Version{Major: b[1], Minor: b[2], Patch: b[3], Beta: b[4]}, nil
}

// Compare orders two versions lexicographically by major, minor, patch and
// beta. It returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	pairs := [4][2]uint8{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Patch, o.Patch},
		{v.Beta, o.Beta},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// Stable reports whether the version marks a stable release.
func (v Version) Stable() bool {
	return v.Beta == 0
}

func (v Version) String() string {
	if v.Beta > 0 {
		return fmt.Sprintf("%d.%d.%d-beta.%d", v.Major, v.Minor, v.Patch, v.Beta)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
