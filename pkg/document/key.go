package document

import (
	"fmt"

	"github.com/ssargent/yad/pkg/codec"
)

// Key binds a non-empty name to exactly one typed value. A key is owned by
// the row that holds it; name uniqueness is enforced at the row level.
type Key struct {
	Name  string
	Value codec.Value
}

// NewKey creates a key.
func NewKey(name string, value codec.Value) Key {
	return Key{Name: name, Value: value}
}

// Encode serializes the key:
// [KeyStart][name chunk][value][KeyEnd].
func (k Key) Encode() ([]byte, error) {
	body, err := appendName([]byte{KeyStart}, KeyName, k.Name)
	if err != nil {
		return nil, fmt.Errorf("key name: %w", err)
	}
	body = k.Value.Append(body)
	return append(body, KeyEnd), nil
}

// DecodeKey parses one complete key chunk. The buffer must start with
// KeyStart, end with KeyEnd, and contain a name chunk followed by exactly
// one value between them.
func DecodeKey(b []byte) (Key, error) {
	if len(b) < 4 || b[0] != KeyStart || b[len(b)-1] != KeyEnd {
		return Key{}, ErrMalformedKey
	}

	name, n, err := parseName(b[1:], KeyName)
	if err != nil {
		return Key{}, fmt.Errorf("key name: %w", err)
	}

	inner := b[1+n : len(b)-1]
	value, used, err := codec.Decode(inner)
	if err != nil {
		return Key{}, fmt.Errorf("key %q: %w", name, err)
	}
	if used != len(inner) {
		return Key{}, fmt.Errorf("key %q: trailing bytes after value: %w", name, ErrMalformedKey)
	}

	return Key{Name: name, Value: value}, nil
}
