package document

import "fmt"

// Row is a named, unordered set of uniquely-named keys, comparable to a
// record in a NoSQL store. Inserting a key under an existing name replaces
// the prior key.
type Row struct {
	Name string
	Keys map[string]Key
}

// NewRow creates a row holding the given keys, keyed by name. Later keys
// with duplicate names win.
func NewRow(name string, keys ...Key) Row {
	r := Row{Name: name, Keys: make(map[string]Key, len(keys))}
	for _, k := range keys {
		r.Keys[k.Name] = k
	}
	return r
}

// Set inserts or replaces a key by its name.
func (r Row) Set(k Key) {
	r.Keys[k.Name] = k
}

// Get returns the key with the given name.
func (r Row) Get(name string) (Key, bool) {
	k, ok := r.Keys[name]
	return k, ok
}

// Delete removes the key with the given name.
func (r Row) Delete(name string) {
	delete(r.Keys, name)
}

// Encode serializes the row:
// [RowStart][name chunk][key chunks...][RowEnd].
// Key iteration order is unspecified; rows are unordered sets.
func (r Row) Encode() ([]byte, error) {
	body, err := appendName([]byte{RowStart}, RowName, r.Name)
	if err != nil {
		return nil, fmt.Errorf("row name: %w", err)
	}

	for _, k := range r.Keys {
		kb, err := k.Encode()
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", r.Name, err)
		}
		body = append(body, kb...)
	}

	return append(body, RowEnd), nil
}

// DecodeRow parses one complete row chunk: boundary sentinels, the row name,
// then every key chunk in the remainder. Duplicate key names resolve to the
// last occurrence.
func DecodeRow(b []byte) (Row, error) {
	if len(b) < 4 || b[0] != RowStart || b[len(b)-1] != RowEnd {
		return Row{}, ErrMalformedRow
	}

	name, n, err := parseName(b[1:], RowName)
	if err != nil {
		return Row{}, fmt.Errorf("row name: %w", err)
	}

	chunks, err := segmentKeys(b[1+n : len(b)-1])
	if err != nil {
		return Row{}, fmt.Errorf("row %q: %w", name, err)
	}

	keys := make(map[string]Key, len(chunks))
	for _, chunk := range chunks {
		k, err := DecodeKey(chunk)
		if err != nil {
			return Row{}, fmt.Errorf("row %q: %w", name, err)
		}
		keys[k.Name] = k // last writer wins
	}

	return Row{Name: name, Keys: keys}, nil
}

// Equal reports whether two rows hold the same name and the same set of
// keys with equal values.
func (r Row) Equal(o Row) bool {
	if r.Name != o.Name || len(r.Keys) != len(o.Keys) {
		return false
	}
	for name, k := range r.Keys {
		ok, found := o.Keys[name]
		if !found || !k.Value.Equal(ok.Value) {
			return false
		}
	}
	return true
}
