package document

import "fmt"

// Document is the root container: a format version stamp followed by an
// unordered set of uniquely-named rows.
type Document struct {
	Version Version
	Rows    map[string]Row
}

// New creates an empty document stamped with the current format version.
func New() *Document {
	return &Document{
		Version: Current,
		Rows:    make(map[string]Row),
	}
}

// Set inserts or replaces a row by its name.
func (d *Document) Set(r Row) {
	d.Rows[r.Name] = r
}

// Get returns the row with the given name.
func (d *Document) Get(name string) (Row, bool) {
	r, ok := d.Rows[name]
	return r, ok
}

// Delete removes the row with the given name.
func (d *Document) Delete(name string) {
	delete(d.Rows, name)
}

// Marshal serializes the document: the 5-byte version stamp followed by
// every row chunk. Row iteration order is unspecified.
func Marshal(d *Document) ([]byte, error) {
	stamp := d.Version.Serialize()
	buf := append([]byte(nil), stamp[:]...)

	for _, r := range d.Rows {
		rb, err := r.Encode()
		if err != nil {
			return nil, err
		}
		buf = append(buf, rb...)
	}
	return buf, nil
}

// Unmarshal parses a serialized document. Duplicate row names resolve to the
// last occurrence.
func Unmarshal(b []byte) (*Document, error) {
	v, err := ParseVersion(b)
	if err != nil {
		return nil, err
	}

	chunks, err := segmentRows(b[5:])
	if err != nil {
		return nil, err
	}

	rows := make(map[string]Row, len(chunks))
	for _, chunk := range chunks {
		r, err := DecodeRow(chunk)
		if err != nil {
			return nil, err
		}
		rows[r.Name] = r // last writer wins
	}

	return &Document{Version: v, Rows: rows}, nil
}

// Equal reports whether two documents hold the same version and the same
// set of rows.
func (d *Document) Equal(o *Document) bool {
	if d.Version != o.Version || len(d.Rows) != len(o.Rows) {
		return false
	}
	for name, r := range d.Rows {
		or, ok := o.Rows[name]
		if !ok || !r.Equal(or) {
			return false
		}
	}
	return true
}

func (d *Document) String() string {
	return fmt.Sprintf("document v%s (%d rows)", d.Version, len(d.Rows))
}
