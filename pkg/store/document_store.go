package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/yad/pkg/document"
)

var (
	// ErrDocumentNotFound is returned when no document exists under a name.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrRevisionNotFound is returned when a named revision does not exist.
	ErrRevisionNotFound = errors.New("revision not found")
	// ErrStoreClosed is returned on any operation after Close.
	ErrStoreClosed = errors.New("store is closed")
)

// Key layout inside pebble. The head copy of a document lives under
// "doc!<name>"; every write also appends an immutable revision under
// "rev!<name>!<ksuid>". KSUIDs sort chronologically, so a prefix scan yields
// history in write order.
const (
	docPrefix = "doc!"
	revPrefix = "rev!"
)

// Revision identifies one historical write of a document.
type Revision struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
}

// Stats summarizes the store's contents.
type Stats struct {
	Documents int `json:"documents"`
	Revisions int `json:"revisions"`
}

// DocumentStore persists serialized documents in a pebble database, keeping
// a full revision history per document name.
type DocumentStore struct {
	mu      sync.RWMutex
	db      *pebble.DB
	isOpen  bool
	lastRev string
}

// Open opens (creating if needed) a store rooted at path.
func Open(path string) (*DocumentStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &DocumentStore{db: db, isOpen: true}, nil
}

// Close releases the underlying database. Further operations fail with
// ErrStoreClosed.
func (s *DocumentStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isOpen {
		return nil
	}
	s.isOpen = false
	return s.db.Close()
}

func docKey(name string) []byte {
	return []byte(docPrefix + name)
}

func revKey(name, id string) []byte {
	return []byte(revPrefix + name + "!" + id)
}

// Put serializes the document and writes it as the head copy of name,
// recording a new revision. It returns the revision id.
func (s *DocumentStore) Put(name string, d *document.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isOpen {
		return "", ErrStoreClosed
	}

	raw, err := document.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document %q: %w", name, err)
	}

	// KSUID timestamps have one-second resolution, so draws within the same
	// second do not sort in generation order. Redraw until the new id sorts
	// after the previous one; history scans then read back in write order.
	id := ksuid.New()
	for id.String() <= s.lastRev {
		id = ksuid.New()
	}
	s.lastRev = id.String()

	if err := s.db.Set(docKey(name), raw, pebble.NoSync); err != nil {
		return "", fmt.Errorf("failed to write document %q: %w", name, err)
	}
	if err := s.db.Set(revKey(name, id.String()), raw, pebble.NoSync); err != nil {
		return "", fmt.Errorf("failed to write revision of %q: %w", name, err)
	}
	return id.String(), nil
}

func (s *DocumentStore) get(key []byte) (*document.Document, error) {
	raw, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	defer closer.Close()

	d, err := document.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored document: %w", err)
	}
	return d, nil
}

// Get returns the head copy of the named document.
func (s *DocumentStore) Get(name string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isOpen {
		return nil, ErrStoreClosed
	}
	return s.get(docKey(name))
}

// GetRevision returns one historical write of the named document.
func (s *DocumentStore) GetRevision(name, id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isOpen {
		return nil, ErrStoreClosed
	}

	d, err := s.get(revKey(name, id))
	if errors.Is(err, ErrDocumentNotFound) {
		return nil, ErrRevisionNotFound
	}
	return d, err
}

// Delete removes the head copy of the named document. Revision history is
// retained.
func (s *DocumentStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isOpen {
		return ErrStoreClosed
	}

	if _, closer, err := s.db.Get(docKey(name)); err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to read document %q: %w", name, err)
	} else {
		closer.Close()
	}

	if err := s.db.Delete(docKey(name), pebble.NoSync); err != nil {
		return fmt.Errorf("failed to delete document %q: %w", name, err)
	}
	return nil
}

// prefixScan iterates every key under prefix and calls fn with the key
// stripped of the prefix.
func (s *DocumentStore) prefixScan(prefix string, fn func(suffix string) error) error {
	lower := []byte(prefix)
	upper := append([]byte(prefix[:len(prefix)-1]), prefix[len(prefix)-1]+1)

	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return fmt.Errorf("failed to open iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := fn(string(iter.Key())[len(prefix):]); err != nil {
			return err
		}
	}
	return iter.Error()
}

// List returns the names of all stored documents in lexicographic order.
func (s *DocumentStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isOpen {
		return nil, ErrStoreClosed
	}

	names := []string{}
	err := s.prefixScan(docPrefix, func(name string) error {
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// History returns every recorded revision of the named document, oldest
// first.
func (s *DocumentStore) History(name string) ([]Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isOpen {
		return nil, ErrStoreClosed
	}

	revs := []Revision{}
	err := s.prefixScan(revPrefix+name+"!", func(id string) error {
		if strings.ContainsRune(id, '!') {
			// Belongs to a different document whose name extends this one.
			return nil
		}
		k, err := ksuid.Parse(id)
		if err != nil {
			return fmt.Errorf("malformed revision key %q: %w", id, err)
		}
		revs = append(revs, Revision{ID: id, Created: k.Time()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return revs, nil
}

// Stats counts documents and revisions.
func (s *DocumentStore) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isOpen {
		return Stats{}, ErrStoreClosed
	}

	var st Stats
	if err := s.prefixScan(docPrefix, func(string) error {
		st.Documents++
		return nil
	}); err != nil {
		return Stats{}, err
	}
	if err := s.prefixScan(revPrefix, func(string) error {
		st.Revisions++
		return nil
	}); err != nil {
		return Stats{}, err
	}
	return st, nil
}
