package catalog

import (
	"encoding/json"
	"sync"
)

// Store serializes the catalog to a BlobStore. Every mutation is a
// load-mutate-save cycle over shared external state; the mutex makes the
// store a single-writer serialization point so two concurrent mutations
// cannot silently drop each other's update (last-write-wins on the whole
// document otherwise).
type Store struct {
	mu   sync.Mutex
	blob BlobStore
}

// NewStore wraps blob in a Store.
func NewStore(blob BlobStore) *Store {
	return &Store{blob: blob}
}

// Load returns the persisted catalog. A missing blob initializes and
// persists an empty catalog; unreadable or corrupt state surfaces as
// *StorageError.
func (s *Store) Load() (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Catalog, error) {
	data, err := s.blob.Read()
	if err == ErrNotExist {
		empty := Catalog{}
		if err := s.save(empty); err != nil {
			return nil, err
		}
		return empty, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &StorageError{Op: "decode", Err: err}
	}
	return c, nil
}

// Save persists the full catalog, replacing prior content.
func (s *Store) Save(c Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(c)
}

func (s *Store) save(c Catalog) error {
	if c == nil {
		c = Catalog{}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.blob.Write(data); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}

// Mutate runs fn inside the locked load-mutate-save cycle. fn returns the
// new catalog and whether anything changed; the catalog is persisted only
// when it did. Returns fn's changed flag.
func (s *Store) Mutate(fn func(Catalog) (Catalog, bool, error)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load()
	if err != nil {
		return false, err
	}

	next, changed, err := fn(c)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}

	if err := s.save(next); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the underlying blob store.
func (s *Store) Close() error {
	return s.blob.Close()
}
