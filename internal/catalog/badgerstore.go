package catalog

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var catalogKey = []byte("catalog:v1")

// BadgerStore persists the catalog blob in a Badger key-value database.
// Each Read/Write runs in its own transaction, which gives the same
// whole-document replace semantics as FileStore.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

// Read returns the current blob, or ErrNotExist when nothing has been
// written yet.
func (s *BadgerStore) Read() ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(catalogKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write replaces the blob.
func (s *BadgerStore) Write(data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(catalogKey, data)
	})
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
