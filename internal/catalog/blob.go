package catalog

import "errors"

// ErrNotExist is returned by BlobStore.Read when no catalog has been
// persisted yet.
var ErrNotExist = errors.New("catalog blob does not exist")

// BlobStore is the persistence boundary: an atomic whole-document read and
// replace. Readers must never observe a torn write.
type BlobStore interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Close() error
}
