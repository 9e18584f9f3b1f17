package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// FileStore persists the catalog blob as a single file. Writes go to a temp
// file in the same directory followed by a rename, so readers always see
// either the old or the new document. A sidecar flock guards against other
// processes writing the same catalog.
type FileStore struct {
	path string
	lock *flock.Flock
}

// NewFileStore creates a FileStore at path, creating parent directories as
// needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}

	return &FileStore{
		path: path,
		lock: flock.New(path + ".lock"),
	}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the current blob, or ErrNotExist when no file is present.
func (s *FileStore) Read() ([]byte, error) {
	if err := s.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock catalog file: %w", err)
	}
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write atomically replaces the blob.
func (s *FileStore) Write(data []byte) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("lock catalog file: %w", err)
	}
	defer s.lock.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".catalog-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Close releases the sidecar lock if held.
func (s *FileStore) Close() error {
	return s.lock.Unlock()
}
