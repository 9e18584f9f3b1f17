// Package catalog owns the mapping from canonical titles to media file
// references and its persistence.
package catalog

import "fmt"

// FileRef identifies one stored media file. FileID is the stable identity
// used for deduplication; FileName is display-only.
type FileRef struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}

// Entry maps one canonical title to its files. FileIDs are unique within an
// entry.
type Entry struct {
	Title string    `json:"title"`
	Files []FileRef `json:"files"`
}

// Catalog is the ordered set of entries. Titles are unique across the
// catalog; it is persisted as a whole on every mutation.
type Catalog []Entry

// Titles returns all canonical titles in catalog order.
func (c Catalog) Titles() []string {
	titles := make([]string, len(c))
	for i, entry := range c {
		titles[i] = entry.Title
	}
	return titles
}

// Upsert adds ref under title. An existing entry with the same title grows
// its file list unless it already holds ref.FileID (no-op then); otherwise a
// new entry is appended. Returns the updated catalog and whether a file was
// actually added.
func (c Catalog) Upsert(title string, ref FileRef) (Catalog, bool) {
	for i := range c {
		if c[i].Title != title {
			continue
		}
		for _, f := range c[i].Files {
			if f.FileID == ref.FileID {
				return c, false
			}
		}
		c[i].Files = append(c[i].Files, ref)
		return c, true
	}

	return append(c, Entry{Title: title, Files: []FileRef{ref}}), true
}

// StorageError marks a hard persistence failure: the catalog blob could not
// be read, decoded, or written. Operations seeing it must abort without a
// partial mutation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
