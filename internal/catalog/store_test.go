package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	blob, err := NewFileStore(path)
	require.NoError(t, err)
	store := NewStore(blob)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestStore_LoadInitializesEmptyCatalog(t *testing.T) {
	store, path := newTestStore(t)

	c, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, c)

	// The empty catalog must have been persisted.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store, _ := newTestStore(t)

	c := Catalog{
		{Title: "leo 2023", Files: []FileRef{{FileID: "F1", FileName: "Leo.2023.mkv"}}},
		{Title: "kung fu panda 3 2016", Files: []FileRef{{FileID: "F2", FileName: "KFP3.mkv"}}},
	}
	require.NoError(t, store.Save(c))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestStore_LoadCorruptStateIsStorageError(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := store.Load()
	require.Error(t, err)
	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestStore_MutateSkipsSaveWhenUnchanged(t *testing.T) {
	store, path := newTestStore(t)

	c := Catalog{{Title: "leo 2023", Files: []FileRef{{FileID: "F1", FileName: "a.mkv"}}}}
	require.NoError(t, store.Save(c))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	changed, err := store.Mutate(func(c Catalog) (Catalog, bool, error) {
		return nil, false, nil
	})
	require.NoError(t, err)
	assert.False(t, changed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCatalog_Upsert(t *testing.T) {
	var c Catalog

	c, added := c.Upsert("leo 2023", FileRef{FileID: "F1", FileName: "Leo.mkv"})
	assert.True(t, added)
	require.Len(t, c, 1)

	// Same title grows the file list.
	c, added = c.Upsert("leo 2023", FileRef{FileID: "F2", FileName: "Leo.1080p.mkv"})
	assert.True(t, added)
	require.Len(t, c, 1)
	assert.Len(t, c[0].Files, 2)

	// Repeating the same (title, file_id) is a no-op.
	c, added = c.Upsert("leo 2023", FileRef{FileID: "F1", FileName: "renamed.mkv"})
	assert.False(t, added)
	require.Len(t, c, 1)
	assert.Len(t, c[0].Files, 2)

	// A different title creates a new entry.
	c, added = c.Upsert("leo 2019", FileRef{FileID: "F3", FileName: "Leo.2019.mkv"})
	assert.True(t, added)
	assert.Len(t, c, 2)
}

func TestCatalog_UpsertNeverDuplicatesTitles(t *testing.T) {
	var c Catalog
	for i := 0; i < 5; i++ {
		c, _ = c.Upsert("leo 2023", FileRef{FileID: "F1", FileName: "Leo.mkv"})
	}
	assert.Len(t, c, 1)
	assert.Len(t, c[0].Files, 1)
}

func TestCatalog_Titles(t *testing.T) {
	c := Catalog{
		{Title: "a"},
		{Title: "b"},
	}
	assert.Equal(t, []string{"a", "b"}, c.Titles())
}
