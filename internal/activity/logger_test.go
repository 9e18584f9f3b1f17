package activity

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LogAndRecent(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Log(Entry{Action: ActionUpload, Title: "leo 2023", FileID: "F1"}))
	require.NoError(t, logger.Log(Entry{Action: ActionSearch, Query: "leo", Matched: []string{"leo 2023"}}))
	require.NoError(t, logger.Log(Entry{Action: ActionDelete, Query: "leo 2023", Deleted: true}))

	recent, err := logger.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	// Newest first.
	assert.Equal(t, ActionDelete, recent[0].Action)
	assert.Equal(t, ActionSearch, recent[1].Action)
	assert.Equal(t, ActionUpload, recent[2].Action)
	assert.Equal(t, []string{"leo 2023"}, recent[1].Matched)
	assert.False(t, recent[0].Timestamp.IsZero())
}

func TestLogger_RecentLimit(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	require.NoError(t, err)
	defer logger.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, logger.Log(Entry{Action: ActionSearch, Query: "q"}))
	}

	recent, err := logger.Recent(2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestLogger_WritesDailyFile(t *testing.T) {
	dataDir := t.TempDir()
	logger, err := NewLogger(dataDir)
	require.NoError(t, err)
	defer logger.Close()

	require.NoError(t, logger.Log(Entry{Action: ActionUpload, FileID: "F1"}))

	name := "activity-" + time.Now().Format("2006-01-02") + ".jsonl"
	_, err = os.Stat(filepath.Join(dataDir, "activity", name))
	assert.NoError(t, err)
}

func TestLogger_PruneOld(t *testing.T) {
	dataDir := t.TempDir()
	logger, err := NewLogger(dataDir)
	require.NoError(t, err)
	defer logger.Close()

	old := time.Now().AddDate(0, 0, -40).Format("2006-01-02")
	oldPath := filepath.Join(logger.LogDir(), "activity-"+old+".jsonl")
	require.NoError(t, os.WriteFile(oldPath, []byte("{}\n"), 0644))

	require.NoError(t, logger.Log(Entry{Action: ActionUpload}))
	require.NoError(t, logger.PruneOld(30))

	_, err = os.Stat(oldPath)
	assert.True(t, os.IsNotExist(err))

	current := filepath.Join(logger.LogDir(), "activity-"+time.Now().Format("2006-01-02")+".jsonl")
	_, err = os.Stat(current)
	assert.NoError(t, err)
}
