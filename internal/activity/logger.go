// Package activity records catalog operations (searches, uploads,
// deletions) to daily JSONL files for later review.
package activity

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Action classifies an activity entry.
type Action string

const (
	ActionSearch Action = "search"
	ActionUpload Action = "upload"
	ActionDelete Action = "delete"
)

// Entry is one recorded catalog operation. Matched holds the canonical
// titles a search resolved to, or is empty for an unmatched query.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Action    Action    `json:"action"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username,omitempty"`
	Query     string    `json:"query,omitempty"`
	Matched   []string  `json:"matched,omitempty"`
	Title     string    `json:"title,omitempty"`
	FileID    string    `json:"file_id,omitempty"`
	Deleted   bool      `json:"deleted,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Logger appends entries to activity-YYYY-MM-DD.jsonl files under logDir.
type Logger struct {
	mu          sync.Mutex
	logDir      string
	currentFile *os.File
	currentDate string
}

// NewLogger creates the activity directory under dataDir and returns a
// Logger writing into it.
func NewLogger(dataDir string) (*Logger, error) {
	logDir := filepath.Join(dataDir, "activity")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}
	return &Logger{logDir: logDir}, nil
}

// Log stamps and appends entry, rolling to a new file at date boundaries.
func (l *Logger) Log(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.Timestamp = time.Now()

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	today := entry.Timestamp.Format("2006-01-02")
	if l.currentDate != today || l.currentFile == nil {
		if err := l.openFile(today); err != nil {
			return err
		}
	}

	_, err = l.currentFile.Write(append(line, '\n'))
	return err
}

func (l *Logger) openFile(date string) error {
	if l.currentFile != nil {
		l.currentFile.Close()
	}

	path := filepath.Join(l.logDir, "activity-"+date+".jsonl")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	l.currentFile = file
	l.currentDate = date
	return nil
}

// LogDir returns the directory holding activity files.
func (l *Logger) LogDir() string {
	return l.logDir
}

// Close closes the current activity file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentFile != nil {
		return l.currentFile.Close()
	}
	return nil
}

// PruneOld removes activity files older than retentionDays.
func (l *Logger) PruneOld(retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(l.logDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "activity-") || !strings.HasSuffix(name, ".jsonl") {
			continue
		}

		dateStr := strings.TrimSuffix(strings.TrimPrefix(name, "activity-"), ".jsonl")
		fileDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if fileDate.Before(cutoff) {
			os.Remove(filepath.Join(l.logDir, name))
		}
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (l *Logger) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	dirEntries, err := os.ReadDir(l.logDir)
	if err != nil {
		return nil, err
	}

	var logFiles []string
	for _, entry := range dirEntries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, "activity-") && strings.HasSuffix(name, ".jsonl") {
			logFiles = append(logFiles, name)
		}
	}
	// os.ReadDir sorts ascending; walk newest file first.
	for i, j := 0, len(logFiles)-1; i < j; i, j = i+1, j-1 {
		logFiles[i], logFiles[j] = logFiles[j], logFiles[i]
	}

	var results []Entry
	for _, name := range logFiles {
		fileEntries, err := readEntries(filepath.Join(l.logDir, name))
		if err != nil {
			continue
		}
		for i := len(fileEntries) - 1; i >= 0; i-- {
			results = append(results, fileEntries[i])
			if len(results) >= limit {
				return results, nil
			}
		}
	}

	return results, nil
}

func readEntries(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}
