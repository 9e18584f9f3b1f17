// Package watcher feeds media files appearing in watched directories into
// the catalog ingest path.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filmstash/filmstash/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Handler receives newly arrived media files.
type Handler interface {
	HandleMediaFile(path string) error
}

// Watcher watches ingest directories and forwards finished media files to
// its handler.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	handler    Handler
	extensions map[string]bool
	log        *logging.Logger
}

// New creates a Watcher forwarding files with the given extensions
// (lowercase, with leading dot) to handler.
func New(handler Handler, extensions []string, log *logging.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	if log == nil {
		log = logging.Nop()
	}

	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}

	return &Watcher{
		fsWatcher:  fsWatcher,
		handler:    handler,
		extensions: exts,
		log:        log,
	}, nil
}

// Watch registers the given directories.
func (w *Watcher) Watch(dirs []string) error {
	for _, dir := range dirs {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("unable to watch %s: %w", dir, err)
		}
		w.log.Info("watcher", "watching directory", logging.F("dir", dir))
	}
	return nil
}

// Start blocks, dispatching events until the watcher is closed.
func (w *Watcher) Start() error {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher", "watch error", logging.F("error", err))
		}
	}
}

// Close stops the watcher and unblocks Start.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Create covers both fresh files and completed renames from temp names;
	// Write fires while a download is still growing, so it is ignored.
	if event.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	if !w.isMediaFile(event.Name) {
		return
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return
	}

	if err := w.handler.HandleMediaFile(event.Name); err != nil {
		w.log.Error("watcher", "ingest failed", err, logging.F("path", event.Name))
	}
}

func (w *Watcher) isMediaFile(path string) bool {
	return w.extensions[strings.ToLower(filepath.Ext(path))]
}
