// Package resolver orchestrates the catalog workflows: indexing uploaded
// files under canonical keys, fuzzy search, and two-phase fuzzy deletion.
package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filmstash/filmstash/internal/activity"
	"github.com/filmstash/filmstash/internal/catalog"
	"github.com/filmstash/filmstash/internal/fuzzy"
	"github.com/filmstash/filmstash/internal/logging"
	"github.com/filmstash/filmstash/internal/naming"
)

// ErrNotFound reports that a query matched nothing. It is an expected
// outcome, not a system fault.
var ErrNotFound = errors.New("no matching catalog entry")

// Thresholds are the minimum token-set similarity scores for each matching
// pass.
type Thresholds struct {
	Search         int `mapstructure:"search"`
	DeleteTitle    int `mapstructure:"delete_title"`
	DeleteFilename int `mapstructure:"delete_filename"`
}

// DefaultThresholds returns the stock matching thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Search: 60, DeleteTitle: 70, DeleteFilename: 70}
}

// DeleteResult reports the outcome of a delete query.
type DeleteResult struct {
	Deleted     bool   `json:"deleted"`
	Description string `json:"description"`
}

// Resolver wires the catalog store, the metadata extractor, and the fuzzy
// matcher into the operations exposed to the transport layer.
type Resolver struct {
	store      *catalog.Store
	extractor  *naming.Extractor
	thresholds Thresholds
	log        *logging.Logger
	activity   *activity.Logger
}

// New creates a Resolver. act may be nil to disable activity recording.
func New(store *catalog.Store, extractor *naming.Extractor, thresholds Thresholds, log *logging.Logger, act *activity.Logger) *Resolver {
	if log == nil {
		log = logging.Nop()
	}
	return &Resolver{
		store:      store,
		extractor:  extractor,
		thresholds: thresholds,
		log:        log,
		activity:   act,
	}
}

// OnFileUploaded normalizes fileName, extracts metadata, and upserts the
// file under its canonical key. When extraction yields nothing the
// normalized filename itself becomes the key, so the file is still
// retrievable. Returns the canonical title the file was cataloged under.
func (r *Resolver) OnFileUploaded(fileName, fileID string) (string, error) {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	normalized := naming.Normalize(base)

	meta := r.extractor.Extract(normalized)
	key := naming.BuildKey(meta)
	if key == "" {
		// Best-effort degradation: catalog under the literal cleaned name.
		key = strings.ToLower(normalized)
	}

	return key, r.add(key, catalog.FileRef{FileID: fileID, FileName: fileName})
}

// AddWithTitle catalogs a file under an explicitly chosen title, bypassing
// extraction.
func (r *Resolver) AddWithTitle(title, fileName, fileID string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(title))
	if key == "" {
		return "", fmt.Errorf("empty title")
	}
	return key, r.add(key, catalog.FileRef{FileID: fileID, FileName: fileName})
}

func (r *Resolver) add(key string, ref catalog.FileRef) error {
	added, err := r.store.Mutate(func(c catalog.Catalog) (catalog.Catalog, bool, error) {
		next, added := c.Upsert(key, ref)
		return next, added, nil
	})
	if err != nil {
		r.log.Error("resolver", "upsert failed", err, logging.F("title", key))
		return err
	}

	if added {
		r.log.Info("resolver", "file cataloged", logging.F("title", key), logging.F("file_id", ref.FileID))
	} else {
		r.log.Debug("resolver", "duplicate upload ignored", logging.F("title", key), logging.F("file_id", ref.FileID))
	}
	r.record(activity.Entry{Action: activity.ActionUpload, Title: key, FileID: ref.FileID})
	return nil
}

// OnSearchQuery resolves text against catalog titles and returns the files
// of every matching entry, best match first. A "season X episode Y" phrase
// in the query is canonicalized to SXXEYY before matching. Returns
// ErrNotFound when nothing scores above the search threshold.
func (r *Resolver) OnSearchQuery(text string) ([]catalog.FileRef, error) {
	query := strings.ToLower(strings.TrimSpace(text))
	query = naming.CanonicalizeSeasonEpisode(query)

	cat, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	matches := fuzzy.MatchAll(query, cat.Titles(), r.thresholds.Search)

	var files []catalog.FileRef
	var titles []string
	for _, m := range matches {
		entry := cat[m.Index]
		titles = append(titles, entry.Title)
		files = append(files, entry.Files...)
	}

	r.record(activity.Entry{Action: activity.ActionSearch, Query: query, Matched: titles})

	if len(files) == 0 {
		r.log.Info("resolver", "search unmatched", logging.F("query", query))
		return nil, fmt.Errorf("%w: %q", ErrNotFound, text)
	}
	return files, nil
}

// OnDeleteQuery removes catalog files matching text using the two-phase
// policy and persists the catalog only when something was removed. The
// query is matched as literal lowercased text; unlike search, no
// season/episode canonicalization is applied.
func (r *Resolver) OnDeleteQuery(text string) (DeleteResult, error) {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return DeleteResult{Description: "empty delete query"}, nil
	}

	deleted, err := r.store.Mutate(func(c catalog.Catalog) (catalog.Catalog, bool, error) {
		next, removed := resolveByTitle(c, query, r.thresholds.DeleteTitle)
		if !removed {
			next, removed = resolveByFilename(next, query, r.thresholds.DeleteFilename)
		}
		return next, removed, nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	r.record(activity.Entry{Action: activity.ActionDelete, Query: query, Deleted: deleted})

	if !deleted {
		r.log.Info("resolver", "delete unmatched", logging.F("query", query))
		return DeleteResult{Description: "no matching file"}, nil
	}

	r.log.Info("resolver", "files deleted", logging.F("query", query))
	return DeleteResult{
		Deleted:     true,
		Description: fmt.Sprintf("deleted file(s) matching %q", text),
	}, nil
}

func (r *Resolver) record(entry activity.Entry) {
	if r.activity == nil {
		return
	}
	if err := r.activity.Log(entry); err != nil {
		r.log.Warn("resolver", "activity log failed", logging.F("error", err))
	}
}
