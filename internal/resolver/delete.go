package resolver

import (
	"strings"

	"github.com/filmstash/filmstash/internal/catalog"
	"github.com/filmstash/filmstash/internal/fuzzy"
)

// The two delete passes trade precision differently on purpose. The title
// pass fuzzy-matches only to select candidate entries; the actual removal
// test is literal substring containment, so a loose title match cannot
// sweep away files that never mention the query. The filename pass is the
// looser fallback for queries aimed directly at a file, where the fuzzy
// score itself drives removal.

// resolveByTitle fuzzy-matches query against entry titles at threshold,
// then inside matched entries removes every file whose filename or entry
// title contains query literally. Emptied entries are dropped.
func resolveByTitle(c catalog.Catalog, query string, threshold int) (catalog.Catalog, bool) {
	matches := fuzzy.MatchAll(query, c.Titles(), threshold)
	matched := make(map[int]bool, len(matches))
	for _, m := range matches {
		matched[m.Index] = true
	}

	removed := false
	next := make(catalog.Catalog, 0, len(c))
	for i, entry := range c {
		if !matched[i] {
			next = append(next, entry)
			continue
		}

		titleHit := strings.Contains(strings.ToLower(entry.Title), query)
		kept := entry.Files[:0:0]
		for _, f := range entry.Files {
			if titleHit || strings.Contains(strings.ToLower(f.FileName), query) {
				removed = true
				continue
			}
			kept = append(kept, f)
		}

		if len(kept) > 0 {
			entry.Files = kept
			next = append(next, entry)
		}
	}

	return next, removed
}

// resolveByFilename removes, across all entries, every file whose filename
// scores at or above threshold against query. Emptied entries are dropped.
func resolveByFilename(c catalog.Catalog, query string, threshold int) (catalog.Catalog, bool) {
	removed := false
	next := make(catalog.Catalog, 0, len(c))
	for _, entry := range c {
		kept := entry.Files[:0:0]
		for _, f := range entry.Files {
			if fuzzy.TokenSetRatio(query, strings.ToLower(f.FileName)) >= threshold {
				removed = true
				continue
			}
			kept = append(kept, f)
		}

		if len(kept) > 0 {
			entry.Files = kept
			next = append(next, entry)
		}
	}

	return next, removed
}
