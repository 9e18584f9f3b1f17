package naming

import (
	"strconv"
	"strings"
)

// BuildKey composes extracted metadata into the canonical catalog key:
// present fields joined by single spaces in title/year/season-episode order,
// lowercased. All-absent metadata yields "". Construction is deterministic:
// identical metadata always produces an identical key.
func BuildKey(meta Metadata) string {
	parts := make([]string, 0, 3)
	if meta.Title != "" {
		parts = append(parts, meta.Title)
	}
	if meta.Year > 0 {
		parts = append(parts, strconv.Itoa(meta.Year))
	}
	if meta.SeasonEpisode != "" {
		parts = append(parts, meta.SeasonEpisode)
	}

	return strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
}
