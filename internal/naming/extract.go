package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/filmstash/filmstash/internal/logging"
)

// Metadata is the best-effort result of parsing a normalized filename.
// Absent fields are the zero value (empty Title/SeasonEpisode, Year 0).
type Metadata struct {
	Title         string
	Year          int
	SeasonEpisode string
}

var (
	compactSERegex = regexp.MustCompile(`(?i)S\d{1,3}E\d{1,3}`)
	phraseSERegex  = regexp.MustCompile(`(?i)season\s*(\d+)\s*episode\s*(\d+)`)
)

// SeasonEpisode extracts a season/episode token from text. Compact forms
// like "S04E08" are returned verbatim, preserving the case of the matched
// substring. If no token carries a compact form, a "season 1 episode 2"
// phrase anywhere in the text is canonicalized to "S01E02". Returns "" when
// neither pattern is present.
func SeasonEpisode(text string) string {
	for _, token := range strings.Fields(text) {
		if match := compactSERegex.FindString(token); match != "" {
			return match
		}
	}

	if match := phraseSERegex.FindStringSubmatch(text); match != nil {
		season, _ := strconv.Atoi(match[1])
		episode, _ := strconv.Atoi(match[2])
		return FormatSeasonEpisode(season, episode)
	}

	return ""
}

// FormatSeasonEpisode renders season/episode numbers in the canonical
// zero-padded compact form.
func FormatSeasonEpisode(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}

// CanonicalizeSeasonEpisode rewrites a "season 1 episode 2" phrase inside
// text to its compact "S01E02" form so queries line up with catalog keys.
// Text without the phrase is returned unchanged.
func CanonicalizeSeasonEpisode(text string) string {
	match := phraseSERegex.FindStringSubmatch(text)
	if match == nil {
		return text
	}
	season, _ := strconv.Atoi(match[1])
	episode, _ := strconv.Atoi(match[2])
	return phraseSERegex.ReplaceAllString(text, FormatSeasonEpisode(season, episode))
}

// Extractor derives catalog metadata from normalized filenames. Title and
// year come from the pluggable guesser; season/episode extraction is local
// and deterministic.
type Extractor struct {
	guesser Guesser
	log     *logging.Logger
}

// NewExtractor wires a guesser into an Extractor.
func NewExtractor(guesser Guesser, log *logging.Logger) *Extractor {
	if log == nil {
		log = logging.Nop()
	}
	return &Extractor{guesser: guesser, log: log}
}

// Extract parses a normalized filename. A guesser failure degrades to
// all-absent metadata rather than propagating: the file still gets cataloged
// under whatever key the remaining fields produce.
func (e *Extractor) Extract(name string) Metadata {
	guess, err := e.guesser.Guess(name)
	if err != nil {
		e.log.Warn("naming", "title guess failed", logging.F("filename", name), logging.F("error", err))
		return Metadata{}
	}

	return Metadata{
		Title:         guess.Title,
		Year:          guess.Year,
		SeasonEpisode: SeasonEpisode(name),
	}
}
