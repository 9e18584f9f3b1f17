package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// GuessResult is a best-effort title/year guess for a normalized filename.
// Year 0 means no year was found.
type GuessResult struct {
	Title string
	Year  int
}

// Guesser infers a media title and release year from a filename. Guessing is
// best-effort and may fail; callers must treat failures as recoverable.
type Guesser interface {
	Guess(name string) (GuessResult, error)
}

var (
	yearRegex      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	yearParenRegex = regexp.MustCompile(`\((\d{4})\)`)
	seTrailRegex   = regexp.MustCompile(`(?i)S\d{1,3}E\d{1,3}.*$`)
	spaceRegex     = regexp.MustCompile(`\s+`)
)

// releaseMarkerPatterns match resolution, source, codec, and audio tags that
// commonly trail the title in release names.
var releaseMarkerPatterns = func() []*regexp.Regexp {
	patterns := []string{
		`\b\d{3,4}[pi]\b`,
		`\b(4K|UHD)\b`,
		`\b(BluRay|Blu-ray|BDRip|HDRip|WEB-DL|WEBDL|WEBRip|WEB|REMUX)\b`,
		`\b(HDTV|DVDRip|DVD)\b`,
		`\b(x264|x265|HEVC|Hevc|AVC|H\.?264|H\.?265)\b`,
		`\b(AAC|AC3|DTS|TrueHD|Atmos|FLAC|DD\+?|DDP)\b`,
		`\b\d\.\d\b`,
		`\b(Tamil|Telugu|Hindi|Eng|English|DUAL|MULTI|HQ)\b`,
		`\+`,
		`\[.*?\]`,
		`\(.*?\)`,
		`\b(8bit|10bit)\b`,
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
	}
	return compiled
}()

// RulesGuesser is a regex-driven Guesser: it locates a plausible release
// year, truncates at season/episode markers, and strips release noise to
// leave the title.
type RulesGuesser struct{}

// NewRulesGuesser returns the default rules-based guesser.
func NewRulesGuesser() *RulesGuesser {
	return &RulesGuesser{}
}

// Guess implements Guesser.
func (g *RulesGuesser) Guess(name string) (GuessResult, error) {
	year := extractYear(name)

	title := seTrailRegex.ReplaceAllString(name, " ")
	for _, re := range releaseMarkerPatterns {
		title = re.ReplaceAllString(title, " ")
	}
	if year > 0 {
		title = removeYear(title, year)
	}
	title = strings.Trim(title, " .-_+")
	title = spaceRegex.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)

	if title == "" && year == 0 {
		return GuessResult{}, fmt.Errorf("could not guess a title from %q", name)
	}

	return GuessResult{Title: title, Year: year}, nil
}

// extractYear finds the most plausible release year in s. Parenthesized
// years win; otherwise the last in-range bare year is used, skipping values
// that are really resolutions.
func extractYear(s string) int {
	if match := yearParenRegex.FindStringSubmatch(s); len(match) > 1 {
		if y, err := strconv.Atoi(match[1]); err == nil {
			return y
		}
	}

	matches := yearRegex.FindAllString(s, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		y, err := strconv.Atoi(matches[i])
		if err != nil {
			continue
		}
		switch y {
		case 1920, 1440, 2160:
			continue
		}
		if y >= 1900 && y <= 2099 {
			return y
		}
	}

	return 0
}

func removeYear(s string, year int) string {
	y := strconv.Itoa(year)
	s = strings.ReplaceAll(s, "("+y+")", " ")
	s = strings.ReplaceAll(s, "["+y+"]", " ")
	s = strings.ReplaceAll(s, y, " ")
	return s
}
