// Package naming turns raw media filenames into canonical catalog keys.
//
// Uploaders use wildly different separator conventions (underscore-delimited,
// dot-delimited, hyphen-with-channel-prefix, space-delimited with stray dots).
// Normalize resolves the dominant convention first, then applies a universal
// cleanup pass, so a dotted year like "2006" never gets split into spaced
// digits by a later rule.
package naming

import (
	"regexp"
	"strings"
)

var (
	uploaderPrefixRegex = regexp.MustCompile(`^[\w.-]+\s*-\s*`)
	leadingHandleRegex  = regexp.MustCompile(`^@\S+\s*`)
	handleRegex         = regexp.MustCompile(`@\S+`)
	multiSpaceRegex     = regexp.MustCompile(`\s{2,}`)
)

// noiseTokens are removed as literal, case-sensitive substrings, in order.
var noiseTokens = []string{"HDRip", "1080p", "720p", "480p"}

// separatorRule pairs a filename-shape predicate with its transform. Rules
// are evaluated in order and the first match wins; adding a new uploader
// convention means adding a row, not another branch.
type separatorRule struct {
	match func(string) bool
	apply func(string) string
}

var separatorRules = []separatorRule{
	{
		// Underscore-delimited: MLM_The_Jungle_Book_1967.mkv
		match: func(s string) bool { return strings.Count(s, "_") >= 2 },
		apply: func(s string) string { return strings.ReplaceAll(s, "_", " ") },
	},
	{
		// Dot-delimited: Pudhupettai.2006.Tamil.x265.mkv
		match: func(s string) bool { return strings.Count(s, ".") >= 2 },
		apply: func(s string) string { return strings.ReplaceAll(s, ".", " ") },
	},
	{
		// Hyphenated, usually with an uploader tag prefix:
		// "@SomeChannel -Kung Fu Panda 3 (2016) BluRay - 1080p.mkv"
		match: func(s string) bool { return strings.Contains(s, "-") },
		apply: func(s string) string {
			s = strings.ReplaceAll(s, "-", " ")
			return uploaderPrefixRegex.ReplaceAllString(s, "")
		},
	},
	{
		// Space-delimited with stray dots.
		match: func(s string) bool { return strings.Contains(s, " ") },
		apply: func(s string) string { return strings.ReplaceAll(s, ".", " ") },
	},
}

// Normalize cleans a raw media filename into a form suitable for metadata
// extraction. It is total over string input and never fails.
func Normalize(name string) string {
	for _, rule := range separatorRules {
		if rule.match(name) {
			name = rule.apply(name)
			break
		}
	}

	name = leadingHandleRegex.ReplaceAllString(name, "")
	name = handleRegex.ReplaceAllString(name, "")
	name = multiSpaceRegex.ReplaceAllString(name, " ")

	for _, token := range noiseTokens {
		name = strings.ReplaceAll(name, token, "")
	}

	name = strings.ReplaceAll(name, " ", " ")

	return strings.TrimSpace(name)
}
