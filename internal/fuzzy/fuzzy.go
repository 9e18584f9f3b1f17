// Package fuzzy scores catalog keys and filenames against user queries
// using a token-set similarity measure: word order does not matter and a
// query whose tokens are a subset of the candidate's scores as a full match
// on the shared portion.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Match pairs a candidate's original index with its similarity score.
type Match struct {
	Index int
	Score int
}

// foldTransformer strips combining marks so accented and plain spellings
// tokenize identically ("léo" and "leo" share a token).
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func tokens(s string) []string {
	if folded, _, err := transform.String(foldTransformer, s); err == nil {
		s = folded
	}
	return strings.Fields(strings.ToLower(s))
}

// ratio is a 0-100 similarity based on Levenshtein distance over the full
// strings. Identical strings score 100.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	dist := edlib.LevenshteinDistance(a, b)
	return (longest - dist) * 100 / longest
}

// TokenSetRatio computes the token-set similarity of a and b in [0, 100].
// Tokens common to both sides count fully; the remainders on each side are
// compared for partial overlap. Symmetric for anagram-equivalent token sets
// and 100 for identical ones.
func TokenSetRatio(a, b string) int {
	ta, tb := tokens(a), tokens(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 100
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	inA := make(map[string]bool, len(ta))
	for _, t := range ta {
		inA[t] = true
	}
	inB := make(map[string]bool, len(tb))
	for _, t := range tb {
		inB[t] = true
	}

	var common, restA, restB []string
	for t := range inA {
		if inB[t] {
			common = append(common, t)
		} else {
			restA = append(restA, t)
		}
	}
	for t := range inB {
		if !inA[t] {
			restB = append(restB, t)
		}
	}
	sort.Strings(common)
	sort.Strings(restA)
	sort.Strings(restB)

	sect := strings.Join(common, " ")
	combA := strings.TrimSpace(sect + " " + strings.Join(restA, " "))
	combB := strings.TrimSpace(sect + " " + strings.Join(restB, " "))

	best := ratio(sect, combA)
	if r := ratio(sect, combB); r > best {
		best = r
	}
	if r := ratio(combA, combB); r > best {
		best = r
	}
	return best
}

// MatchAll scores query against every candidate and returns matches at or
// above threshold, sorted by descending score. Ties keep the candidates'
// original order.
func MatchAll(query string, candidates []string, threshold int) []Match {
	var matches []Match
	for i, candidate := range candidates {
		score := TokenSetRatio(query, candidate)
		if score >= threshold {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
