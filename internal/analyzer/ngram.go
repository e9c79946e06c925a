package analyzer

import (
	"strings"
	"unicode"
)

// DefaultNGramSize is the window length used when no explicit size is
// configured.
const DefaultNGramSize = 3

// NGrams produces overlapping substring windows of length n over the
// lowercased, alphanumeric-only form of text. For cleaned text of length L it
// returns max(1, L-n+1) grams; text shorter than n yields the whole cleaned
// string as the single gram. n values below 1 fall back to
// DefaultNGramSize.
func NGrams(text string, n int) []string {
	if n < 1 {
		n = DefaultNGramSize
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	clean := sb.String()
	if len(clean) <= n {
		return []string{clean}
	}
	grams := make([]string, 0, len(clean)-n+1)
	for i := 0; i+n <= len(clean); i++ {
		grams = append(grams, clean[i:i+n])
	}
	return grams
}
