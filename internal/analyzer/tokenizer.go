// Package analyzer provides text tokenisation, Porter stemming, stop-word
// filtering, and n-gram generation for the search engine. All functions are
// pure and total over arbitrary string input.
package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`[^`\n]*`")
	linkRe        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	headerRe      = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	emphasisRe    = regexp.MustCompile(`[*~]+`)
	underOpenRe   = regexp.MustCompile(`(^|\s)_+`)
	underCloseRe  = regexp.MustCompile(`_+(\s|$)`)
)

// StripMarkdown removes structural Markdown noise before tokenisation:
// fenced code blocks, inline code spans, header markers, emphasis markers,
// and link syntax (the label is kept, the URL dropped). Underscores at the
// edges of whitespace-delimited words are treated as emphasis and removed;
// interior underscores survive as identifier characters.
func StripMarkdown(text string) string {
	text = fencedBlockRe.ReplaceAllString(text, " ")
	text = inlineCodeRe.ReplaceAllString(text, " ")
	text = linkRe.ReplaceAllString(text, "$1")
	text = headerRe.ReplaceAllString(text, "")
	text = emphasisRe.ReplaceAllString(text, " ")
	text = underOpenRe.ReplaceAllString(text, "$1")
	text = underCloseRe.ReplaceAllString(text, "$1")
	return text
}

// Tokenize breaks text into lowercase word tokens in first-seen order.
// Markdown noise is stripped first. Letters, digits, and underscores are word
// characters; hyphens between word characters are kept so "my-function" stays
// one token. Tokens shorter than two runes are dropped.
func Tokenize(text string) []string {
	return splitWords(strings.ToLower(StripMarkdown(text)))
}

// RawTokens splits text like Tokenize but preserves the original case. The
// query engine uses these for its exact-match heuristics, which distinguish
// acronyms, PascalCase, and camelCase.
func RawTokens(text string) []string {
	return splitWords(StripMarkdown(text))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func splitWords(text string) []string {
	runes := []rune(text)
	tokens := make([]string, 0, len(runes)/6)
	var cur []rune
	flush := func() {
		if len(cur) >= 2 {
			tokens = append(tokens, string(cur))
		}
		cur = cur[:0]
	}
	for i, r := range runes {
		switch {
		case isWordRune(r):
			cur = append(cur, r)
		case r == '-' && len(cur) > 0 && i+1 < len(runes) && isWordRune(runes[i+1]):
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}
