package analyzer

import (
	"github.com/kljensen/snowball/english"
)

// SnowballExtractor is an alternative TermExtractionStrategy backed by the
// Snowball (Porter2) English stemmer. Its stems differ from the rule-based
// Extractor's, so an index built with one strategy must be queried through
// the same strategy.
type SnowballExtractor struct{}

var _ TermExtractionStrategy = SnowballExtractor{}

// Extract produces the TermTable for one document using Snowball stems.
func (SnowballExtractor) Extract(text string) TermTable {
	tokens := Tokenize(text)
	table := TermTable{
		Terms: make(map[string]int, len(tokens)),
		Raw:   make(map[string]int, len(tokens)),
	}
	for _, tok := range tokens {
		table.Raw[tok]++
		if IsStopWord(tok) {
			continue
		}
		table.Terms[english.Stem(tok, false)]++
	}
	return table
}
