// Package search implements the query engine: query vectorization against
// the corpus IDF table, cosine-similarity scoring of every document vector,
// deterministic boost heuristics tuned for code search, and ranked result
// assembly. Searching never mutates the index, so one SearchIndex value can
// serve any number of concurrent queries.
package search

// Result is one ranked search hit.
type Result struct {
	URI          string   `json:"uri"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matchedTerms"`
}

// Options controls result assembly and boost multipliers. The zero value is
// not useful; start from DefaultOptions.
type Options struct {
	// Limit caps the number of returned results.
	Limit int
	// MinScore filters out results scoring below it.
	MinScore float64
	// ExactMatchBoost multiplies the score once per raw query token found
	// verbatim in a document, unless a stronger heuristic applies.
	ExactMatchBoost float64
	// TechnicalBoost replaces ExactMatchBoost for tokens matching the
	// technical-term heuristics (acronyms, PascalCase, camelCase, known
	// protocol keywords).
	TechnicalBoost float64
	// IdentifierBoost replaces ExactMatchBoost for tokens shaped like
	// programming identifiers.
	IdentifierBoost float64
	// PhraseBoost multiplies the score when every token of a multi-token
	// query was found in the document.
	PhraseBoost float64
	// PartialMatchBoost multiplies the score when a query longer than
	// three tokens matched at least 70% of them.
	PartialMatchBoost float64
}

// DefaultOptions returns the canonical multipliers. Existing indexes and
// their consumers depend on these exact values for score compatibility.
func DefaultOptions() Options {
	return Options{
		Limit:             10,
		MinScore:          0,
		ExactMatchBoost:   1.5,
		TechnicalBoost:    1.8,
		IdentifierBoost:   1.3,
		PhraseBoost:       2.0,
		PartialMatchBoost: 1.2,
	}
}
