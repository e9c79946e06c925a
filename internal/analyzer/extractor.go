package analyzer

// TermTable holds the per-document term multisets produced by extraction.
// Terms maps stemmed, stop-filtered terms to counts and drives TF-IDF
// weighting. Raw maps lowercased unstemmed tokens to counts and survives on
// the document vector for exact-match boosting.
type TermTable struct {
	Terms map[string]int
	Raw   map[string]int
}

// TermExtractionStrategy converts raw document text into a TermTable.
// Strategies are plugged into the ingestion pipeline; the index builder and
// query engine never depend on a concrete one.
type TermExtractionStrategy interface {
	Extract(text string) TermTable
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithNGrams makes the extractor also fold substring n-grams of size n into
// the stemmed term table, for partial matching of identifiers.
func WithNGrams(n int) Option {
	return func(e *Extractor) {
		e.useNGrams = true
		if n > 0 {
			e.ngramSize = n
		}
	}
}

// Extractor is the rule-based TermExtractionStrategy: tokenize, filter
// stop-words, stem with the Porter algorithm, aggregate counts. Construct one
// at startup and share it; it is stateless after construction and safe for
// concurrent use.
type Extractor struct {
	useNGrams bool
	ngramSize int
}

var _ TermExtractionStrategy = (*Extractor)(nil)

// NewExtractor creates a rule-based extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{ngramSize: DefaultNGramSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract produces the TermTable for one document.
func (e *Extractor) Extract(text string) TermTable {
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
		table.Terms[Stem(tok)]++
	}
	if e.useNGrams {
		for _, gram := range NGrams(text, e.ngramSize) {
			if gram == "" {
				continue
			}
			table.Terms[gram]++
		}
	}
	return table
}

// QueryTerms runs the document pipeline minus n-grams over a query string:
// stemmed, stop-filtered terms with counts, plus the distinct lowercased raw
// tokens in first-seen order.
func (e *Extractor) QueryTerms(query string) (terms map[string]int, rawTokens []string) {
	tokens := Tokenize(query)
	terms = make(map[string]int, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if _, dup := seen[tok]; !dup {
			seen[tok] = struct{}{}
			rawTokens = append(rawTokens, tok)
		}
		if IsStopWord(tok) {
			continue
		}
		terms[Stem(tok)]++
	}
	return terms, rawTokens
}
