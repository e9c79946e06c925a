package search

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/lexirank/lexirank/internal/analyzer"
	"github.com/lexirank/lexirank/internal/index"
)

// Engine scores queries against a built SearchIndex. It holds the
// caller-owned extractor so queries are vectorized through exactly the same
// pipeline as documents (minus n-grams); there is no hidden process-wide
// tokenizer state.
type Engine struct {
	extractor *analyzer.Extractor
	logger    *slog.Logger
}

// NewEngine creates an Engine around the given extractor.
func NewEngine(extractor *analyzer.Extractor) *Engine {
	return &Engine{
		extractor: extractor,
		logger:    slog.Default().With("component", "search-engine"),
	}
}

type queryToken struct {
	original string
	lower    string
}

// Search ranks every document in idx against the query and returns results
// sorted by score, strictly descending. Ties keep the index's original
// document order, which makes ranking deterministic across runs. Searching an
// empty or freshly decoded index is valid and returns an empty slice.
func (e *Engine) Search(query string, idx *index.SearchIndex, opts Options) []Result {
	opts = normalize(opts)
	if idx == nil || len(idx.Documents) == 0 {
		return []Result{}
	}

	terms, _ := e.extractor.QueryTerms(query)
	tokens := caseTokens(query)

	qvec, qMag := e.vectorize(terms, idx)
	e.logger.Debug("query vectorized",
		"query", query,
		"tokens", len(tokens),
		"vector_terms", len(qvec),
	)

	results := make([]Result, 0, opts.Limit)
	for i := range idx.Documents {
		doc := &idx.Documents[i]
		score := cosine(qvec, qMag, doc)

		var matched []string
		for _, tok := range tokens {
			inRaw := doc.Raw[tok.lower] > 0
			_, inWeighted := doc.Weighted[analyzer.Stem(tok.lower)]
			if !inRaw && !inWeighted {
				continue
			}
			matched = append(matched, tok.lower)
			if inRaw {
				// One multiplicative boost per matched token, the
				// maximum of the applicable rules.
				score *= boostFor(tok.original, opts)
			}
		}
		if len(tokens) > 1 && len(matched) == len(tokens) {
			score *= opts.PhraseBoost
		}
		if len(tokens) > 3 && float64(len(matched)) >= 0.7*float64(len(tokens)) {
			score *= opts.PartialMatchBoost
		}

		if score == 0 || score < opts.MinScore {
			continue
		}
		results = append(results, Result{
			URI:          doc.URI,
			Score:        score,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// vectorize turns stemmed query term counts into a TF-IDF weighted vector
// using the corpus IDF table. Terms absent from the corpus are dropped
// entirely; a fully out-of-vocabulary query yields an empty vector, which
// scores zero against every document.
func (e *Engine) vectorize(terms map[string]int, idx *index.SearchIndex) (map[string]float64, float64) {
	var total int
	for _, c := range terms {
		total += c
	}
	if total == 0 {
		return nil, 0
	}
	vec := make(map[string]float64, len(terms))
	var sumSquares float64
	for term, count := range terms {
		idf, ok := idx.IDF[term]
		if !ok {
			continue
		}
		w := float64(count) / float64(total) * idf
		vec[term] = w
		sumSquares += w * w
	}
	return vec, math.Sqrt(sumSquares)
}

// cosine is the similarity between the query vector and one document vector:
// dot / (|q|*|d|), defined as exactly 0 when either magnitude is zero.
func cosine(qvec map[string]float64, qMag float64, doc *index.DocumentVector) float64 {
	if qMag == 0 || doc.Magnitude == 0 {
		return 0
	}
	var dot float64
	for term, qw := range qvec {
		if dw, ok := doc.Weighted[term]; ok {
			dot += qw * dw
		}
	}
	return dot / (qMag * doc.Magnitude)
}

// caseTokens returns the distinct query tokens in first-seen order, keeping
// the original casing for the boost heuristics alongside the lowercase form
// used for membership checks.
func caseTokens(query string) []queryToken {
	raw := analyzer.RawTokens(query)
	tokens := make([]queryToken, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, tok := range raw {
		lower := strings.ToLower(tok)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		tokens = append(tokens, queryToken{original: tok, lower: lower})
	}
	return tokens
}

// normalize fills unset options from the defaults so a zero-valued multiplier
// can never silently collapse every score to zero.
func normalize(opts Options) Options {
	defaults := DefaultOptions()
	if opts.Limit <= 0 {
		opts.Limit = defaults.Limit
	}
	if opts.ExactMatchBoost <= 0 {
		opts.ExactMatchBoost = defaults.ExactMatchBoost
	}
	if opts.TechnicalBoost <= 0 {
		opts.TechnicalBoost = defaults.TechnicalBoost
	}
	if opts.IdentifierBoost <= 0 {
		opts.IdentifierBoost = defaults.IdentifierBoost
	}
	if opts.PhraseBoost <= 0 {
		opts.PhraseBoost = defaults.PhraseBoost
	}
	if opts.PartialMatchBoost <= 0 {
		opts.PartialMatchBoost = defaults.PartialMatchBoost
	}
	return opts
}
