package index

import (
	"math"
	"time"
)

// Build computes a SearchIndex from extracted documents. It is a pure
// function: no I/O, no shared state, deterministic for a given input order.
// Building from zero documents yields a valid empty index.
//
// TF is each term's raw frequency divided by the document's total term count.
// IDF is ln(totalDocuments / documentFrequency), where document frequency
// counts presence, not occurrences. A term appearing in every document gets
// IDF 0 and contributes nothing to ranking.
func Build(docs []Document, version string) *SearchIndex {
	idx := &SearchIndex{
		Documents:      make([]DocumentVector, 0, len(docs)),
		IDF:            make(map[string]float64),
		TotalDocuments: len(docs),
		Metadata: Metadata{
			GeneratedAt: time.Now().UTC(),
			Version:     version,
		},
	}

	docFreq := make(map[string]int)
	for _, doc := range docs {
		for term := range doc.Terms {
			docFreq[term]++
		}
	}
	total := float64(len(docs))
	for term, df := range docFreq {
		idx.IDF[term] = math.Log(total / float64(df))
	}

	for _, doc := range docs {
		vec := DocumentVector{
			URI:      doc.URI,
			Weighted: make(map[string]float64, len(doc.Terms)),
			Raw:      make(map[string]int, len(doc.Raw)),
		}
		for tok, freq := range doc.Raw {
			vec.Raw[tok] = freq
		}

		var totalTerms int
		for _, freq := range doc.Terms {
			totalTerms += freq
		}
		if totalTerms > 0 {
			var sumSquares float64
			for term, freq := range doc.Terms {
				tf := float64(freq) / float64(totalTerms)
				weight := tf * idx.IDF[term]
				vec.Weighted[term] = weight
				sumSquares += weight * weight
			}
			vec.Magnitude = math.Sqrt(sumSquares)
		}
		idx.Documents = append(idx.Documents, vec)
	}
	return idx
}
