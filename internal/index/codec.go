package index

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	pkgerrors "github.com/lexirank/lexirank/pkg/errors"
)

// Wire format: term-keyed mappings serialize as ordered [term, value] pair
// lists instead of JSON objects, so arbitrary term strings (including ones
// colliding with reserved keys) round-trip safely. Pairs are sorted by term,
// which makes encoding deterministic.

type weightEntry struct {
	Term  string
	Value float64
}

func (e weightEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Term, e.Value})
}

func (e *weightEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("term entry is not an array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("term entry has %d elements, want 2", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Term); err != nil {
		return fmt.Errorf("term entry key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Value); err != nil {
		return fmt.Errorf("term entry value: %w", err)
	}
	return nil
}

type countEntry struct {
	Term  string
	Count int
}

func (e countEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Term, e.Count})
}

func (e *countEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("term entry is not an array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("term entry has %d elements, want 2", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Term); err != nil {
		return fmt.Errorf("term entry key: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Count); err != nil {
		return fmt.Errorf("term entry count: %w", err)
	}
	return nil
}

type wireDocument struct {
	URI       *string        `json:"uri"`
	Terms     *[]weightEntry `json:"terms"`
	RawTerms  *[]countEntry  `json:"rawTerms"`
	Magnitude *float64       `json:"magnitude"`
}

type wireMetadata struct {
	GeneratedAt string `json:"generatedAt"`
	Version     string `json:"version"`
}

type wireIndex struct {
	Documents      *[]wireDocument `json:"documents"`
	IDF            *[]weightEntry  `json:"idf"`
	TotalDocuments *int            `json:"totalDocuments"`
	Metadata       *wireMetadata   `json:"metadata"`
}

// Encode serializes the index into its stable JSON form.
func Encode(idx *SearchIndex) ([]byte, error) {
	docs := make([]wireDocument, 0, len(idx.Documents))
	for i := range idx.Documents {
		doc := &idx.Documents[i]
		terms := make([]weightEntry, 0, len(doc.Weighted))
		for term, w := range doc.Weighted {
			terms = append(terms, weightEntry{Term: term, Value: w})
		}
		sort.Slice(terms, func(a, b int) bool { return terms[a].Term < terms[b].Term })

		raw := make([]countEntry, 0, len(doc.Raw))
		for tok, freq := range doc.Raw {
			raw = append(raw, countEntry{Term: tok, Count: freq})
		}
		sort.Slice(raw, func(a, b int) bool { return raw[a].Term < raw[b].Term })

		uri := doc.URI
		magnitude := doc.Magnitude
		docs = append(docs, wireDocument{
			URI:       &uri,
			Terms:     &terms,
			RawTerms:  &raw,
			Magnitude: &magnitude,
		})
	}

	idf := make([]weightEntry, 0, len(idx.IDF))
	for term, v := range idx.IDF {
		idf = append(idf, weightEntry{Term: term, Value: v})
	}
	sort.Slice(idf, func(a, b int) bool { return idf[a].Term < idf[b].Term })

	total := idx.TotalDocuments
	wire := wireIndex{
		Documents:      &docs,
		IDF:            &idf,
		TotalDocuments: &total,
		Metadata: &wireMetadata{
			GeneratedAt: idx.Metadata.GeneratedAt.Format(time.RFC3339Nano),
			Version:     idx.Metadata.Version,
		},
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encoding index: %w", err)
	}
	return data, nil
}

// Decode parses the stable JSON form back into a SearchIndex. Malformed input
// is a surfaced error wrapping ErrMalformedIndex, never a silently empty
// index: empty search results from a coerced index are far harder to debug
// than a load failure.
func Decode(data []byte) (*SearchIndex, error) {
	var wire wireIndex
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrMalformedIndex, err)
	}
	if wire.Documents == nil {
		return nil, fmt.Errorf("%w: missing documents field", pkgerrors.ErrMalformedIndex)
	}
	if wire.IDF == nil {
		return nil, fmt.Errorf("%w: missing idf field", pkgerrors.ErrMalformedIndex)
	}
	if wire.TotalDocuments == nil {
		return nil, fmt.Errorf("%w: missing totalDocuments field", pkgerrors.ErrMalformedIndex)
	}
	if *wire.TotalDocuments != len(*wire.Documents) {
		return nil, fmt.Errorf("%w: totalDocuments is %d but index holds %d documents",
			pkgerrors.ErrMalformedIndex, *wire.TotalDocuments, len(*wire.Documents))
	}

	idx := &SearchIndex{
		Documents:      make([]DocumentVector, 0, len(*wire.Documents)),
		IDF:            make(map[string]float64, len(*wire.IDF)),
		TotalDocuments: *wire.TotalDocuments,
	}
	for _, entry := range *wire.IDF {
		idx.IDF[entry.Term] = entry.Value
	}

	for i, doc := range *wire.Documents {
		switch {
		case doc.URI == nil:
			return nil, fmt.Errorf("%w: document %d missing uri", pkgerrors.ErrMalformedIndex, i)
		case doc.Terms == nil:
			return nil, fmt.Errorf("%w: document %q missing terms table", pkgerrors.ErrMalformedIndex, *doc.URI)
		case doc.RawTerms == nil:
			return nil, fmt.Errorf("%w: document %q missing rawTerms table", pkgerrors.ErrMalformedIndex, *doc.URI)
		case doc.Magnitude == nil:
			return nil, fmt.Errorf("%w: document %q missing magnitude", pkgerrors.ErrMalformedIndex, *doc.URI)
		}
		vec := DocumentVector{
			URI:       *doc.URI,
			Weighted:  make(map[string]float64, len(*doc.Terms)),
			Raw:       make(map[string]int, len(*doc.RawTerms)),
			Magnitude: *doc.Magnitude,
		}
		for _, entry := range *doc.Terms {
			vec.Weighted[entry.Term] = entry.Value
		}
		for _, entry := range *doc.RawTerms {
			vec.Raw[entry.Term] = entry.Count
		}
		idx.Documents = append(idx.Documents, vec)
	}

	if wire.Metadata != nil {
		idx.Metadata.Version = wire.Metadata.Version
		if wire.Metadata.GeneratedAt != "" {
			generated, err := time.Parse(time.RFC3339Nano, wire.Metadata.GeneratedAt)
			if err != nil {
				return nil, fmt.Errorf("%w: metadata generatedAt %q: %v",
					pkgerrors.ErrMalformedIndex, wire.Metadata.GeneratedAt, err)
			}
			idx.Metadata.GeneratedAt = generated
		}
	}
	return idx, nil
}
