// Package store defines the persistence boundary around the search core: a
// permanent per-document term store and an ephemeral corpus IDF store,
// mirroring the permanent/cache database split. The core never touches these
// directly; drivers shuttle the shapes in and out. IDF is recomputed only by
// full rebuilds, so the stores do plain upserts with no incremental
// bookkeeping.
package store

import "context"

// DocumentTerms is the per-document row persisted between rebuilds.
type DocumentTerms struct {
	URI       string         `json:"uri"`
	RawTerms  map[string]int `json:"rawTerms"`
	Magnitude float64        `json:"magnitude"`
}

// DocumentTermStore holds per-document raw term tables and magnitudes in
// permanent storage.
type DocumentTermStore interface {
	// PutDocuments upserts one or more document rows.
	PutDocuments(ctx context.Context, docs ...DocumentTerms) error
	// GetDocument returns the row for uri, or ErrDocumentNotFound.
	GetDocument(ctx context.Context, uri string) (DocumentTerms, error)
	// DeleteDocument removes the row for uri. Deleting a missing row is
	// not an error.
	DeleteDocument(ctx context.Context, uri string) error
	// ListDocuments returns every stored row.
	ListDocuments(ctx context.Context) ([]DocumentTerms, error)
}

// CorpusIDFStore holds the corpus-wide term to IDF table in ephemeral
// storage. A rebuild replaces the whole table.
type CorpusIDFStore interface {
	PutIDF(ctx context.Context, idf map[string]float64) error
	GetIDF(ctx context.Context) (map[string]float64, error)
	ClearIDF(ctx context.Context) error
}
