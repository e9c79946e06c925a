// Package index defines the vector-space search index: per-document TF-IDF
// vectors with cached magnitudes, the corpus IDF table, and a stable JSON
// codec for persistence. An index is built once per corpus snapshot and is
// immutable afterwards, so it can be shared by concurrent readers without
// locking; re-indexing produces a fresh value for callers to swap in
// atomically.
package index

import "time"

// Document is one ingested document's extracted term tables, the builder's
// input shape. Terms holds stemmed, stop-filtered counts; Raw holds
// lowercased unstemmed token counts kept for exact-match boosting.
type Document struct {
	URI   string
	Terms map[string]int
	Raw   map[string]int
}

// DocumentVector is one document's position in the vector space.
type DocumentVector struct {
	URI string
	// Weighted maps term to TF-IDF weight.
	Weighted map[string]float64
	// Raw maps unstemmed token to raw frequency, independent of the
	// weighting scheme.
	Raw map[string]int
	// Magnitude is the cached Euclidean norm of Weighted. Zero only when
	// Weighted is empty.
	Magnitude float64
}

// Metadata carries versioning information about a built index. It is not
// load-bearing for scoring.
type Metadata struct {
	GeneratedAt time.Time
	Version     string
}

// SearchIndex is a complete corpus snapshot. Every term appearing in any
// DocumentVector.Weighted has an entry in IDF, and TotalDocuments equals
// len(Documents) after a build.
type SearchIndex struct {
	Documents      []DocumentVector
	IDF            map[string]float64
	TotalDocuments int
	Metadata       Metadata
}
