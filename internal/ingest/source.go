// Package ingest supplies documents to the search core and runs term
// extraction over a corpus. Sources own all I/O; the core's extractor,
// builder, and engine stay pure.
package ingest

import "context"

// Document is one raw document handed across the ingestion boundary.
type Document struct {
	URI     string `json:"uri"`
	Content string `json:"content"`
}

// Source produces an ordered collection of documents for indexing.
type Source interface {
	Documents(ctx context.Context) ([]Document, error)
}
