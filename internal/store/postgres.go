package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	pkgerrors "github.com/lexirank/lexirank/pkg/errors"
	"github.com/lexirank/lexirank/pkg/postgres"
)

const documentTermsSchema = `
CREATE TABLE IF NOT EXISTS document_terms (
	uri        TEXT PRIMARY KEY,
	raw_terms  JSONB NOT NULL,
	magnitude  DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresDocumentStore is the permanent DocumentTermStore backed by
// Postgres.
type PostgresDocumentStore struct {
	client *postgres.Client
}

var _ DocumentTermStore = (*PostgresDocumentStore)(nil)

// NewPostgresDocumentStore creates the store and ensures its schema exists.
func NewPostgresDocumentStore(ctx context.Context, client *postgres.Client) (*PostgresDocumentStore, error) {
	if _, err := client.DB.ExecContext(ctx, documentTermsSchema); err != nil {
		return nil, fmt.Errorf("creating document_terms table: %w", err)
	}
	return &PostgresDocumentStore{client: client}, nil
}

func (s *PostgresDocumentStore) PutDocuments(ctx context.Context, docs ...DocumentTerms) error {
	return s.client.InTx(ctx, func(tx *sql.Tx) error {
		const upsert = `
			INSERT INTO document_terms (uri, raw_terms, magnitude, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (uri) DO UPDATE
			SET raw_terms = EXCLUDED.raw_terms,
			    magnitude = EXCLUDED.magnitude,
			    updated_at = now()`
		for _, doc := range docs {
			rawJSON, err := json.Marshal(doc.RawTerms)
			if err != nil {
				return fmt.Errorf("encoding raw terms for %s: %w", doc.URI, err)
			}
			if _, err := tx.ExecContext(ctx, upsert, doc.URI, rawJSON, doc.Magnitude); err != nil {
				return fmt.Errorf("upserting document %s: %w", doc.URI, err)
			}
		}
		return nil
	})
}

func (s *PostgresDocumentStore) GetDocument(ctx context.Context, uri string) (DocumentTerms, error) {
	const query = `SELECT raw_terms, magnitude FROM document_terms WHERE uri = $1`
	var rawJSON []byte
	doc := DocumentTerms{URI: uri}
	err := s.client.DB.QueryRowContext(ctx, query, uri).Scan(&rawJSON, &doc.Magnitude)
	if errors.Is(err, sql.ErrNoRows) {
		return DocumentTerms{}, fmt.Errorf("%w: %s", pkgerrors.ErrDocumentNotFound, uri)
	}
	if err != nil {
		return DocumentTerms{}, fmt.Errorf("querying document %s: %w", uri, err)
	}
	if err := json.Unmarshal(rawJSON, &doc.RawTerms); err != nil {
		return DocumentTerms{}, fmt.Errorf("decoding raw terms for %s: %w", uri, err)
	}
	return doc, nil
}

func (s *PostgresDocumentStore) DeleteDocument(ctx context.Context, uri string) error {
	if _, err := s.client.DB.ExecContext(ctx, `DELETE FROM document_terms WHERE uri = $1`, uri); err != nil {
		return fmt.Errorf("deleting document %s: %w", uri, err)
	}
	return nil
}

func (s *PostgresDocumentStore) ListDocuments(ctx context.Context) ([]DocumentTerms, error) {
	rows, err := s.client.DB.QueryContext(ctx, `SELECT uri, raw_terms, magnitude FROM document_terms ORDER BY uri`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentTerms
	for rows.Next() {
		var doc DocumentTerms
		var rawJSON []byte
		if err := rows.Scan(&doc.URI, &rawJSON, &doc.Magnitude); err != nil {
			return nil, fmt.Errorf("scanning document row: %w", err)
		}
		if err := json.Unmarshal(rawJSON, &doc.RawTerms); err != nil {
			return nil, fmt.Errorf("decoding raw terms for %s: %w", doc.URI, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document rows: %w", err)
	}
	return docs, nil
}
