package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/lexirank/lexirank/pkg/config"
	pkgerrors "github.com/lexirank/lexirank/pkg/errors"
)

const (
	badgerDocPrefix = "doc:"
	badgerIDFKey    = "idf"
)

// BadgerStore is an embedded implementation of both DocumentTermStore and
// CorpusIDFStore for single-process deployments without a Postgres/Redis
// pair. Rows are JSON values under a key prefix per concern.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
}

var (
	_ DocumentTermStore = (*BadgerStore)(nil)
	_ CorpusIDFStore    = (*BadgerStore)(nil)
)

// badgerLoggerAdapter routes badger's internal logging through slog.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (l *badgerLoggerAdapter) Errorf(msg string, args ...any) {
	l.logger.Error(fmt.Sprintf(msg, args...))
}

func (l *badgerLoggerAdapter) Warningf(msg string, args ...any) {
	l.logger.Warn(fmt.Sprintf(msg, args...))
}

func (l *badgerLoggerAdapter) Infof(msg string, args ...any) {
	l.logger.Debug(fmt.Sprintf(msg, args...))
}

func (l *badgerLoggerAdapter) Debugf(msg string, args ...any) {
	l.logger.Debug(fmt.Sprintf(msg, args...))
}

// OpenBadger opens (or creates) the embedded store.
func OpenBadger(cfg config.BadgerConfig) (*BadgerStore, error) {
	logger := slog.Default().With("component", "badger-store")
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts.Logger = &badgerLoggerAdapter{logger: logger}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger store: %w", err)
	}
	return &BadgerStore{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func (s *BadgerStore) PutDocuments(ctx context.Context, docs ...DocumentTerms) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, doc := range docs {
			value, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("encoding document %s: %w", doc.URI, err)
			}
			if err := txn.Set([]byte(badgerDocPrefix+doc.URI), value); err != nil {
				return fmt.Errorf("storing document %s: %w", doc.URI, err)
			}
		}
		return nil
	})
}

func (s *BadgerStore) GetDocument(ctx context.Context, uri string) (DocumentTerms, error) {
	var doc DocumentTerms
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerDocPrefix + uri))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", pkgerrors.ErrDocumentNotFound, uri)
		}
		if err != nil {
			return fmt.Errorf("reading document %s: %w", uri, err)
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &doc)
		})
	})
	if err != nil {
		return DocumentTerms{}, err
	}
	return doc, nil
}

func (s *BadgerStore) DeleteDocument(ctx context.Context, uri string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerDocPrefix + uri))
	})
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", uri, err)
	}
	return nil
}

func (s *BadgerStore) ListDocuments(ctx context.Context) ([]DocumentTerms, error) {
	var docs []DocumentTerms
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerDocPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var doc DocumentTerms
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &doc)
			})
			if err != nil {
				return fmt.Errorf("decoding document row: %w", err)
			}
			docs = append(docs, doc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *BadgerStore) PutIDF(ctx context.Context, idf map[string]float64) error {
	value, err := json.Marshal(idf)
	if err != nil {
		return fmt.Errorf("encoding idf table: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerIDFKey), value)
	})
	if err != nil {
		return fmt.Errorf("storing idf table: %w", err)
	}
	return nil
}

func (s *BadgerStore) GetIDF(ctx context.Context) (map[string]float64, error) {
	idf := make(map[string]float64)
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerIDFKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading idf table: %w", err)
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &idf)
		})
	})
	if err != nil {
		return nil, err
	}
	return idf, nil
}

func (s *BadgerStore) ClearIDF(ctx context.Context) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerIDFKey))
	})
	if err != nil {
		return fmt.Errorf("clearing idf table: %w", err)
	}
	return nil
}
