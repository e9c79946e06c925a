package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lexirank/lexirank/internal/analyzer"
	"github.com/lexirank/lexirank/internal/index"
)

// ExtractAll runs term extraction over a corpus with a bounded worker pool
// and returns builder-ready documents in the same order as the input. The
// strategy must be safe for concurrent use; both shipped strategies are.
func ExtractAll(ctx context.Context, strategy analyzer.TermExtractionStrategy, docs []Document, workers int) ([]index.Document, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	start := time.Now()
	out := make([]index.Document, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table := strategy.Extract(doc.Content)
			out[i] = index.Document{
				URI:   doc.URI,
				Terms: table.Terms,
				Raw:   table.Raw,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extracting corpus: %w", err)
	}
	slog.Default().Debug("corpus extracted",
		"documents", len(docs),
		"workers", workers,
		"elapsed", time.Since(start),
	)
	return out, nil
}
