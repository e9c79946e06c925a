package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lexirank/lexirank/internal/analyzer"
	"github.com/lexirank/lexirank/internal/index"
	"github.com/lexirank/lexirank/internal/ingest"
	"github.com/lexirank/lexirank/internal/search"
	"github.com/lexirank/lexirank/internal/server"
	"github.com/lexirank/lexirank/internal/store"
	"github.com/lexirank/lexirank/pkg/config"
	"github.com/lexirank/lexirank/pkg/health"
	"github.com/lexirank/lexirank/pkg/kafka"
	"github.com/lexirank/lexirank/pkg/logger"
	"github.com/lexirank/lexirank/pkg/metrics"
	"github.com/lexirank/lexirank/pkg/middleware"
	"github.com/lexirank/lexirank/pkg/postgres"
	pkgredis "github.com/lexirank/lexirank/pkg/redis"
	"github.com/lexirank/lexirank/pkg/resilience"
)

func main() {
	app := &cli.App{
		Name:  "lexirank",
		Usage: "TF-IDF search engine for text and code corpora",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to YAML config file",
			},
		},
		Commands: []*cli.Command{
			indexCommand(),
			searchCommand(),
			serveCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

func newStrategy(cfg *config.Config) analyzer.TermExtractionStrategy {
	if cfg.Index.Strategy == "snowball" {
		return analyzer.SnowballExtractor{}
	}
	if cfg.Index.EnableNGrams {
		return analyzer.NewExtractor(analyzer.WithNGrams(cfg.Index.NGramSize))
	}
	return analyzer.NewExtractor()
}

func indexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "build a search index from a directory or Kafka topic",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Usage: "directory to index"},
			&cli.BoolFlag{Name: "kafka", Usage: "consume documents from the configured Kafka topic instead"},
			&cli.StringFlag{Name: "out", Value: "index.json", Usage: "output index file"},
			&cli.StringFlag{Name: "persist", Usage: "persist term tables to a store: badger or external"},
			&cli.BoolFlag{Name: "notify", Usage: "publish an index-built event to Kafka"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var source ingest.Source
			switch {
			case c.Bool("kafka"):
				source = ingest.NewKafkaSource(cfg.Kafka, cfg.Kafka.Topics.DocumentIngest, 5*time.Second)
			case c.String("dir") != "":
				source = ingest.NewDirSource(c.String("dir"), nil)
			default:
				return fmt.Errorf("either --dir or --kafka is required")
			}

			docs, err := source.Documents(ctx)
			if err != nil {
				return fmt.Errorf("collecting documents: %w", err)
			}
			extracted, err := ingest.ExtractAll(ctx, newStrategy(cfg), docs, cfg.Index.Workers)
			if err != nil {
				return err
			}

			start := time.Now()
			idx := index.Build(extracted, cfg.Index.Version)
			slog.Info("index built",
				"documents", idx.TotalDocuments,
				"vocabulary", len(idx.IDF),
				"elapsed", time.Since(start),
			)

			data, err := index.Encode(idx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(c.String("out"), data, 0o644); err != nil {
				return fmt.Errorf("writing index file: %w", err)
			}
			slog.Info("index written", "path", c.String("out"), "bytes", len(data))

			if mode := c.String("persist"); mode != "" {
				if err := persistIndex(ctx, cfg, idx, mode); err != nil {
					return err
				}
			}
			if c.Bool("notify") {
				producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.IndexBuilt)
				defer producer.Close()
				event := map[string]any{
					"documents":   idx.TotalDocuments,
					"vocabulary":  len(idx.IDF),
					"generatedAt": idx.Metadata.GeneratedAt,
					"version":     idx.Metadata.Version,
				}
				if err := producer.Publish(ctx, c.String("out"), event); err != nil {
					slog.Warn("index-built event not published", "error", err)
				}
			}
			return nil
		},
	}
}

// persistIndex writes per-document term tables and the corpus IDF table to
// the configured stores: the embedded badger store, or the external
// Postgres/Redis pair for the permanent/cache split.
func persistIndex(ctx context.Context, cfg *config.Config, idx *index.SearchIndex, mode string) error {
	var docStore store.DocumentTermStore
	var idfStore store.CorpusIDFStore

	switch mode {
	case "badger":
		badgerStore, err := store.OpenBadger(cfg.Badger)
		if err != nil {
			return err
		}
		defer badgerStore.Close()
		docStore, idfStore = badgerStore, badgerStore
	case "external":
		pgClient, err := postgres.New(cfg.Postgres)
		if err != nil {
			return err
		}
		defer pgClient.Close()
		pgStore, err := store.NewPostgresDocumentStore(ctx, pgClient)
		if err != nil {
			return err
		}
		redisClient, err := pkgredis.NewClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		docStore, idfStore = pgStore, store.NewRedisIDFStore(redisClient)
	default:
		return fmt.Errorf("unknown persist mode %q (want badger or external)", mode)
	}

	rows := make([]store.DocumentTerms, 0, len(idx.Documents))
	for _, doc := range idx.Documents {
		rows = append(rows, store.DocumentTerms{
			URI:       doc.URI,
			RawTerms:  doc.Raw,
			Magnitude: doc.Magnitude,
		})
	}
	err := resilience.Retry(ctx, "persist-document-terms", resilience.RetryConfig{}, func() error {
		return docStore.PutDocuments(ctx, rows...)
	})
	if err != nil {
		return err
	}
	err = resilience.Retry(ctx, "persist-idf-table", resilience.RetryConfig{}, func() error {
		return idfStore.PutIDF(ctx, idx.IDF)
	})
	if err != nil {
		return err
	}
	slog.Info("term tables persisted", "mode", mode, "documents", len(rows), "terms", len(idx.IDF))
	return nil
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "run a query against an index file",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "index", Value: "index.json", Usage: "index file to query"},
			&cli.IntFlag{Name: "limit", Value: 10, Usage: "maximum results"},
			&cli.Float64Flag{Name: "min-score", Usage: "minimum score threshold"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			query := c.Args().First()
			if query == "" {
				return fmt.Errorf("a query argument is required")
			}
			data, err := os.ReadFile(c.String("index"))
			if err != nil {
				return fmt.Errorf("reading index file: %w", err)
			}
			idx, err := index.Decode(data)
			if err != nil {
				return err
			}

			opts := search.DefaultOptions()
			opts.Limit = c.Int("limit")
			opts.MinScore = c.Float64("min-score")
			if cfg.Search.ExactMatchBoost > 0 {
				opts.ExactMatchBoost = cfg.Search.ExactMatchBoost
			}

			engine := search.NewEngine(analyzer.NewExtractor())
			results := engine.Search(query, idx, opts)
			if len(results) == 0 {
				fmt.Println("no results")
				return nil
			}
			for i, result := range results {
				fmt.Printf("%2d. %-50s %.6f\n", i+1, result.URI, result.Score)
			}
			return nil
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve ranked queries over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "index", Value: "index.json", Usage: "index file to serve"},
			&cli.StringFlag{Name: "dir", Usage: "rebuild from this directory on SIGHUP instead of re-reading the index file"},
			&cli.BoolFlag{Name: "cache", Usage: "enable the Redis query cache"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			m := metrics.New()
			engine := search.NewEngine(analyzer.NewExtractor())

			var queryCache *search.QueryCache
			checker := health.NewChecker()
			if c.Bool("cache") {
				redisClient, err := pkgredis.NewClient(cfg.Redis)
				if err != nil {
					slog.Warn("redis unavailable, query caching disabled", "error", err)
				} else {
					defer redisClient.Close()
					queryCache = search.NewQueryCache(redisClient, cfg.Redis)
					checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
						if err := redisClient.Ping(ctx); err != nil {
							return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
						}
						return health.ComponentHealth{Status: health.StatusUp}
					})
				}
			}

			handler := server.New(engine, queryCache, m, cfg.Search)
			idx, err := loadIndex(ctx, cfg, m, c.String("index"), c.String("dir"))
			if err != nil {
				return err
			}
			handler.Publish(idx)
			checker.Register("index", func(ctx context.Context) health.ComponentHealth {
				return health.ComponentHealth{Status: health.StatusUp}
			})

			mux := http.NewServeMux()
			mux.HandleFunc("/search", handler.Search)
			mux.HandleFunc("/healthz/live", checker.LiveHandler())
			mux.HandleFunc("/healthz/ready", checker.ReadyHandler())
			wrapped := middleware.Metrics(m)(middleware.Timeout(cfg.Server.RequestTimeout)(mux))

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      wrapped,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			var shutdownMetrics func(context.Context) error
			if cfg.Metrics.Enabled {
				shutdownMetrics = metrics.StartServer(cfg.Metrics.Port)
			}

			// SIGHUP swaps in a freshly built snapshot; in-flight queries
			// keep the one they loaded.
			reload := make(chan os.Signal, 1)
			signal.Notify(reload, syscall.SIGHUP)
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case <-reload:
						fresh, err := loadIndex(ctx, cfg, m, c.String("index"), c.String("dir"))
						if err != nil {
							slog.Error("index reload failed, keeping current snapshot", "error", err)
							continue
						}
						handler.Publish(fresh)
						if queryCache != nil {
							if err := queryCache.Invalidate(ctx); err != nil {
								slog.Warn("query cache not invalidated", "error", err)
							}
						}
					}
				}
			}()

			errCh := make(chan error, 1)
			go func() {
				slog.Info("search server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if shutdownMetrics != nil {
				if err := shutdownMetrics(shutdownCtx); err != nil {
					slog.Warn("metrics server shutdown", "error", err)
				}
			}
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down server: %w", err)
			}
			slog.Info("server stopped")
			return nil
		},
	}
}

// loadIndex either rebuilds from a directory (full pipeline) or decodes an
// existing index file.
func loadIndex(ctx context.Context, cfg *config.Config, m *metrics.Metrics, indexPath, dir string) (*index.SearchIndex, error) {
	if dir == "" {
		data, err := os.ReadFile(indexPath)
		if err != nil {
			return nil, fmt.Errorf("reading index file: %w", err)
		}
		return index.Decode(data)
	}

	docs, err := ingest.NewDirSource(dir, nil).Documents(ctx)
	if err != nil {
		return nil, err
	}
	extracted, err := ingest.ExtractAll(ctx, newStrategy(cfg), docs, cfg.Index.Workers)
	if err != nil {
		return nil, err
	}
	m.DocsExtractedTotal.Add(float64(len(extracted)))
	for _, doc := range extracted {
		m.TermsExtractedTotal.Add(float64(len(doc.Terms)))
	}

	start := time.Now()
	idx := index.Build(extracted, cfg.Index.Version)
	m.IndexBuildDuration.Observe(time.Since(start).Seconds())
	return idx, nil
}
