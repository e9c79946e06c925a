// Package server exposes the query engine over HTTP for the serve command.
// The published index is held behind an atomic pointer: rebuilds swap in a
// complete new snapshot, so in-flight queries never observe a partially
// built index.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/lexirank/lexirank/internal/index"
	"github.com/lexirank/lexirank/internal/search"
	"github.com/lexirank/lexirank/pkg/config"
	"github.com/lexirank/lexirank/pkg/metrics"
)

// SearchResponse is the JSON envelope returned by the /search endpoint.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	TookMS  int64           `json:"took_ms"`
	Cached  bool            `json:"cached"`
}

// Handler serves ranked queries over the currently published index.
type Handler struct {
	engine  *search.Engine
	cache   *search.QueryCache
	metrics *metrics.Metrics
	cfg     config.SearchConfig
	current atomic.Pointer[index.SearchIndex]
	logger  *slog.Logger
}

// New creates a Handler. cache and m may be nil; caching and metrics are then
// disabled.
func New(engine *search.Engine, cache *search.QueryCache, m *metrics.Metrics, cfg config.SearchConfig) *Handler {
	return &Handler{
		engine:  engine,
		cache:   cache,
		metrics: m,
		cfg:     cfg,
		logger:  slog.Default().With("component", "search-handler"),
	}
}

// Publish atomically swaps in a freshly built index. Concurrent queries keep
// reading whichever snapshot they already loaded.
func (h *Handler) Publish(idx *index.SearchIndex) {
	h.current.Store(idx)
	if h.metrics != nil {
		h.metrics.IndexedDocuments.Set(float64(idx.TotalDocuments))
		h.metrics.VocabularySize.Set(float64(len(idx.IDF)))
	}
	h.logger.Info("index published",
		"documents", idx.TotalDocuments,
		"vocabulary", len(idx.IDF),
		"generated_at", idx.Metadata.GeneratedAt,
	)
}

// Search handles GET /search?q=...&limit=...&min_score=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	opts := h.options()
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if h.cfg.MaxResults > 0 && parsed > h.cfg.MaxResults {
			parsed = h.cfg.MaxResults
		}
		opts.Limit = parsed
	}
	if minStr := r.URL.Query().Get("min_score"); minStr != "" {
		parsed, err := strconv.ParseFloat(minStr, 64)
		if err != nil || parsed < 0 {
			h.writeError(w, http.StatusBadRequest, "min_score must be a non-negative number")
			return
		}
		opts.MinScore = parsed
	}

	idx := h.current.Load()
	if idx == nil {
		// No index published yet: empty results, not an error.
		h.writeJSON(w, http.StatusOK, &SearchResponse{Query: query, Results: []search.Result{}})
		return
	}

	var results []search.Result
	cached := false
	if h.cache != nil {
		entry, hit, err := h.cache.GetOrCompute(ctx, query, opts.Limit, func() (*search.CachedResult, error) {
			return &search.CachedResult{
				Query:   query,
				Results: h.engine.Search(query, idx, opts),
			}, nil
		})
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		results, cached = entry.Results, hit
	} else {
		results = h.engine.Search(query, idx, opts)
	}

	took := time.Since(start)
	if h.metrics != nil {
		resultType := "hit"
		if len(results) == 0 {
			resultType = "zero_result"
		}
		cacheStatus := "miss"
		if cached {
			cacheStatus = "hit"
		}
		if h.cache != nil {
			if cached {
				h.metrics.CacheHitsTotal.Inc()
			} else {
				h.metrics.CacheMissesTotal.Inc()
			}
		}
		h.metrics.SearchQueriesTotal.WithLabelValues(resultType).Inc()
		h.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(took.Seconds())
		h.metrics.SearchResultsCount.Observe(float64(len(results)))
	}
	h.logger.Debug("query served",
		"query", query,
		"results", len(results),
		"cached", cached,
		"took", took,
	)

	h.writeJSON(w, http.StatusOK, &SearchResponse{
		Query:   query,
		Results: results,
		TookMS:  took.Milliseconds(),
		Cached:  cached,
	})
}

func (h *Handler) options() search.Options {
	opts := search.DefaultOptions()
	if h.cfg.Limit > 0 {
		opts.Limit = h.cfg.Limit
	}
	if h.cfg.MinScore > 0 {
		opts.MinScore = h.cfg.MinScore
	}
	if h.cfg.ExactMatchBoost > 0 {
		opts.ExactMatchBoost = h.cfg.ExactMatchBoost
	}
	if h.cfg.TechnicalBoost > 0 {
		opts.TechnicalBoost = h.cfg.TechnicalBoost
	}
	if h.cfg.IdentifierBoost > 0 {
		opts.IdentifierBoost = h.cfg.IdentifierBoost
	}
	if h.cfg.PhraseBoost > 0 {
		opts.PhraseBoost = h.cfg.PhraseBoost
	}
	if h.cfg.PartialMatchBoost > 0 {
		opts.PartialMatchBoost = h.cfg.PartialMatchBoost
	}
	return opts
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("writing response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
