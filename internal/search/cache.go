package search

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/lexirank/lexirank/pkg/config"
	pkgredis "github.com/lexirank/lexirank/pkg/redis"
)

const cacheKeyPrefix = "lexirank:search:"

// CachedResult is the query-cache envelope stored in Redis.
type CachedResult struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

// QueryCache is a read-through Redis cache for search results, with
// singleflight so concurrent identical queries compute once. The engine
// itself stays pure; only the serving layer goes through the cache.
type QueryCache struct {
	client *pkgredis.Client
	cfg    config.RedisConfig
	group  singleflight.Group
	logger *slog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewQueryCache creates a QueryCache over an established Redis client.
func NewQueryCache(client *pkgredis.Client, cfg config.RedisConfig) *QueryCache {
	return &QueryCache{
		client: client,
		cfg:    cfg,
		logger: slog.Default().With("component", "query-cache"),
	}
}

// GetOrCompute returns the cached result for (query, limit) or invokes
// compute, caching its result. The second return reports a cache hit.
func (c *QueryCache) GetOrCompute(ctx context.Context, query string, limit int, compute func() (*CachedResult, error)) (*CachedResult, bool, error) {
	key := c.buildKey(query, limit)
	if result, ok := c.get(ctx, key); ok {
		return result, true, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*CachedResult), false, nil
}

// Hits returns the number of cache hits since startup.
func (c *QueryCache) Hits() int64 { return c.hits.Load() }

// Misses returns the number of cache misses since startup.
func (c *QueryCache) Misses() int64 { return c.misses.Load() }

func (c *QueryCache) get(ctx context.Context, key string) (*CachedResult, bool) {
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if !pkgredis.IsNilError(err) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		return nil, false
	}
	var result CachedResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &result, true
}

func (c *QueryCache) set(ctx context.Context, key string, result *CachedResult) {
	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, string(data), c.cfg.CacheTTL); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// Invalidate drops every cached search result, typically after an index
// swap.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	deleted, err := c.client.FlushByPattern(ctx, cacheKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating query cache: %w", err)
	}
	c.logger.Info("query cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *QueryCache) buildKey(query string, limit int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, limit)))
	return fmt.Sprintf("%s%x", cacheKeyPrefix, sum[:16])
}
