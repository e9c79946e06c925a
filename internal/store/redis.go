package store

import (
	"context"
	"fmt"
	"strconv"

	pkgredis "github.com/lexirank/lexirank/pkg/redis"
)

const idfHashKey = "lexirank:idf"

// RedisIDFStore is the ephemeral CorpusIDFStore backed by a Redis hash. A
// rebuild clears and rewrites the whole table; readers that find it empty
// fall back to a full rebuild.
type RedisIDFStore struct {
	client *pkgredis.Client
}

var _ CorpusIDFStore = (*RedisIDFStore)(nil)

// NewRedisIDFStore creates the store over an established Redis client.
func NewRedisIDFStore(client *pkgredis.Client) *RedisIDFStore {
	return &RedisIDFStore{client: client}
}

func (s *RedisIDFStore) PutIDF(ctx context.Context, idf map[string]float64) error {
	if err := s.ClearIDF(ctx); err != nil {
		return err
	}
	if len(idf) == 0 {
		return nil
	}
	values := make(map[string]string, len(idf))
	for term, v := range idf {
		values[term] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	if err := s.client.HSet(ctx, idfHashKey, values); err != nil {
		return fmt.Errorf("storing idf table: %w", err)
	}
	return nil
}

func (s *RedisIDFStore) GetIDF(ctx context.Context) (map[string]float64, error) {
	values, err := s.client.HGetAll(ctx, idfHashKey)
	if err != nil {
		return nil, fmt.Errorf("loading idf table: %w", err)
	}
	idf := make(map[string]float64, len(values))
	for term, raw := range values {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing idf for term %q: %w", term, err)
		}
		idf[term] = v
	}
	return idf, nil
}

func (s *RedisIDFStore) ClearIDF(ctx context.Context) error {
	if err := s.client.Del(ctx, idfHashKey); err != nil {
		return fmt.Errorf("clearing idf table: %w", err)
	}
	return nil
}
