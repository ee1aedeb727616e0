package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
)

const cacheKeyPrefix = "shopdex:suggest:"

// kv is the consumer interface for the suggestion cache (ISP).
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSuggester is a read-through cache over a Suggester. Suggestion
// queries are short, repetitive keystrokes, so a small TTL absorbs most of
// the storage load. Cache failures degrade to the uncached path.
type CachedSuggester struct {
	inner      Suggester
	store      kv
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// NewCached creates a caching decorator around a Suggester.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func NewCached(
	inner Suggester,
	store kv,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSuggester {
	return &CachedSuggester{
		inner:      inner,
		store:      store,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Suggest returns cached suggestions or calls the inner suggester.
func (c *CachedSuggester) Suggest(ctx context.Context, query string, limit int) ([]domain.Result, error) {
	key := c.cacheKey(query, limit)

	if results, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return results, nil
	}

	c.incCache("miss")

	results, err := c.inner.Suggest(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	c.putToCache(ctx, key, results)
	return results, nil
}

func (c *CachedSuggester) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSuggester) cacheKey(query string, limit int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%d", query, limit)))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedSuggester) getFromCache(ctx context.Context, key string) ([]domain.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached suggestions", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var results []domain.Result
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Warn("Failed to parse cached suggestions", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return results, true
}

func (c *CachedSuggester) putToCache(ctx context.Context, key string, results []domain.Result) {
	data, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn("Failed to encode suggestions for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache suggestions", zap.String("key", key), zap.Error(err))
	}
}
