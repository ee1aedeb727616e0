// Package search implements the mixed-corpus search aggregator: per-corpus
// quotas, independent corpus queries, a global stable sort by score, and
// truncation to the overall limit.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

// MinSuggestQueryLen is the minimum query length for suggestions.
const MinSuggestQueryLen = 2

// Service orchestrates search over the document and product corpora.
type Service struct {
	docs         DocumentSearcher
	products     ProductSearcher
	weights      domain.Weights
	defaultLimit int
	maxLimit     int
}

// New creates a search service with the default 60/40 corpus weights.
func New(docs DocumentSearcher, products ProductSearcher) *Service {
	return &Service{
		docs:         docs,
		products:     products,
		weights:      domain.DefaultWeights(),
		defaultLimit: 10,
		maxLimit:     100,
	}
}

// WithWeights overrides the default corpus weights.
func (s *Service) WithWeights(w domain.Weights) *Service {
	if w.Document > 0 || w.Product > 0 {
		s.weights = w
	}
	return s
}

// WithLimits configures the default and maximum result limits.
func (s *Service) WithLimits(defaultLimit, maxLimit int) *Service {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
	return s
}

// SearchMixed searches both corpora and merges the results. Each corpus is
// queried independently with its quota of ceil(limit*weight); sampling the
// quotas before the global sort guarantees a representation floor per corpus,
// so one very strong corpus cannot starve the other. A failure in either
// corpus fails the whole call.
func (s *Service) SearchMixed(
	ctx context.Context, query string, limit int, weights domain.Weights,
) (domain.MixedResult, error) {
	if strings.TrimSpace(query) == "" {
		return domain.MixedResult{}, domain.ErrEmptyQuery
	}
	limit = s.clampLimit(limit)
	if weights.Document <= 0 && weights.Product <= 0 {
		weights = s.weights
	}

	docs, err := s.docs.SearchByRelevance(ctx, query, weights.DocumentQuota(limit))
	if err != nil {
		return domain.MixedResult{}, fmt.Errorf("search documents: %w", err)
	}

	products, err := s.products.SearchByName(ctx, query, weights.ProductQuota(limit))
	if err != nil {
		return domain.MixedResult{}, fmt.Errorf("search products: %w", err)
	}

	merged := mergeRanked(limit, docs, products)
	return domain.MixedResult{
		Results:   merged,
		Breakdown: countByKind(merged),
	}, nil
}

// SearchDocuments searches the document corpus alone.
func (s *Service) SearchDocuments(ctx context.Context, query string, limit int) ([]domain.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	limit = s.clampLimit(limit)

	results, err := s.docs.SearchByRelevance(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return results, nil
}

// Suggest runs the mixed search for short partial queries. The quota and
// merge logic is shared with SearchMixed; only the minimum query length
// differs, and callers render shorter previews.
func (s *Service) Suggest(ctx context.Context, query string, limit int) ([]domain.Result, error) {
	if len(strings.TrimSpace(query)) < MinSuggestQueryLen {
		return nil, domain.ErrQueryTooShort
	}

	mixed, err := s.SearchMixed(ctx, query, limit, s.weights)
	if err != nil {
		return nil, err
	}
	return mixed.Results, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.defaultLimit
	}
	if limit > s.maxLimit {
		return s.maxLimit
	}
	return limit
}

func countByKind(results []domain.Result) domain.Breakdown {
	var b domain.Breakdown
	for _, r := range results {
		switch r.Kind {
		case domain.KindDocument:
			b.Documents++
		case domain.KindProduct:
			b.Products++
		}
	}
	return b
}
