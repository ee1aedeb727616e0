package search

import (
	"context"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

// DocumentSearcher queries the document corpus by blended relevance.
// Implementations return at most limit candidates ordered by descending
// score; ties keep the corpus-native retrieval order.
type DocumentSearcher interface {
	SearchByRelevance(ctx context.Context, query string, limit int) ([]domain.Result, error)
}

// ProductSearcher queries the product corpus by name substring. Only active
// products whose name contains the query are returned; everything else is
// excluded from candidacy.
type ProductSearcher interface {
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Result, error)
}

// Suggester produces autocomplete suggestions for short partial queries.
// CachedSuggester decorates it.
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]domain.Result, error)
}
