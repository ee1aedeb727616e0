// Package product reads the externally managed catalog. The search core
// never writes products.
package product

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/rank"
)

// Repo is the Postgres product repository.
type Repo struct {
	pool db.Querier
}

// New creates a product repository.
func New(pool db.Querier) *Repo {
	return &Repo{pool: pool}
}

// SearchByName returns active products whose name contains the query,
// case-insensitively, each with the fixed product match score. Descriptions
// and categories are not searched.
func (r *Repo) SearchByName(ctx context.Context, query string, limit int) ([]domain.Result, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, price, category, created_at
		FROM products
		WHERE is_active = TRUE
		  AND LOWER(name) LIKE '%' || LOWER($1) || '%'
		ORDER BY created_at DESC
		LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		p := domain.Product{IsActive: true}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		results = append(results, domain.ProductResult(p, rank.ProductMatchScore))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return results, nil
}
