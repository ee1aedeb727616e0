// Package memory is an in-memory corpus backend. It scores candidates with
// the same three-signal blend the Postgres backend computes in SQL, which
// keeps the search core agnostic to the index implementation and gives tests
// a backend with no external dependencies.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/rank"
)

// Repo holds documents and products in memory behind a mutex.
type Repo struct {
	mu       sync.RWMutex
	docs     []domain.Document
	products []domain.Product
}

// New creates an empty in-memory repository.
func New() *Repo {
	return &Repo{}
}

// SeedProducts replaces the product catalog.
func (r *Repo) SeedProducts(products []domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append([]domain.Product(nil), products...)
}

// Insert stores a document.
func (r *Repo) Insert(_ context.Context, d domain.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, d)
	return nil
}

// List returns stored documents, newest first.
func (r *Repo) List(_ context.Context) ([]domain.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := append([]domain.Document(nil), r.docs...)
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

// Delete removes a document by id.
func (r *Repo) Delete(_ context.Context, id uuid.UUID) (domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, d := range r.docs {
		if d.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return d, nil
		}
	}
	return domain.Document{}, domain.ErrDocumentNotFound
}

// SearchByRelevance scans all documents, scores each with the blended rank,
// and returns the top candidates ordered by descending score. Ties keep
// insertion order (stable sort).
func (r *Repo) SearchByRelevance(_ context.Context, query string, limit int) ([]domain.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []domain.Result
	for _, d := range r.docs {
		score := rank.Score(query, d.Content, d.Title, d.Filename)
		if score > 0 {
			results = append(results, domain.DocumentResult(d, score))
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SearchByName returns active products whose name contains the query.
// Non-matching products are excluded entirely, not scored zero.
func (r *Repo) SearchByName(_ context.Context, query string, limit int) ([]domain.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []domain.Result
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if rank.ProductMatch(query, p.Name) {
			results = append(results, domain.ProductResult(p, rank.ProductMatchScore))
		}
	}
	if limit >= 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
