package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the corpus a search result came from.
type Kind string

const (
	KindDocument Kind = "document"
	KindProduct  Kind = "product"
)

// Result is a tagged union of a document or product hit. Kind selects which
// of the corpus-specific fields are populated. Results are produced fresh per
// query and never persisted.
type Result struct {
	ID        uuid.UUID
	Kind      Kind
	Title     string
	Content   string
	Score     float64
	CreatedAt time.Time

	// Document fields (Kind == KindDocument).
	Filename   string
	FilePath   string
	UploadedBy string

	// Product fields (Kind == KindProduct).
	Price    float64
	Category string
}

// DocumentResult builds a Result from a document hit.
func DocumentResult(d Document, score float64) Result {
	title := d.Title
	if title == "" {
		title = d.Filename
	}
	return Result{
		ID:         d.ID,
		Kind:       KindDocument,
		Title:      title,
		Content:    d.Content,
		Score:      score,
		CreatedAt:  d.CreatedAt,
		Filename:   d.Filename,
		FilePath:   d.FilePath,
		UploadedBy: d.UploadedBy,
	}
}

// ProductResult builds a Result from a product hit.
func ProductResult(p Product, score float64) Result {
	return Result{
		ID:        p.ID,
		Kind:      KindProduct,
		Title:     p.Name,
		Content:   p.Description,
		Score:     score,
		CreatedAt: p.CreatedAt,
		Price:     p.Price,
		Category:  p.Category,
	}
}

// Weights holds the per-corpus proportions of a mixed search. Each weight is
// in [0,1]; the per-corpus quota is ceil(limit*weight), so quotas may sum to
// more than the limit; the final list is truncated after the global sort.
type Weights struct {
	Document float64
	Product  float64
}

// DefaultWeights is the 60/40 document/product split.
func DefaultWeights() Weights {
	return Weights{Document: 0.6, Product: 0.4}
}

// DocumentQuota returns ceil(limit * document weight).
func (w Weights) DocumentQuota(limit int) int {
	return int(math.Ceil(float64(limit) * w.Document))
}

// ProductQuota returns ceil(limit * product weight).
func (w Weights) ProductQuota(limit int) int {
	return int(math.Ceil(float64(limit) * w.Product))
}

// Breakdown counts results per corpus in a mixed result list.
type Breakdown struct {
	Documents int
	Products  int
}

// MixedResult is the outcome of one mixed search.
type MixedResult struct {
	Results   []Result
	Breakdown Breakdown
}
