package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. The catalog is managed externally; the search
// core reads it and never writes. Only active products are searchable.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Category    string
	IsActive    bool
	CreatedAt   time.Time
}
