package ingest

import (
	"context"

	"github.com/google/uuid"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/pdf"
)

// DocumentStore persists documents for the ingest pipeline.
type DocumentStore interface {
	Insert(ctx context.Context, doc domain.Document) error
	List(ctx context.Context) ([]domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Document, error)
}

// Extractor turns PDF binaries into plain text.
type Extractor interface {
	ExtractBytes(data []byte) (string, error)
	ProcessBatch(ctx context.Context, dir string) ([]pdf.Extracted, error)
}
