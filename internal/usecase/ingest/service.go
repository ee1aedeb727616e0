// Package ingest turns uploaded or on-disk PDF files into searchable
// documents.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/pdf"
)

// Service runs the ingestion pipeline: extract text, store the file,
// persist the document record.
type Service struct {
	store         DocumentStore
	extractor     Extractor
	uploadDir     string
	publicPathFmt string
}

// New creates an ingest Service. publicPathFmt is a fmt pattern with one
// %s verb that turns a stored filename into its public path.
func New(store DocumentStore, extractor Extractor, uploadDir, publicPathFmt string) *Service {
	return &Service{
		store:         store,
		extractor:     extractor,
		uploadDir:     uploadDir,
		publicPathFmt: publicPathFmt,
	}
}

// Upload ingests a single in-memory PDF. The file is written under the
// upload directory only after extraction succeeds, and removed again if the
// document record cannot be persisted, so a failed upload leaves no partial
// state behind.
func (s *Service) Upload(ctx context.Context, filename string, content []byte, uploadedBy string) (domain.Document, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrNotPDF, filename)
	}

	text, err := s.extractor.ExtractBytes(content)
	if err != nil {
		return domain.Document{}, err
	}

	filename = filepath.Base(filename)
	if err := os.MkdirAll(s.uploadDir, 0o750); err != nil {
		return domain.Document{}, fmt.Errorf("create upload directory: %w", err)
	}
	path := filepath.Join(s.uploadDir, filename)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return domain.Document{}, fmt.Errorf("store upload: %w", err)
	}

	doc, err := domain.NewDocument(
		filename,
		pdf.DeriveTitle(filename),
		text,
		fmt.Sprintf(s.publicPathFmt, filename),
		uploadedBy,
	)
	if err != nil {
		_ = os.Remove(path)
		return domain.Document{}, err
	}

	if err := s.store.Insert(ctx, doc); err != nil {
		_ = os.Remove(path)
		return domain.Document{}, fmt.Errorf("persist document: %w", err)
	}
	return doc, nil
}

// ProcessDirectory ingests every PDF under dir. Extraction failures are
// skipped inside the batch; a storage failure aborts the run.
func (s *Service) ProcessDirectory(ctx context.Context, dir, uploadedBy string) (int, error) {
	log := logger.FromContext(ctx)

	extracted, err := s.extractor.ProcessBatch(ctx, dir)
	if err != nil {
		return 0, err
	}

	stored := 0
	for _, item := range extracted {
		doc, err := domain.NewDocument(
			item.Filename,
			item.Title,
			item.Content,
			fmt.Sprintf(s.publicPathFmt, item.Filename),
			uploadedBy,
		)
		if err != nil {
			log.Warn("skipping document",
				zap.String("filename", item.Filename),
				zap.Error(err),
			)
			continue
		}

		if err := s.store.Insert(ctx, doc); err != nil {
			return stored, fmt.Errorf("persist document %s: %w", item.Filename, err)
		}
		stored++
	}
	return stored, nil
}

// List returns all stored documents, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Document, error) {
	return s.store.List(ctx)
}

// Delete removes a document record and its stored file. A missing file on
// disk is not an error; the record is the source of truth.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	doc, err := s.store.Delete(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}

	path := filepath.Join(s.uploadDir, doc.Filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.FromContext(ctx).Warn("removing stored file",
			zap.String("path", path),
			zap.Error(err),
		)
	}
	return doc, nil
}
