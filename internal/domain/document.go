package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is an ingested PDF: extracted text plus file metadata.
// Content is immutable once stored and never empty at storage time;
// ingestion rejects PDFs that yield no text.
type Document struct {
	ID         uuid.UUID
	Filename   string
	Title      string
	Content    string
	FilePath   string
	UploadedBy string
	CreatedAt  time.Time
}

// NewDocument validates and creates a Document ready for storage.
func NewDocument(filename, title, content, filePath, uploadedBy string) (Document, error) {
	if strings.TrimSpace(content) == "" {
		return Document{}, ErrNoTextContent
	}
	return Document{
		ID:         uuid.New(),
		Filename:   filename,
		Title:      title,
		Content:    content,
		FilePath:   filePath,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
