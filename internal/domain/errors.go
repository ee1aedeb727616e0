package domain

import "errors"

var (
	// ErrEmptyQuery signals a blank search query.
	ErrEmptyQuery = errors.New("search query is required")
	// ErrQueryTooShort signals a suggestion query under the minimum length.
	ErrQueryTooShort = errors.New("query must be at least 2 characters")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrNotPDF signals an upload that is not a PDF file.
	ErrNotPDF = errors.New("only PDF files are allowed")
	// ErrNoTextContent signals a PDF with no extractable text.
	ErrNoTextContent = errors.New("no text content found in PDF")
	// ErrExtraction signals an unreadable source document.
	ErrExtraction = errors.New("failed to extract text from PDF")
	// ErrUnauthorized signals a missing or invalid auth token.
	ErrUnauthorized = errors.New("unauthorized")
)
