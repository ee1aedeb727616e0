// Package pdf extracts plain text from PDF files for indexing.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/domain"
	"github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/metrics"
)

// Extracted is the output of processing one PDF file.
type Extracted struct {
	Filename string
	FilePath string
	Title    string
	Content  string
}

// Extractor converts PDF binaries into plain text. The zero value is ready
// to use.
type Extractor struct{}

// New creates an Extractor.
func New() Extractor {
	return Extractor{}
}

// Extract parses PDF bytes and returns the plain text of all pages.
// Returns domain.ErrExtraction when the file cannot be parsed and
// domain.ErrNoTextContent when parsing succeeds but yields no text.
func (Extractor) Extract(r io.ReaderAt, size int64) (content string, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if rvr := recover(); rvr != nil {
			err = fmt.Errorf("%w: %v", domain.ErrExtraction, rvr)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	text := buf.String()
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrNoTextContent
	}
	return text, nil
}

// ExtractBytes parses an in-memory PDF.
func (e Extractor) ExtractBytes(data []byte) (string, error) {
	return e.Extract(bytes.NewReader(data), int64(len(data)))
}

// ExtractFile parses a PDF on disk.
func (e Extractor) ExtractFile(path string) (string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}
	return e.Extract(f, info.Size())
}

// ProcessBatch extracts every *.pdf file in dir. A failure on one file is
// logged and skipped; the batch continues. N files with K malformed yield
// exactly N-K entries.
func (e Extractor) ProcessBatch(ctx context.Context, dir string) ([]Extracted, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var results []Extracted
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := e.ExtractFile(path)
		if err != nil {
			metrics.IngestFilesFailed.Inc()
			log.Warn("skipping file",
				zap.String("filename", entry.Name()),
				zap.Error(err),
			)
			continue
		}

		metrics.IngestFilesProcessed.Inc()
		results = append(results, Extracted{
			Filename: entry.Name(),
			FilePath: path,
			Title:    DeriveTitle(entry.Name()),
			Content:  content,
		})
	}
	return results, nil
}

// DeriveTitle turns a filename into a display title: the extension is
// stripped and separator characters become spaces.
func DeriveTitle(filename string) string {
	title := strings.TrimSuffix(filename, filepath.Ext(filename))
	return strings.NewReplacer("-", " ", "_", " ").Replace(title)
}
