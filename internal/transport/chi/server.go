// Package chi exposes the search and document API over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

// Searcher runs full searches over the corpora.
type Searcher interface {
	SearchMixed(ctx context.Context, query string, limit int, weights domain.Weights) (domain.MixedResult, error)
	SearchDocuments(ctx context.Context, query string, limit int) ([]domain.Result, error)
}

// Suggester serves short autocomplete queries. Kept separate from Searcher
// so a caching decorator can wrap suggestions alone.
type Suggester interface {
	Suggest(ctx context.Context, query string, limit int) ([]domain.Result, error)
}

// Ingestor manages the document lifecycle.
type Ingestor interface {
	Upload(ctx context.Context, filename string, content []byte, uploadedBy string) (domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) (domain.Document, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services to the chi router.
type Server struct {
	search         Searcher
	suggest        Suggester
	ingest         Ingestor
	logger         *zap.Logger
	maxUploadBytes int64
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, suggest Suggester, ingest Ingestor, maxUploadBytes int64, logger *zap.Logger) *Server {
	s := &Server{
		search:         search,
		suggest:        suggest,
		ingest:         ingest,
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrQueryTooShort, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotPDF, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNoTextContent, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrExtraction, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, codeUnauthorized),
	}
	return s
}

// Register mounts every route on r. Auth and observability middlewares are
// applied by the caller, above this router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/search/suggestions", s.GetSuggestions)
	r.Post("/search/mixed", s.SearchMixed)
	r.Post("/search", s.SearchDocuments)
	r.Get("/documents", s.ListDocuments)
	r.Post("/documents/upload", s.UploadDocument)
	r.Delete("/documents/{id}", s.DeleteDocument)
}

// GetSuggestions handles GET /search/suggestions.
func (s *Server) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	results, err := s.suggest.Suggest(r.Context(), query, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]suggestionItem, len(results))
	for i, res := range results {
		items[i] = resultToSuggestion(res)
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{
		Query:       query,
		Suggestions: items,
	})
}

// SearchMixed handles POST /search/mixed.
func (s *Server) SearchMixed(w http.ResponseWriter, r *http.Request) {
	var req mixedSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	weights := domain.Weights{Document: req.DocumentRatio, Product: req.ProductRatio}
	mixed, err := s.search.SearchMixed(r.Context(), req.Query, req.Limit, weights)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]resultItem, len(mixed.Results))
	for i, res := range mixed.Results {
		items[i] = resultToItem(res, previewLenSearch)
	}

	writeJSON(w, http.StatusOK, mixedSearchResponse{
		Query:        req.Query,
		SearchType:   "mixed",
		Results:      items,
		TotalResults: len(items),
		Breakdown: breakdown{
			Documents: mixed.Breakdown.Documents,
			Products:  mixed.Breakdown.Products,
		},
	})
}

// SearchDocuments handles POST /search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.search.SearchDocuments(r.Context(), req.Query, req.Limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]resultItem, len(results))
	for i, res := range results {
		items[i] = resultToItem(res, previewLenSearch)
	}

	writeJSON(w, http.StatusOK, documentSearchResponse{
		Query:        req.Query,
		SearchType:   "fts",
		Results:      items,
		TotalResults: len(items),
	})
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.ingest.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]documentItem, len(docs))
	for i, d := range docs {
		items[i] = documentToItem(d)
	}

	writeJSON(w, http.StatusOK, documentListResponse{Documents: items})
}

// UploadDocument handles POST /documents/upload.
func (s *Server) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Failed to read upload")
		return
	}

	doc, err := s.ingest.Upload(r.Context(), header.Filename, content, subjectFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		Message:  "PDF uploaded and processed successfully",
		Document: documentToItem(doc),
	})
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "document id must be a UUID")
		return
	}

	doc, err := s.ingest.Delete(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := deleteResponse{Message: "Document deleted successfully"}
	resp.Document.ID = doc.ID
	resp.Document.Filename = doc.Filename
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeUnauthorized     = "unauthorized"
	codeInternalError    = "internal_error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuery,
		domain.ErrQueryTooShort,
		domain.ErrNotPDF,
		domain.ErrNoTextContent,
		domain.ErrExtraction,
		domain.ErrDocumentNotFound,
		domain.ErrUnauthorized,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
