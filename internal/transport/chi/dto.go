package chi

import (
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

const (
	previewLenSuggest = 100
	previewLenSearch  = 500
)

type mixedSearchRequest struct {
	Query         string  `json:"query"`
	Limit         int     `json:"limit"`
	DocumentRatio float64 `json:"documentRatio"`
	ProductRatio  float64 `json:"productRatio"`
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// resultItem is one search hit on the wire. Corpus-specific fields are
// omitted when empty, so a document hit carries no price and a product hit
// no filename.
type resultItem struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Similarity float64   `json:"similarity"`
	Filename   string    `json:"filename,omitempty"`
	FilePath   string    `json:"filePath,omitempty"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
	Price      float64   `json:"price,omitempty"`
	Category   string    `json:"category,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type breakdown struct {
	Documents int `json:"documents"`
	Products  int `json:"products"`
}

type mixedSearchResponse struct {
	Query        string       `json:"query"`
	SearchType   string       `json:"searchType"`
	Results      []resultItem `json:"results"`
	TotalResults int          `json:"totalResults"`
	Breakdown    breakdown    `json:"breakdown"`
}

type documentSearchResponse struct {
	Query        string       `json:"query"`
	SearchType   string       `json:"searchType"`
	Results      []resultItem `json:"results"`
	TotalResults int          `json:"totalResults"`
}

type suggestionItem struct {
	ID       uuid.UUID `json:"id"`
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Preview  string    `json:"preview"`
	Filename string    `json:"filename,omitempty"`
	FilePath string    `json:"filePath,omitempty"`
	Price    float64   `json:"price,omitempty"`
	Category string    `json:"category,omitempty"`
}

type suggestionsResponse struct {
	Query       string           `json:"query"`
	Suggestions []suggestionItem `json:"suggestions"`
}

type documentItem struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Title     string    `json:"title"`
	FilePath  string    `json:"filePath"`
	CreatedAt time.Time `json:"createdAt"`
}

type documentListResponse struct {
	Documents []documentItem `json:"documents"`
}

type uploadResponse struct {
	Message  string       `json:"message"`
	Document documentItem `json:"document"`
}

type deleteResponse struct {
	Message  string `json:"message"`
	Document struct {
		ID       uuid.UUID `json:"id"`
		Filename string    `json:"filename"`
	} `json:"document"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func resultToItem(r domain.Result, previewLen int) resultItem {
	return resultItem{
		ID:         r.ID,
		Type:       string(r.Kind),
		Title:      r.Title,
		Content:    preview(r.Content, previewLen),
		Similarity: r.Score,
		Filename:   r.Filename,
		FilePath:   r.FilePath,
		UploadedBy: r.UploadedBy,
		Price:      r.Price,
		Category:   r.Category,
		CreatedAt:  r.CreatedAt,
	}
}

func resultToSuggestion(r domain.Result) suggestionItem {
	return suggestionItem{
		ID:       r.ID,
		Type:     string(r.Kind),
		Title:    r.Title,
		Preview:  preview(r.Content, previewLenSuggest),
		Filename: r.Filename,
		FilePath: r.FilePath,
		Price:    r.Price,
		Category: r.Category,
	}
}

func documentToItem(d domain.Document) documentItem {
	return documentItem{
		ID:        d.ID,
		Filename:  d.Filename,
		Title:     d.Title,
		FilePath:  d.FilePath,
		CreatedAt: d.CreatedAt,
	}
}

// preview truncates content to at most n runes and marks the cut.
func preview(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n]) + "..."
}
