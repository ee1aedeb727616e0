package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

func seedDocs(t *testing.T, r *Repo, contents ...string) []domain.Document {
	t.Helper()
	var docs []domain.Document
	for i, c := range contents {
		d := domain.Document{
			ID:        uuid.New(),
			Filename:  "doc.pdf",
			Title:     "doc",
			Content:   c,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := r.Insert(context.Background(), d); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		docs = append(docs, d)
	}
	return docs
}

func TestSearchByRelevance_ExcludesNonMatches(t *testing.T) {
	r := New()
	seedDocs(t, r,
		"wireless charging pad review",
		"annual gardening report",
	)

	results, err := r.SearchByRelevance(context.Background(), "wireless", 10)
	if err != nil {
		t.Fatalf("SearchByRelevance: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Score <= 0 {
		t.Errorf("expected positive score, got %f", results[0].Score)
	}
}

func TestSearchByRelevance_OrderedByScoreDesc(t *testing.T) {
	r := New()
	// The phrase-bearing document must outrank a scattered-term document.
	seedDocs(t, r,
		"wireless headsets need separate charging docks at every desk",
		"the wireless charging pad ships this quarter",
	)

	results, err := r.SearchByRelevance(context.Background(), "wireless charging", 10)
	if err != nil {
		t.Fatalf("SearchByRelevance: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted at %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
	if results[0].Content != "the wireless charging pad ships this quarter" {
		t.Errorf("phrase document should rank first, got %q", results[0].Content)
	}
}

func TestSearchByRelevance_LimitTruncates(t *testing.T) {
	r := New()
	seedDocs(t, r,
		"phone case",
		"phone charger",
		"phone stand",
	)

	results, err := r.SearchByRelevance(context.Background(), "phone", 2)
	if err != nil {
		t.Fatalf("SearchByRelevance: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestSearchByName_ActiveNameSubstringOnly(t *testing.T) {
	r := New()
	r.SeedProducts([]domain.Product{
		{ID: uuid.New(), Name: "Wireless Charging Pad", Description: "charger", IsActive: true},
		{ID: uuid.New(), Name: "Bluetooth Speaker", Description: "great wireless sound", IsActive: true},
		{ID: uuid.New(), Name: "Wireless Mouse", IsActive: false},
	})

	results, err := r.SearchByName(context.Background(), "wireless", 10)
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	// The speaker's description says "wireless" but descriptions are never
	// searched; the mouse matches but is inactive.
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Wireless Charging Pad" {
		t.Errorf("unexpected product %q", results[0].Title)
	}
	if results[0].Score != 1.0 {
		t.Errorf("product score = %f, want 1.0", results[0].Score)
	}
}

func TestDelete(t *testing.T) {
	r := New()
	docs := seedDocs(t, r, "some text")

	got, err := r.Delete(context.Background(), docs[0].ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got.ID != docs[0].ID {
		t.Errorf("deleted wrong document")
	}

	if _, err := r.Delete(context.Background(), docs[0].ID); err != domain.ErrDocumentNotFound {
		t.Errorf("second delete should report not found, got %v", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	r := New()
	seedDocs(t, r, "first", "second")

	docs, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Content != "second" {
		t.Errorf("expected newest first, got %q", docs[0].Content)
	}
}
