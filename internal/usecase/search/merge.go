package search

import (
	"sort"

	"github.com/kailas-cloud/shopdex/internal/domain"
)

// mergeRanked concatenates per-corpus result lists in the order given
// (documents before products by convention), stable-sorts by descending
// score, and truncates to limit. The stable sort preserves each corpus's
// internal order and the concatenation order on score ties.
func mergeRanked(limit int, lists ...[]domain.Result) []domain.Result {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	merged := make([]domain.Result, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
