// Package rank scores candidate text against a search query.
//
// A document's score is the maximum of three independent signals: a
// length-normalized token rank, a contiguous-phrase rank, and a fixed
// substring fallback. The fallback guarantees recall for literal matches
// while the rank signals reward proper term matches. Products use a separate
// rule: a case-insensitive name substring match scores a flat 1.0, anything
// else is excluded from candidacy.
package rank

import (
	"math"
	"strings"
	"unicode"
)

// SubstringScore is the fixed score for a literal substring hit.
const SubstringScore = 0.5

// ProductMatchScore is the fixed score for a product name substring hit.
const ProductMatchScore = 1.0

// Score returns the blended relevance of a document candidate: the maximum
// of token rank, phrase rank, and the substring fallback over content, title,
// and filename. Zero means the candidate does not match at all.
func Score(query, content, title, filename string) float64 {
	return max(
		TokenRank(query, content),
		PhraseRank(query, content),
		SubstringFallback(query, content, title, filename),
	)
}

// TokenRank computes an inverted-index style rank: every query term must
// occur in the text; term frequency and first-occurrence position feed the
// score, normalized by text length so long documents are not favored.
// Returns 0 when any term is absent or the query is empty.
func TokenRank(query, text string) float64 {
	terms := Tokenize(query)
	tokens := Tokenize(text)
	if len(terms) == 0 || len(tokens) == 0 {
		return 0
	}

	positions := make(map[string][]int, len(tokens))
	for i, tok := range tokens {
		positions[tok] = append(positions[tok], i)
	}

	var sum float64
	for _, term := range terms {
		occ := positions[term]
		if len(occ) == 0 {
			return 0
		}
		tf := float64(len(occ))
		// earlier first occurrence weighs more
		posWeight := 1.0 / (1.0 + float64(occ[0])/float64(len(tokens)))
		sum += tf / (tf + 1.0) * posWeight
	}

	return sum / float64(len(terms)) * lengthNorm(len(tokens))
}

// PhraseRank is the token rank restricted to contiguous occurrences of the
// whole query. An exact phrase hit scores above the scattered-term rank for
// the same text.
func PhraseRank(query, text string) float64 {
	terms := Tokenize(query)
	tokens := Tokenize(text)
	if len(terms) == 0 || len(tokens) < len(terms) {
		return 0
	}

	occurrences := 0
	first := -1
	for i := 0; i+len(terms) <= len(tokens); i++ {
		if phraseAt(tokens, terms, i) {
			occurrences++
			if first < 0 {
				first = i
			}
		}
	}
	if occurrences == 0 {
		return 0
	}

	tf := float64(occurrences)
	posWeight := 1.0 / (1.0 + float64(first)/float64(len(tokens)))
	// 2x the single-term weighting: contiguous matches outrank scattered ones
	score := 2.0 * (tf / (tf + 1.0)) * posWeight * lengthNorm(len(tokens))
	return math.Min(score, 1.0)
}

// SubstringFallback returns SubstringScore when the lowercased query appears
// anywhere in the lowercased content, title, or filename, else 0.
func SubstringFallback(query, content, title, filename string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	for _, s := range []string{content, title, filename} {
		if strings.Contains(strings.ToLower(s), q) {
			return SubstringScore
		}
	}
	return 0
}

// ProductMatch reports whether a product name contains the query,
// case-insensitively. Descriptions and categories are deliberately not
// searched.
func ProductMatch(query, name string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), q)
}

// Tokenize lowercases and splits on any non-alphanumeric rune.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func phraseAt(tokens, terms []string, i int) bool {
	for j, term := range terms {
		if tokens[i+j] != term {
			return false
		}
	}
	return true
}

func lengthNorm(n int) float64 {
	return 1.0 / (1.0 + math.Log(1.0+float64(n)))
}
