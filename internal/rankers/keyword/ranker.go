// Package keyword ranks chunks by weighted keyword occurrence.
//
// A query is split on whitespace and lower-cased; tokens of two runes or
// fewer are dropped. Each chunk scores the sum over tokens of the token's
// occurrence count in the lower-cased chunk text times the token's length,
// so longer matched words weigh more.
package keyword

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure Ranker implements the interface.
var _ driven.Ranker = Ranker{}

// MinTokenLength is the shortest token that contributes to a score, in runes.
const MinTokenLength = 3

// Ranker adapts Rank to the driven.Ranker port.
type Ranker struct{}

// New returns a keyword ranker.
func New() Ranker {
	return Ranker{}
}

// Rank implements driven.Ranker.
func (Ranker) Rank(chunks []domain.Chunk, query string, k int) []domain.SearchResult {
	return Rank(chunks, query, k)
}

// Tokens returns the scoring tokens of query. Duplicates are kept.
func Tokens(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Score returns the keyword score of text for the given tokens.
func Score(text string, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	score := 0
	for _, tok := range tokens {
		score += strings.Count(lower, tok) * utf8.RuneCountInString(tok)
	}
	return score
}

// Rank returns at most k chunks with a positive score, best first.
// Equal scores keep their order in chunks.
func Rank(chunks []domain.Chunk, query string, k int) []domain.SearchResult {
	if k < 1 || len(chunks) == 0 {
		return []domain.SearchResult{}
	}
	tokens := Tokens(query)
	if len(tokens) == 0 {
		return []domain.SearchResult{}
	}

	results := make([]domain.SearchResult, 0)
	for _, c := range chunks {
		if s := Score(c.Content, tokens); s > 0 {
			results = append(results, domain.SearchResult{Chunk: c, Score: s})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}
