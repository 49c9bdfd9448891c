package driven

import "github.com/custodia-labs/docchat/internal/core/domain"

// Ranker scores chunks against a query and returns the best k.
type Ranker interface {
	// Rank returns at most k positively scored chunks, best first.
	// Ties keep the order of the input slice.
	Rank(chunks []domain.Chunk, query string, k int) []domain.SearchResult
}
