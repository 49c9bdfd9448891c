package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// SearchService provides keyword search over the corpus.
type SearchService interface {
	// Search returns up to k ranked chunks. A k below 1 selects the configured default.
	Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error)

	// CorpusSize returns the number of chunks available for scoring.
	CorpusSize() int
}
