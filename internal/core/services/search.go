package services

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService ranks corpus chunks against keyword queries.
type SearchService struct {
	corpus driven.Corpus
	ranker driven.Ranker
	topK   int
}

// NewSearchService creates a new search service.
// topK is used when a caller does not ask for a result count.
func NewSearchService(corpus driven.Corpus, ranker driven.Ranker, topK int) *SearchService {
	if topK < 1 {
		topK = domain.DefaultTopK
	}
	return &SearchService{
		corpus: corpus,
		ranker: ranker,
		topK:   topK,
	}
}

// Search ranks a snapshot of the corpus. A k below 1 selects the default.
func (s *SearchService) Search(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.corpus == nil || s.ranker == nil {
		return nil, domain.ErrNotImplemented
	}
	if k < 1 {
		k = s.topK
	}

	chunks := s.corpus.All()
	results := s.ranker.Rank(chunks, query, k)

	logger.Debug("search", "query", query, "k", k, "corpus", len(chunks), "results", len(results))
	return results, nil
}

// CorpusSize returns the number of chunks available for scoring.
func (s *SearchService) CorpusSize() int {
	if s.corpus == nil {
		return 0
	}
	return s.corpus.Len()
}
