package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/rankers/keyword"
)

func TestSearchService_EmptyCorpus(t *testing.T) {
	s := NewSearchService(memory.NewCorpus(), keyword.New(), 3)

	results, err := s.Search(context.Background(), "banana", 0)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, s.CorpusSize())
}

func TestSearchService_RanksCorpus(t *testing.T) {
	corpus := memory.NewCorpus()
	corpus.Append(
		domain.Chunk{ID: "one", Content: "I like banana"},
		domain.Chunk{ID: "two", Content: "banana banana split"},
		domain.Chunk{ID: "none", Content: "apples"},
	)
	s := NewSearchService(corpus, keyword.New(), 3)

	results, err := s.Search(context.Background(), "banana", 0)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "two", results[0].Chunk.ID)
	assert.Equal(t, "one", results[1].Chunk.ID)
	assert.Equal(t, 3, s.CorpusSize())
}

func TestSearchService_DefaultK(t *testing.T) {
	ranker := &mockRanker{}
	corpus := memory.NewCorpus()
	corpus.Append(domain.Chunk{ID: "a"})

	s := NewSearchService(corpus, ranker, 5)
	_, err := s.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, ranker.k)
	assert.Len(t, ranker.seen, 1)

	_, err = s.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, ranker.k)

	s = NewSearchService(corpus, ranker, 0)
	_, err = s.Search(context.Background(), "q", -1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopK, ranker.k)
}

func TestSearchService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSearchService(memory.NewCorpus(), keyword.New(), 3).Search(ctx, "q", 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchService_NotConfigured(t *testing.T) {
	s := NewSearchService(nil, nil, 3)

	_, err := s.Search(context.Background(), "q", 1)

	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Zero(t, s.CorpusSize())
}
