package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

var errMock = errors.New("mock failure")

// mockPipeline returns fixed chunks or an error.
type mockPipeline struct {
	chunks []domain.Chunk
	err    error
	calls  int
	last   *driven.ChunkSource
}

func (m *mockPipeline) Process(_ context.Context, src *driven.ChunkSource) ([]domain.Chunk, error) {
	m.calls++
	m.last = src
	if m.err != nil {
		return nil, m.err
	}
	return m.chunks, nil
}

// flakyDocStore wraps the memory store and fails selected operations.
type flakyDocStore struct {
	*memory.DocumentStore
	failCreate bool
	failUpdate bool
	deleted    []string
}

func newFlakyDocStore() *flakyDocStore {
	return &flakyDocStore{DocumentStore: memory.NewDocumentStore()}
}

func (f *flakyDocStore) Create(ctx context.Context, doc *domain.Document) error {
	if f.failCreate {
		return errMock
	}
	return f.DocumentStore.Create(ctx, doc)
}

func (f *flakyDocStore) Update(ctx context.Context, doc *domain.Document) error {
	if f.failUpdate {
		return errMock
	}
	return f.DocumentStore.Update(ctx, doc)
}

func (f *flakyDocStore) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.DocumentStore.Delete(ctx, id)
}

// mockSearch is a controllable driving.SearchService.
type mockSearch struct {
	size    int
	results []domain.SearchResult
	err     error
	queries []string
	ks      []int
}

func (m *mockSearch) Search(_ context.Context, query string, k int) ([]domain.SearchResult, error) {
	m.queries = append(m.queries, query)
	m.ks = append(m.ks, k)
	return m.results, m.err
}

func (m *mockSearch) CorpusSize() int { return m.size }

// mockRanker records the chunks it was given.
type mockRanker struct {
	seen    []domain.Chunk
	k       int
	results []domain.SearchResult
}

func (m *mockRanker) Rank(chunks []domain.Chunk, _ string, k int) []domain.SearchResult {
	m.seen = chunks
	m.k = k
	return m.results
}
