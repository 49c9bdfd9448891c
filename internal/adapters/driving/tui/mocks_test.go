package tui

import (
	"context"
	"errors"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// mockChat answers with a fixed response and records messages.
type mockChat struct {
	resp     domain.Response
	messages []string
}

func (m *mockChat) Reply(_ context.Context, message string) domain.Response {
	m.messages = append(m.messages, message)
	return m.resp
}

type mockSearch struct {
	size int
}

func (m *mockSearch) Search(context.Context, string, int) ([]domain.SearchResult, error) {
	return nil, errors.New("not used")
}

func (m *mockSearch) CorpusSize() int {
	return m.size
}
