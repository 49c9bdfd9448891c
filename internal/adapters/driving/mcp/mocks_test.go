package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results []domain.SearchResult
	err     error
	gotK    int
}

func (m *mockSearchService) Search(_ context.Context, _ string, k int) ([]domain.SearchResult, error) {
	m.gotK = k
	return m.results, m.err
}

func (m *mockSearchService) CorpusSize() int {
	return len(m.results)
}

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	response domain.Response
	got      string
}

func (m *mockChatService) Reply(_ context.Context, message string) domain.Response {
	m.got = message
	return m.response
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	response domain.Response
	title    string
	text     string
}

func (m *mockIngestService) UploadText(_ context.Context, title, text string) domain.Response {
	m.title, m.text = title, text
	return m.response
}

func (m *mockIngestService) UploadFile(context.Context, string, io.Reader, int64) domain.Response {
	return m.response
}

func (m *mockIngestService) SupportedExtensions() []string {
	return []string{".docx", ".pdf", ".txt"}
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	err       error
}

func (m *mockDocumentService) List(context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(context.Context, string) (*domain.Document, error) {
	return m.document, m.err
}
