package httpapi

import (
	"context"
	"errors"
	"io"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var errMock = errors.New("mock failure")

// mockIngest records the uploads it receives.
type mockIngest struct {
	fileName    string
	fileContent string
	fileSize    int64
}

func (m *mockIngest) UploadText(_ context.Context, title, _ string) domain.Response {
	return domain.Success("text " + title)
}

func (m *mockIngest) UploadFile(_ context.Context, name string, r io.Reader, size int64) domain.Response {
	m.fileName = name
	m.fileSize = size
	b, _ := io.ReadAll(r)
	m.fileContent = string(b)
	return domain.Success("file " + name)
}

func (m *mockIngest) SupportedExtensions() []string {
	return []string{".txt"}
}

type mockSearch struct {
	results []domain.SearchResult
	err     error
	gotK    int
}

func (m *mockSearch) Search(_ context.Context, _ string, k int) ([]domain.SearchResult, error) {
	m.gotK = k
	return m.results, m.err
}

func (m *mockSearch) CorpusSize() int {
	return len(m.results)
}

// panickingChat fails every reply with a panic.
type panickingChat struct{}

func (panickingChat) Reply(context.Context, string) domain.Response {
	panic("boom")
}

type mockDocuments struct {
	docs []domain.Document
	err  error
}

func (m *mockDocuments) List(context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocuments) Get(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}
