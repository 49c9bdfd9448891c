package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{
				{
					Chunk: domain.Chunk{
						DocumentID: "doc-1",
						Source:     "Handbook",
						Content:    "This is the content",
					},
					Score: 12,
				},
			},
		}

		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "content", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 5, mockSearch.gotK)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "Handbook", output.Results[0].Source)
		assert.Equal(t, 12, output.Results[0].Score)
		assert.Equal(t, "This is the content", output.Results[0].Content)
	})

	t.Run("long content is excerpted", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{{Chunk: domain.Chunk{Content: strings.Repeat("a", 400)}, Score: 1}},
		}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "aaa"})

		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", 300)+"...", output.Results[0].Content)
	})

	t.Run("zero limit is passed through for the default", func(t *testing.T) {
		mockSearch := &mockSearchService{}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.NoError(t, err)
		assert.Equal(t, 0, mockSearch.gotK)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Results)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{
			err: errors.New("search failed"),
		}
		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "test"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleChat(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		chat := &mockChatService{response: domain.Success("hello there")}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Chat: chat})
		require.NoError(t, err)

		result, output, err := server.handleChat(ctx, nil, ChatInput{Message: "hi"})

		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Equal(t, "hi", chat.got)
		assert.Equal(t, "success", output.Status)
		assert.Equal(t, "hello there", output.Response)
	})

	t.Run("error response is flagged", func(t *testing.T) {
		chat := &mockChatService{response: domain.Failure(errors.New("please enter a message"))}
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Chat: chat})
		require.NoError(t, err)

		result, output, err := server.handleChat(ctx, nil, ChatInput{})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
		require.Len(t, result.Content, 1)
		assert.Equal(t, "please enter a message", result.Content[0].(*mcp.TextContent).Text)
		assert.Equal(t, "error", output.Status)
	})
}

func TestServer_handleUploadText(t *testing.T) {
	ctx := context.Background()

	resp := domain.Success("Text uploaded (2 chunks created)")
	resp.ChunkCount = 2
	resp.DocumentCount = 5
	resp.DocumentID = "doc-9"
	ingest := &mockIngestService{response: resp}

	server, err := NewServer(&Ports{Search: &mockSearchService{}, Ingest: ingest})
	require.NoError(t, err)

	result, output, err := server.handleUploadText(ctx, nil, UploadTextInput{Title: "Notes", Text: "some text"})

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "Notes", ingest.title)
	assert.Equal(t, "some text", ingest.text)
	assert.Equal(t, UploadTextOutput{
		Status:        "success",
		Message:       "Text uploaded (2 chunks created)",
		DocumentID:    "doc-9",
		ChunkCount:    2,
		DocumentCount: 5,
	}, output)
}

func TestResultFor(t *testing.T) {
	assert.Nil(t, resultFor(domain.Success("ok")))

	res := resultFor(domain.Failure(domain.ErrEmptyText))
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}
