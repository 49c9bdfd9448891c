package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/services"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"keywords to look for in the uploaded documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default from settings)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string `json:"document_id"`
	Source     string `json:"source"`
	Score      int    `json:"score"`
	Content    string `json:"content"`
}

// ChatInput is the input schema for the chat tool.
type ChatInput struct {
	Message string `json:"message" jsonschema:"the question or message for the chatbot"`
}

// ChatOutput is the output schema for the chat tool.
type ChatOutput struct {
	Status   string `json:"status"`
	Response string `json:"response"`
}

// UploadTextInput is the input schema for the upload_text tool.
type UploadTextInput struct {
	Title string `json:"title,omitempty" jsonschema:"document title used as the source label"`
	Text  string `json:"text" jsonschema:"the document text to add to the corpus"`
}

// UploadTextOutput is the output schema for the upload_text tool.
type UploadTextOutput struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	DocumentID    string `json:"document_id,omitempty"`
	ChunkCount    int    `json:"chunk_count"`
	DocumentCount int    `json:"document_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Keyword search across all uploaded documents",
	}, s.handleSearch)

	if s.ports.Chat != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "chat",
			Description: "Ask the document chatbot a question",
		}, s.handleChat)
	}

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "upload_text",
			Description: "Add a text document to the corpus",
		}, s.handleUploadText)
	}
}

// handleSearch handles the search tool invocation.
// A limit of zero uses the configured default.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	results, err := s.ports.Search.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = SearchResultOutput{
			DocumentID: results[i].Chunk.DocumentID,
			Source:     results[i].Chunk.Source,
			Score:      results[i].Score,
			Content:    services.Excerpt(results[i].Chunk.Content, services.ExcerptLength),
		}
	}

	return nil, output, nil
}

// handleChat handles the chat tool invocation.
func (s *Server) handleChat(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChatInput,
) (*mcp.CallToolResult, ChatOutput, error) {
	resp := s.ports.Chat.Reply(ctx, input.Message)
	return resultFor(resp), ChatOutput{
		Status:   string(resp.Status),
		Response: resp.Message,
	}, nil
}

// handleUploadText handles the upload_text tool invocation.
func (s *Server) handleUploadText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadTextInput,
) (*mcp.CallToolResult, UploadTextOutput, error) {
	resp := s.ports.Ingest.UploadText(ctx, input.Title, input.Text)
	return resultFor(resp), UploadTextOutput{
		Status:        string(resp.Status),
		Message:       resp.Message,
		DocumentID:    resp.DocumentID,
		ChunkCount:    resp.ChunkCount,
		DocumentCount: resp.DocumentCount,
	}, nil
}

// resultFor marks error responses so clients surface them as tool errors.
// Success leaves the result to the SDK, which fills it from the output.
func resultFor(resp domain.Response) *mcp.CallToolResult {
	if resp.OK() {
		return nil
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: resp.Message}},
	}
}
