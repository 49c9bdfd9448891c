package mcp

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides keyword search over the corpus.
	Search driving.SearchService

	// Chat answers chat messages. The chat tool is omitted when nil.
	Chat driving.ChatService

	// Ingest accepts text uploads. The upload_text tool is omitted when nil.
	Ingest driving.IngestService

	// Documents exposes upload records as resources.
	Documents driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
