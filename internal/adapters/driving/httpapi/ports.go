package httpapi

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates the driving ports the HTTP server calls.
type Ports struct {
	// Ingest accepts text and file uploads.
	Ingest driving.IngestService

	// Search ranks corpus chunks for a query.
	Search driving.SearchService

	// Chat answers chat messages.
	Chat driving.ChatService

	// Documents lists upload records. Optional.
	Documents driving.DocumentService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
