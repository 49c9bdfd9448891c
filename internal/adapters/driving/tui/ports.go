// Package tui provides the interactive terminal chat for docchat.
// It is a driving adapter over the chat and search ports.
package tui

import (
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// Ports aggregates the driving ports the chat UI calls.
type Ports struct {
	// Chat answers messages. Required.
	Chat driving.ChatService

	// Search reports the corpus size in the status bar. Optional.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Chat == nil {
		return ErrMissingChatService
	}
	return nil
}
