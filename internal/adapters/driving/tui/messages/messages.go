// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/docchat/internal/core/domain"
)

// MessageSent is emitted when the user submits a chat message.
type MessageSent struct {
	Text string
}

// ReplyReceived carries the chat reply for a sent message.
type ReplyReceived struct {
	Message  string
	Response domain.Response
}

// Role identifies who wrote a transcript entry.
type Role int

const (
	// RoleUser marks messages typed by the user.
	RoleUser Role = iota
	// RoleBot marks successful replies.
	RoleBot
	// RoleError marks failed replies.
	RoleError
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleBot:
		return "bot"
	case RoleError:
		return "error"
	default:
		return "unknown"
	}
}
