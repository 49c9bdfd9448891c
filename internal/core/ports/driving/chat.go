package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ChatService answers chat messages from canned replies or the corpus.
type ChatService interface {
	// Reply returns the chatbot answer to message.
	Reply(ctx context.Context, message string) domain.Response
}
