package driving

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// DocumentService exposes uploaded document records.
type DocumentService interface {
	// List returns all records, most recent first.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)
}
