package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// DocumentStore persists document metadata records.
// Chunk text is never stored here.
type DocumentStore interface {
	// Create stores a new document record.
	Create(ctx context.Context, doc *domain.Document) error

	// Update overwrites an existing record.
	// Returns domain.ErrNotFound if the record does not exist.
	Update(ctx context.Context, doc *domain.Document) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all records, most recently uploaded first.
	List(ctx context.Context) ([]domain.Document, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)
}
