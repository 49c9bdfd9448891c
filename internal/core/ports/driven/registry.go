package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// NormaliserRegistry selects the normaliser for a file by its extension.
type NormaliserRegistry interface {
	// Normalise extracts text using the normaliser registered for raw.Extension.
	// Returns domain.ErrUnsupportedFormat when no normaliser matches.
	Normalise(ctx context.Context, raw *domain.RawFile) (*NormaliseResult, error)

	// Register adds a normaliser for each of its extensions.
	Register(normaliser Normaliser)

	// Supports reports whether an extension has a normaliser.
	Supports(ext string) bool

	// SupportedExtensions returns every registered extension, sorted.
	SupportedExtensions() []string
}
