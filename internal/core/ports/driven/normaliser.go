package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Normaliser extracts plain text from one family of file formats.
type Normaliser interface {
	// SupportedExtensions returns the lower-cased extensions handled, with dot.
	SupportedExtensions() []string

	// Normalise extracts text from a raw file.
	Normalise(ctx context.Context, raw *domain.RawFile) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Text is the extracted plain text.
	Text string

	// Source is the label attached to every chunk of this file.
	Source string
}
