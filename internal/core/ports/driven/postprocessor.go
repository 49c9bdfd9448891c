package driven

import (
	"context"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// PostProcessor processes document text to produce chunks.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes a document and returns chunks.
	// A chunk-creating processor receives nil and returns new chunks.
	Process(ctx context.Context, doc *ChunkSource, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the source through all processors in order.
	Process(ctx context.Context, doc *ChunkSource) ([]domain.Chunk, error)
}

// ChunkSource is the text handed to the pipeline together with its labels.
type ChunkSource struct {
	// DocumentID links produced chunks to their metadata record.
	DocumentID string

	// Source is the label copied onto every chunk.
	Source string

	// Text is the full text to split.
	Text string
}
