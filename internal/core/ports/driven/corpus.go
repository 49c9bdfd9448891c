package driven

import "github.com/custodia-labs/docchat/internal/core/domain"

// Corpus is the shared, append-only collection of chunks scored at query time.
// Implementations must be safe for concurrent Append and All.
type Corpus interface {
	// Append adds chunks in order and returns how many were appended.
	Append(chunks ...domain.Chunk) int

	// All returns a snapshot of every chunk in insertion order.
	// The snapshot is unaffected by later appends.
	All() []domain.Chunk

	// Len returns the number of chunks.
	Len() int
}
