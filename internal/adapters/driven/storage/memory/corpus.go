package memory

import (
	"sync"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure Corpus implements the interface.
var _ driven.Corpus = (*Corpus)(nil)

// Corpus is the in-process, append-only chunk collection.
// The zero value is ready to use.
type Corpus struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{}
}

// Append adds chunks in order.
func (c *Corpus) Append(chunks ...domain.Chunk) int {
	if len(chunks) == 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chunks = append(c.chunks, chunks...)
	return len(chunks)
}

// All returns a copy of the chunks in insertion order.
func (c *Corpus) All() []domain.Chunk {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Chunk, len(c.chunks))
	copy(out, c.chunks)
	return out
}

// Len returns the number of chunks.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chunks)
}
