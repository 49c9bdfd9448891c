// Package chunker provides a separator-aware text chunking processor.
//
// Text is split at the earliest-listed separator that occurs in it, small
// pieces are merged back together up to the chunk size, and pieces that are
// still too large are split again with the remaining separators. When no
// separator is left the text is cut into fixed windows of runes.
package chunker

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.PostProcessor = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits document text into overlapping chunks.
// Sizes are measured in runes.
type Processor struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithSeparators sets the split points in preference order.
// An empty separator marks the point where hard cuts take over.
func WithSeparators(separators []string) Option {
	return func(p *Processor) {
		if len(separators) > 0 {
			p.separators = append([]string(nil), separators...)
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: domain.DefaultSeparators(),
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// FromSettings creates a processor from chunking settings.
func FromSettings(s domain.ChunkingSettings) *Processor {
	return New(WithChunkSize(s.ChunkSize), WithOverlap(s.Overlap), WithSeparators(s.Separators))
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured maximum chunk length.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the source text into chunks.
// Input chunks are ignored; this processor creates new chunks from the text.
func (p *Processor) Process(ctx context.Context, src *driven.ChunkSource, _ []domain.Chunk) ([]domain.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, domain.ErrInvalidInput
	}

	texts := p.Split(src.Text)
	if len(texts) == 0 {
		// Empty content produces no chunks
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: src.DocumentID,
			Source:     src.Source,
			Content:    text,
			Position:   i,
		})
	}

	return chunks, nil
}

// Split returns the chunk texts for text in order.
// Whitespace-only input yields no chunks.
func (p *Processor) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return p.split(text, p.separators)
}

func (p *Processor) split(text string, separators []string) []string {
	var (
		separator string
		remaining []string
		found     bool
	)
	for i, sep := range separators {
		if sep == "" {
			break
		}
		if strings.Contains(text, sep) {
			separator, remaining, found = sep, separators[i+1:], true
			break
		}
	}
	if !found {
		return p.hardCut(text)
	}

	var out, small []string
	for _, piece := range splitKeepSeparator(text, separator) {
		if runeLen(piece) < p.chunkSize {
			small = append(small, piece)
			continue
		}
		if len(small) > 0 {
			out = append(out, p.merge(small)...)
			small = nil
		}
		out = append(out, p.split(piece, remaining)...)
	}
	if len(small) > 0 {
		out = append(out, p.merge(small)...)
	}
	return out
}

// merge joins pieces shorter than the chunk size into chunks, carrying
// up to overlap characters of trailing pieces into the next chunk.
func (p *Processor) merge(pieces []string) []string {
	var (
		out     []string
		current []string
		total   int
	)
	for _, piece := range pieces {
		n := runeLen(piece)
		if total+n > p.chunkSize && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
				out = append(out, doc)
			}
			for total > p.overlap || (total+n > p.chunkSize && total > 0) {
				total -= runeLen(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		total += n
	}
	if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
		out = append(out, doc)
	}
	return out
}

// hardCut slices text into windows of chunkSize runes advancing by
// chunkSize-overlap, ending with the window that reaches the end of text.
func (p *Processor) hardCut(text string) []string {
	runes := []rune(text)
	if len(runes) <= p.chunkSize {
		if doc := strings.TrimSpace(text); doc != "" {
			return []string{doc}
		}
		return nil
	}

	step := p.chunkSize - p.overlap
	out := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + p.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if doc := strings.TrimSpace(string(runes[start:end])); doc != "" {
			out = append(out, doc)
		}
		if end == len(runes) {
			break
		}
	}
	return out
}

// splitKeepSeparator splits text on sep, keeping each separator at the
// end of the piece before it. Empty pieces are dropped.
func splitKeepSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
