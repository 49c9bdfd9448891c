package domain

// SearchResult is a single ranked match.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the keyword-overlap score: the sum over query tokens of
	// occurrences times token length. Always positive for returned results.
	Score int
}
