package keyword

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func chunksOf(texts ...string) []domain.Chunk {
	out := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		out[i] = domain.Chunk{ID: fmt.Sprintf("c%d", i), Content: t, Position: i}
	}
	return out
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"the", "quick", "fox", "fox"}, Tokens("The QUICK a of fox  fox"))
	assert.Empty(t, Tokens("a an to"))
	assert.Empty(t, Tokens("   "))
	assert.Equal(t, []string{"한국어"}, Tokens("한국어 은 가"))
}

func TestScore(t *testing.T) {
	assert.Equal(t, 12, Score("banana BANANA", []string{"banana"}))
	assert.Equal(t, 0, Score("apple", []string{"banana"}))
	assert.Equal(t, 0, Score("anything", nil))
	// duplicate tokens each contribute
	assert.Equal(t, 12, Score("banana", []string{"banana", "banana"}))
}

func TestRank_EmptyCorpus(t *testing.T) {
	results := Rank(nil, "banana", 3)
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRank_NoMatch(t *testing.T) {
	assert.Empty(t, Rank(chunksOf("apple pie", "cherry tart"), "banana", 3))
}

func TestRank_OnlyShortTokens(t *testing.T) {
	assert.Empty(t, Rank(chunksOf("a b c to of"), "a to of", 3))
}

func TestRank_Banana(t *testing.T) {
	chunks := chunksOf("I like banana", "banana banana split", "no fruit here")

	results := Rank(chunks, "banana", 3)

	require.Len(t, results, 2)
	assert.Equal(t, "c1", results[0].Chunk.ID)
	assert.Equal(t, 12, results[0].Score)
	assert.Equal(t, "c0", results[1].Chunk.ID)
	assert.Equal(t, 6, results[1].Score)
}

func TestRank_KBeyondMatchesDoesNotPad(t *testing.T) {
	chunks := chunksOf("golang rocks", "python", "golang golang")

	results := Rank(chunks, "golang", 10)

	assert.Len(t, results, 2)
}

func TestRank_Truncates(t *testing.T) {
	chunks := chunksOf("data one", "data data", "data data data")

	results := Rank(chunks, "data", 2)

	require.Len(t, results, 2)
	assert.Equal(t, "c2", results[0].Chunk.ID)
	assert.Equal(t, "c1", results[1].Chunk.ID)
}

func TestRank_NonPositiveK(t *testing.T) {
	chunks := chunksOf("banana")
	assert.Empty(t, Rank(chunks, "banana", 0))
	assert.Empty(t, Rank(chunks, "banana", -1))
}

func TestRank_CaseInsensitive(t *testing.T) {
	results := Rank(chunksOf("BaNaNa"), "BANANA", 1)
	require.Len(t, results, 1)
	assert.Equal(t, 6, results[0].Score)
}

func TestRank_StableTies(t *testing.T) {
	chunks := chunksOf("golang first", "other", "golang second", "golang third")

	results := Rank(chunks, "golang", 3)

	require.Len(t, results, 3)
	assert.Equal(t, "c0", results[0].Chunk.ID)
	assert.Equal(t, "c2", results[1].Chunk.ID)
	assert.Equal(t, "c3", results[2].Chunk.ID)
}

func TestRank_LongerTokensWeighMore(t *testing.T) {
	chunks := chunksOf("cat cat cat", "elephant")

	results := Rank(chunks, "cat elephant", 2)

	require.Len(t, results, 2)
	assert.Equal(t, "c0", results[0].Chunk.ID)
	assert.Equal(t, 9, results[0].Score)
	assert.Equal(t, 8, results[1].Score)
}

func TestRanker_Port(t *testing.T) {
	results := New().Rank(chunksOf("banana"), "banana", 3)
	assert.Len(t, results, 1)
}
