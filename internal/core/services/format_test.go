package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 300))
	assert.Equal(t, "abc...", Excerpt("abcdef", 3))
	assert.Equal(t, "abc", Excerpt("abc", 3))

	long := strings.Repeat("가", 400)
	got := Excerpt(long, ExcerptLength)
	assert.Equal(t, ExcerptLength+3, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestFormatResults_Empty(t *testing.T) {
	assert.Empty(t, FormatResults(nil))
}

func TestFormatResults(t *testing.T) {
	results := []domain.SearchResult{
		{Chunk: domain.Chunk{Source: "Handbook", Content: "banana banana"}, Score: 12},
		{Chunk: domain.Chunk{Content: strings.Repeat("x", 350)}, Score: 6},
	}

	out := FormatResults(results)

	assert.True(t, strings.HasPrefix(out, "Here is what I found in your documents:\n\n1. [Handbook]\nbanana banana\n\n2. [unknown source]\n"))
	assert.True(t, strings.HasSuffix(out, strings.Repeat("x", 300)+"..."))
}
