package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// ExcerptLength is the maximum excerpt length in runes.
const ExcerptLength = 300

// FormatResults renders ranked results as a numbered list of source and excerpt.
func FormatResults(results []domain.SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Here is what I found in your documents:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "\n%d. [%s]\n%s\n", i+1, sourceLabel(r.Chunk), Excerpt(r.Chunk.Content, ExcerptLength))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Excerpt returns text cut to at most n runes, with "..." appended when cut.
func Excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func sourceLabel(c domain.Chunk) string {
	if c.Source == "" {
		return "unknown source"
	}
	return c.Source
}
