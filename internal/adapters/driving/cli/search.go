package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/services"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search ingested documents",
	Long: `Ranks corpus chunks by keyword overlap with the query.
Each query word of three or more characters scores its occurrence count
times its length; chunks that score zero are left out.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "k", 0, "maximum number of results (default from settings)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchResultJSON is the --json shape of a result.
type searchResultJSON struct {
	DocumentID string `json:"document_id"`
	Source     string `json:"source"`
	Position   int    `json:"position"`
	Score      int    `json:"score"`
	Excerpt    string `json:"excerpt"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		out[i] = searchResultJSON{
			DocumentID: r.Chunk.DocumentID,
			Source:     r.Chunk.Source,
			Position:   r.Chunk.Position,
			Score:      r.Score,
			Excerpt:    services.Excerpt(r.Chunk.Content, services.ExcerptLength),
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintln(out, "Results:")
	fmt.Fprintln(out)
	for i := range results {
		source := results[i].Chunk.Source
		if source == "" {
			source = "unknown source"
		}
		// Format: [N] Source (score)
		fmt.Fprintf(out, "  [%d] %s %s\n", i+1, labelText(source), dimText(fmt.Sprintf("(score %d)", results[i].Score)))
		fmt.Fprintf(out, "      %s\n", services.Excerpt(results[i].Chunk.Content, services.ExcerptLength))
		fmt.Fprintln(out)
	}

	return nil
}
