package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs"},
	Short:   "List uploaded document records",
	Args:    cobra.NoArgs,
	RunE:    runDocuments,
}

func init() {
	documentsCmd.Flags().BoolVar(&documentsJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(documentsCmd)
}

// documentJSON is the --json shape of a record.
type documentJSON struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FilePath   string `json:"file_path,omitempty"`
	Processed  bool   `json:"processed"`
	ChunkCount int    `json:"chunk_count"`
	UploadedAt string `json:"uploaded_at"`
}

func runDocuments(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	out := cmd.OutOrStdout()
	if documentsJSON {
		rows := make([]documentJSON, len(docs))
		for i, d := range docs {
			rows[i] = documentJSON{
				ID:         d.ID,
				Title:      d.Title,
				FilePath:   d.FilePath,
				Processed:  d.Processed,
				ChunkCount: d.ChunkCount,
				UploadedAt: d.UploadedAt.Format(time.RFC3339),
			}
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents uploaded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCHUNKS\tPROCESSED\tUPLOADED")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%s\n", d.ID, d.Title, d.ChunkCount, d.Processed, d.UploadedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
