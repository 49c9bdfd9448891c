package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/connectors/filesystem"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/logger"
)

var ingestTitle string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Add documents to the corpus",
	Long: `Record documents in the metadata store and chunk them into the corpus.

The corpus is held in memory, so chunks added here are only searchable by
this process. Combine with --load on serve, chat or search to query them.`,
}

var ingestTextCmd = &cobra.Command{
	Use:   "text [text|-]",
	Short: "Ingest raw text",
	Long:  `Ingest raw text given as arguments, or read from stdin when the argument is "-".`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngestText,
}

var ingestFileCmd = &cobra.Command{
	Use:   "file [path...]",
	Short: "Ingest TXT, PDF or DOCX files and directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngestFile,
}

func init() {
	ingestTextCmd.Flags().StringVarP(&ingestTitle, "title", "t", "", "document title (used as the source label)")
	ingestCmd.AddCommand(ingestTextCmd)
	ingestCmd.AddCommand(ingestFileCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngestText(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	text := strings.Join(args, " ")
	if len(args) == 1 && args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(b)
	}

	resp := ingestService.UploadText(cmd.Context(), ingestTitle, text)
	return printResponse(cmd.OutOrStdout(), resp)
}

func runIngestFile(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	failed, err := ingestPaths(cmd.Context(), cmd.OutOrStdout(), args)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of the files could not be ingested", failed)
	}
	return nil
}

// ingestPaths uploads every file and every supported file under each
// directory. It reports one status line per file to w and returns the
// number of failed uploads. Only unreadable roots are returned as errors.
func ingestPaths(ctx context.Context, w io.Writer, paths []string) (int, error) {
	supported := make(map[string]bool)
	for _, ext := range ingestService.SupportedExtensions() {
		supported[ext] = true
	}
	supports := func(ext string) bool { return supported[ext] }

	failed := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return failed, fmt.Errorf("reading %s: %w", path, err)
		}

		conn := filesystem.New(path, filesystem.WithSupports(supports))
		if !info.IsDir() {
			file, err := conn.Read(path)
			if err != nil {
				return failed, fmt.Errorf("reading %s: %w", path, err)
			}
			if !uploadFile(ctx, w, file) {
				failed++
			}
			continue
		}

		files, errs := conn.FullSync(ctx)
		for file := range files {
			if !uploadFile(ctx, w, file) {
				failed++
			}
		}
		if err := <-errs; err != nil {
			return failed, err
		}
	}
	return failed, nil
}

func uploadFile(ctx context.Context, w io.Writer, file domain.RawFile) bool {
	resp := ingestService.UploadFile(ctx, file.Name, bytes.NewReader(file.Content), int64(len(file.Content)))
	if !resp.OK() {
		logger.Warn("ingest file", "path", file.Path, "error", resp.Message)
		printError(w, fmt.Errorf("%s: %s", file.Path, resp.Message))
		return false
	}
	printSuccess(w, "%s: %s", file.Path, resp.Message)
	return true
}
