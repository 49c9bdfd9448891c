package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/connectors/filesystem"
	"github.com/custodia-labs/docchat/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest a directory and every file added to it",
	Long: `Ingest all supported files in a directory, then keep watching it and
ingest files as they are created or saved. Removed files stay in the corpus.

Runs until interrupted. Use "serve --watch" to serve the API at the same time.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watchDir(ctx, cmd.OutOrStdout(), args[0])
}

// watchDir ingests dir, then ingests each change until ctx is done.
func watchDir(ctx context.Context, w io.Writer, dir string) error {
	if _, err := ingestPaths(ctx, w, []string{dir}); err != nil {
		return err
	}

	supported := make(map[string]bool)
	for _, ext := range ingestService.SupportedExtensions() {
		supported[ext] = true
	}
	conn := filesystem.New(dir, filesystem.WithSupports(func(ext string) bool { return supported[ext] }))
	defer conn.Close()

	changes, err := conn.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	printSuccess(w, "watching %s", dir)

	for change := range changes {
		file, err := conn.Read(change.Path)
		if err != nil {
			logger.Warn("read changed file", "path", change.Path, "error", err)
			continue
		}
		logger.Debug("file changed", "path", change.Path, "type", change.Type)
		uploadFile(ctx, w, file)
	}
	return nil
}
