package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/httpapi"
)

var (
	serveAddr  string
	serveWatch string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the JSON HTTP API.

Routes:
  POST /api/upload-text/   {"title": "...", "text": "..."}
  POST /api/upload-file/   multipart form, field "file"
  POST /api/chat/          {"message": "..."}
  POST /api/search/        {"query": "...", "k": 3}
  GET  /api/documents/
  GET  /healthz

Use --watch to ingest a directory and keep ingesting files added to it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().StringVar(&serveWatch, "watch", "", "directory to ingest and watch while serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if ingestService == nil || searchService == nil || chatService == nil {
		return errors.New("services not configured")
	}

	addr := serveAddr
	if addr == "" {
		addr = appSettings.Server.Addr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Ingest:    ingestService,
		Search:    searchService,
		Chat:      chatService,
		Documents: documentService,
	}, httpapi.Options{
		RequestsPerSecond: appSettings.Server.RequestsPerSecond,
		Burst:             appSettings.Server.Burst,
		MaxUploadBytes:    appSettings.Upload.MaxBytes,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveWatch != "" {
		watchErr := make(chan error, 1)
		go func() { watchErr <- watchDir(ctx, cmd.ErrOrStderr(), serveWatch) }()
		defer func() {
			stop()
			<-watchErr
		}()
	}

	printSuccess(cmd.OutOrStdout(), "docchat listening on http://%s", addr)
	return serve(ctx, server, addr)
}

// serve is replaced in tests.
var serve = func(ctx context.Context, s *httpapi.Server, addr string) error {
	return s.ListenAndServe(ctx, addr)
}
