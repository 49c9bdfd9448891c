package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/services"
	"github.com/custodia-labs/docchat/internal/normalisers"
	"github.com/custodia-labs/docchat/internal/postprocessors"
	"github.com/custodia-labs/docchat/internal/rankers/keyword"
)

// setupTestServices injects real services over in-memory storage and
// returns them for assertions.
func setupTestServices(t *testing.T) *Services {
	t.Helper()

	settings := domain.DefaultAppSettings()
	settings.Storage.Driver = domain.StorageMemory
	settings.Upload.Dir = t.TempDir()

	pipeline, err := postprocessors.DefaultPipeline(settings.Chunking)
	require.NoError(t, err)

	docs := memory.NewDocumentStore()
	corpus := memory.NewCorpus()
	search := services.NewSearchService(corpus, keyword.New(), settings.Search.TopK)

	s := &Services{
		Ingest:      services.NewIngestService(docs, corpus, pipeline, normalisers.NewDefaultRegistry(), settings.Upload),
		Search:      search,
		Chat:        services.NewChatService(search, settings.Search.TopK),
		Documents:   services.NewDocumentService(docs),
		Settings:    services.NewSettingsService(memory.NewConfigStore()),
		AppSettings: settings,
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
	return s
}

// resetFlags restores flag variables that persist between executions.
func resetFlags() {
	configDir, envFile, verbose, loadPaths = "", "", false, nil
	ingestTitle = ""
	searchLimit, searchJSON = 0, false
	chatPlain = false
	documentsJSON = false
	serveAddr, serveWatch = "", ""
	_ = mcpServeCmd.Flags().Set("http", "")
}

// resetContexts clears contexts cobra keeps on subcommands after a run,
// so each execution sees its own context.
func resetContexts(cmd *cobra.Command) {
	cmd.SetContext(nil)
	for _, c := range cmd.Commands() {
		resetContexts(c)
	}
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// cliInput is optional input for runCLIWith.
type cliInput struct {
	ctx   context.Context
	stdin io.Reader
}

// runCLI executes the root command with args and captured output.
func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	return runCLIWith(t, cliInput{}, args...)
}

func runCLIWith(t *testing.T, in cliInput, args ...string) cliResult {
	t.Helper()
	resetFlags()
	resetContexts(rootCmd)

	var stdout, stderr bytes.Buffer
	stdin := in.stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	ctx := in.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	err := rootCmd.ExecuteContext(ctx)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
