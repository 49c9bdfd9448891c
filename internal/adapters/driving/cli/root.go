// Package cli provides the docchat command-line interface built on cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
	"github.com/custodia-labs/docchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipServices marks commands that run without the service graph.
const skipServices = "skip-services"

// Options carries the root flags a Bootstrap needs.
type Options struct {
	// ConfigDir overrides the ~/.docchat configuration directory.
	ConfigDir string
}

// Services holds the driving ports the commands call.
type Services struct {
	Ingest    driving.IngestService
	Search    driving.SearchService
	Chat      driving.ChatService
	Documents driving.DocumentService
	Settings  driving.SettingsService

	// AppSettings are the effective settings after environment overrides.
	AppSettings domain.AppSettings

	// ConfigPath is the settings file location, shown by "config show".
	ConfigPath string

	// Close releases storage handles. May be nil.
	Close func() error
}

// Bootstrap builds the service graph once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	ingestService   driving.IngestService
	searchService   driving.SearchService
	chatService     driving.ChatService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	appSettings     = domain.DefaultAppSettings()
	configPath      string

	bootstrap     Bootstrap
	closeServices func() error
)

var (
	configDir string
	envFile   string
	verbose   bool
	loadPaths []string
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents using keyword retrieval",
	Long: `docchat ingests text, PDF and DOCX documents, splits them into
overlapping chunks and answers questions by keyword overlap scoring.

Chunks live in memory for the lifetime of the process. Use --load to
ingest files or directories before a command runs.`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  preRun,
	PersistentPostRunE: postRun,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docchat)")
	flags.StringVar(&envFile, "env-file", "", "load environment overrides from this file (default .env if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringSliceVarP(&loadPaths, "load", "l", nil, "files or directories to ingest before running the command")
}

// SetServices injects the service graph.
func SetServices(s *Services) {
	if s == nil {
		ingestService, searchService, chatService, documentService, settingsService = nil, nil, nil, nil, nil
		appSettings = domain.DefaultAppSettings()
		configPath = ""
		closeServices = nil
		return
	}
	ingestService = s.Ingest
	searchService = s.Search
	chatService = s.Chat
	documentService = s.Documents
	settingsService = s.Settings
	appSettings = s.AppSettings
	configPath = s.ConfigPath
	closeServices = s.Close
}

// SetBootstrap registers the function that builds services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command and reports errors in red on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if err := loadEnv(envFile); err != nil {
		return err
	}

	if cmd.Annotations[skipServices] == "true" {
		return nil
	}
	if bootstrap != nil && searchService == nil {
		s, err := bootstrap(cmd.Context(), Options{ConfigDir: configDir})
		if err != nil {
			return fmt.Errorf("starting docchat: %w", err)
		}
		SetServices(s)
	}

	if len(loadPaths) > 0 {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}
		if _, err := ingestPaths(cmd.Context(), cmd.ErrOrStderr(), loadPaths); err != nil {
			return err
		}
	}
	return nil
}

func postRun(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// loadEnv reads KEY=value overrides. An explicit file must exist; the
// default .env is optional.
func loadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("ignoring .env", "error", err)
	}
	return nil
}

// termCheck is replaced in tests.
var termCheck = term.IsTerminal

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && termCheck(int(f.Fd()))
}
