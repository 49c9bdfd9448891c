package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the search, chat and upload_text tools and the
docchat://documents resources.

By default, the server communicates over stdio using JSON-RPC. Use --http
to serve the streamable HTTP transport instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  docchat mcp serve --load ./handbook

  # HTTP mode (for MCP Inspector, remote access)
  docchat mcp serve --http 127.0.0.1:8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "docchat": {
        "command": "/path/to/docchat",
        "args": ["mcp", "serve", "--load", "/path/to/docs"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("http", "", "HTTP listen address (empty = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	ports := &mcp.Ports{
		Search:    searchService,
		Chat:      chatService,
		Ingest:    ingestService,
		Documents: documentService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if addr != "" {
		// In stdio mode stdout carries JSON-RPC, so the banner is HTTP only.
		printSuccess(cmd.OutOrStdout(), "MCP server listening on http://%s", addr)
		return runMCP(cmd.Context(), func(ctx context.Context) error { return server.RunHTTP(ctx, addr) })
	}

	return runMCP(cmd.Context(), server.Run)
}

// runMCP is replaced in tests.
var runMCP = func(ctx context.Context, run func(context.Context) error) error {
	return run(ctx)
}
