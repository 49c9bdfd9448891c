// Command docchat ingests documents and answers questions about them by
// keyword retrieval, from the terminal, over HTTP or over MCP.
package main

import (
	"os"

	"github.com/custodia-labs/docchat/internal/adapters/driving/cli"
)

func main() {
	cli.SetBootstrap(build)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
