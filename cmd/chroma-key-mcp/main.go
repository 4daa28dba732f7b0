package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/chroma-key-mcp/internal/server"
	"github.com/spf13/cobra"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "chroma-key-mcp",
	Short: "Remove solid backgrounds from images by RGB threshold",
	Long: `chroma-key-mcp makes every pixel inside an RGB box transparent.

Run without a subcommand it serves the MCP protocol over stdin/stdout;
configure it in your MCP client. The apply subcommand keys a single file.

Environment variables:
  ` + server.EnvLogLevel + `=debug    Enable debug logging
  ` + server.EnvWorkers + `=N         Goroutines per transparency pass (0 = one per CPU)`,
	SilenceUsage: true,
	RunE:         runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv()
	if cfg.Debug {
		log.Printf("Chroma Key MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	return server.NewWithConfig(cfg).Run()
}

func main() {
	server.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
