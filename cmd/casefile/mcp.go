package main

import (
	"fmt"

	"github.com/aretw0/casefile/internal/cli"
	"github.com/aretw0/casefile/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the session engine as an MCP Server, one tool per engine operation.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError("mcp", runMCP(cmd))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", "", "Listen address for SSE (overrides CASEFILE_MCP_ADDR)")
}

func runMCP(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.MCPAddr, _ = cmd.Flags().GetString("addr")
	}
	debug, _ := cmd.Flags().GetBool("debug")
	// Logs go to stderr so they never corrupt JSON-RPC on stdout.
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return err
	}
	app, err := cli.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := mcp.NewServer(app.Engine, logger)

	transport, _ := cmd.Flags().GetString("transport")
	switch transport {
	case "stdio":
		logger.Info("starting MCP server", "transport", "stdio")
		return srv.ServeStdio()
	case "sse":
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		logger.Info("starting MCP server", "transport", "sse", "addr", cfg.MCPAddr)
		return srv.ServeSSE(ctx, cfg.MCPAddr)
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}
