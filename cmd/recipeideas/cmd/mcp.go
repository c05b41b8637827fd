package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	mcpserver "github.com/wesm/recipeideas/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server for Claude Desktop integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This lets Claude Desktop (or any MCP client) look up recipes with the
search_recipes, get_recipe, get_recipes and popular_ingredients tools.

Add to Claude Desktop config:
  {
    "mcpServers": {
      "recipeideas": {
        "command": "recipeideas",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol
		l := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel()}))

		client, err := newClient(l)
		if err != nil {
			return err
		}
		return mcpserver.Serve(cmd.Context(), client, cfg.Search.Popular, Version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
