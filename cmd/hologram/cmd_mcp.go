package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GMaN1911/hologram-cognitive/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Serve the session over the Model Context Protocol so an agent host
can drive turns and read the pressure snapshot.

Tools: hologram_turn, hologram_stats, hologram_clusters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "hologram",
				Version: version,
				Root:    root,
			})
			if err != nil {
				return fmt.Errorf("start MCP server: %w", err)
			}

			return server.Run(context.Background())
		},
	}
}
