package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the current pressure snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			ctx := context.Background()
			opened, err := openSession(ctx, root)
			if err != nil {
				return err
			}
			defer opened.Close()

			stats := opened.session.Stats(nil)

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(stats)
			}

			snap := stats.Snapshot
			fmt.Printf("Turn %d: %d documents, %d edges\n", stats.Turn, snap.NodeCount, stats.EdgeCount)
			fmt.Printf("Total pressure: %.4f (hot %d / warm %d / cold %d)\n",
				snap.TotalPressure, snap.HotCount, snap.WarmCount, snap.ColdCount)

			nodes := snap.Nodes
			sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Pressure > nodes[j].Pressure })
			if limit > 0 && limit < len(nodes) {
				nodes = nodes[:limit]
			}
			for _, n := range nodes {
				fmt.Printf("  %-6s %.4f  %s\n", n.Tier, n.Pressure, n.ID)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum nodes to print, sorted by pressure (0 = all)")

	return cmd
}
