package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GMaN1911/hologram-cognitive/internal/cluster"
)

func newClustersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "Detect diagnostic clusters in the document graph",
		Long: `Report groups of mutually reachable documents. Diagnostic output
only: clusters never influence pressure or ranking.

Algorithms:
  mutual  merged bidirectional pairs (fast approximation; misses cycles
          without direct reverse edges)
  scc     exact strongly-connected components (Tarjan)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			algorithm, _ := cmd.Flags().GetString("algorithm")

			if algorithm != "mutual" && algorithm != "scc" {
				return fmt.Errorf("unknown algorithm %q (want 'mutual' or 'scc')", algorithm)
			}

			ctx := context.Background()
			opened, err := openSession(ctx, root)
			if err != nil {
				return err
			}
			defer opened.Close()

			stats := opened.session.Stats(cluster.New(algorithm))

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
					"algorithm": algorithm,
					"count":     len(stats.Clusters),
					"clusters":  stats.Clusters,
				})
			}

			if len(stats.Clusters) == 0 {
				fmt.Println("No clusters found")
				return nil
			}
			fmt.Printf("%d cluster(s) (%s):\n", len(stats.Clusters), algorithm)
			for i, c := range stats.Clusters {
				fmt.Printf("  %d: %s\n", i+1, strings.Join(c, ", "))
			}
			return nil
		},
	}

	cmd.Flags().String("algorithm", "mutual", "Cluster algorithm: mutual or scc")

	return cmd
}
