package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hologram",
		Short: "Hologram - pressure-based document relevance for task streams",
		Long: `hologram maintains a directed graph over a document corpus and a
time-varying pressure on each node, ranking which documents are
currently most relevant to an ongoing task stream.

Edges are discovered from document content; pressure is boosted on
activation, propagated along edges, decayed each turn, and periodically
rescaled so the system-wide total matches a fixed budget.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBuildCmd(),
		newTurnCmd(),
		newStatsCmd(),
		newClustersCmd(),
		newExportCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "hologram version %s\n", version)
			}
		},
	}
}
