package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GMaN1911/hologram-cognitive/internal/visualization"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the session graph as DOT or JSON",
		Long: `Render the persisted graph with current pressure state. DOT output
colors nodes by tier (hot, warm, cold) and styles edges by discovery
strategy; pipe it to Graphviz:

  hologram export --format dot | dot -Tsvg -o graph.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			f := visualization.Format(format)
			if f != visualization.FormatDOT && f != visualization.FormatJSON {
				return fmt.Errorf("unknown format %q (want dot or json)", format)
			}

			ctx := context.Background()
			opened, err := openSession(ctx, root)
			if err != nil {
				return err
			}
			defer opened.Close()

			engine := opened.session.Engine()
			g := engine.Graph()
			snap := engine.Snapshot()

			var data []byte
			if f == visualization.FormatDOT {
				data = []byte(visualization.RenderDOT(g, snap))
			} else {
				data, err = json.MarshalIndent(visualization.RenderJSON(g, snap), "", "  ")
				if err != nil {
					return err
				}
				data = append(data, '\n')
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0644)
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot or json")
	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")

	return cmd
}
