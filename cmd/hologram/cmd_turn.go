package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GMaN1911/hologram-cognitive/internal/session"
)

func newTurnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn",
		Short: "Run one engine turn against the persisted session",
		Long: `Execute one turn in the fixed order: activation, propagation, decay,
and (on the configured cadence) redistribution. State is persisted
after the turn so repeated invocations form one logical session.

Examples:
  hologram turn --activate docs/auth.md
  hologram turn --query "token refresh flow"
  hologram turn                             # no activation, just advance`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			jsonOut, _ := cmd.Flags().GetBool("json")
			activate, _ := cmd.Flags().GetStringSlice("activate")
			query, _ := cmd.Flags().GetString("query")
			amount, _ := cmd.Flags().GetFloat64("amount")

			ctx := context.Background()
			opened, err := openSession(ctx, root)
			if err != nil {
				return err
			}
			defer opened.Close()

			var events []session.Event
			for _, id := range activate {
				events = append(events, session.Event{DocumentID: id, Amount: amount})
			}
			if query != "" {
				events = append(events, session.Event{Query: query, Amount: amount})
			}

			result, err := opened.session.RunTurn(events)
			if err != nil {
				return err
			}

			snap := opened.session.Engine().Snapshot()
			if err := opened.store.SaveState(ctx, snap, opened.session.Turn()); err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(result)
			}

			fmt.Printf("Turn %d complete\n", result.Turn)
			if len(result.Activated) > 0 {
				fmt.Printf("  activated: %s\n", strings.Join(result.Activated, ", "))
			}
			if result.Redistributed {
				fmt.Printf("  redistributed to budget\n")
			}
			fmt.Printf("  total pressure: %.4f\n", result.TotalPressure)
			return nil
		},
	}

	cmd.Flags().StringSlice("activate", nil, "Document id to activate (repeatable)")
	cmd.Flags().String("query", "", "Free query text resolved to matching document ids")
	cmd.Flags().Float64("amount", 0, "Pressure boost per activation (default: configured activation_boost)")

	return cmd
}
