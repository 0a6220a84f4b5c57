package mcp

import (
	"context"
	"fmt"
	"sort"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GMaN1911/hologram-cognitive/internal/cluster"
	"github.com/GMaN1911/hologram-cognitive/internal/session"
)

// registerTools registers all hologram MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "hologram_turn",
		Description: "Run one engine turn: activate documents, propagate pressure, decay, and restore conservation on the configured cadence",
	}, s.handleRunTurn)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "hologram_stats",
		Description: "Get the current pressure snapshot: per-document pressure and tier, totals, and tier counts",
	}, s.handleStats)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "hologram_clusters",
		Description: "Detect diagnostic clusters in the document graph (mutual-pair approximation or exact strongly-connected components)",
	}, s.handleClusters)
}

// handleRunTurn executes one turn and persists the resulting state.
func (s *Server) handleRunTurn(ctx context.Context, req *sdk.CallToolRequest, args RunTurnInput) (*sdk.CallToolResult, RunTurnOutput, error) {
	var events []session.Event
	for _, id := range args.Activate {
		events = append(events, session.Event{DocumentID: id, Amount: args.Amount})
	}
	if args.Query != "" {
		events = append(events, session.Event{Query: args.Query, Amount: args.Amount})
	}

	result, err := s.session.RunTurn(events)
	if err != nil {
		return nil, RunTurnOutput{}, err
	}

	snap := s.session.Engine().Snapshot()
	if err := s.store.SaveState(ctx, snap, s.session.Turn()); err != nil {
		return nil, RunTurnOutput{}, fmt.Errorf("persist state: %w", err)
	}

	out := RunTurnOutput{
		Turn:          result.Turn,
		Activated:     result.Activated,
		Redistributed: result.Redistributed,
		TotalPressure: result.TotalPressure,
	}
	return nil, out, nil
}

// handleStats returns the diagnostics snapshot without clusters.
func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args StatsInput) (*sdk.CallToolResult, StatsOutput, error) {
	stats := s.session.Stats(nil)

	nodes := make([]NodeStats, 0, len(stats.Snapshot.Nodes))
	for _, n := range stats.Snapshot.Nodes {
		nodes = append(nodes, NodeStats{ID: n.ID, Pressure: n.Pressure, Tier: string(n.Tier)})
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Pressure > nodes[j].Pressure })
	if args.Limit > 0 && args.Limit < len(nodes) {
		nodes = nodes[:args.Limit]
	}

	out := StatsOutput{
		Turn:          stats.Turn,
		NodeCount:     stats.Snapshot.NodeCount,
		EdgeCount:     stats.EdgeCount,
		TotalPressure: stats.Snapshot.TotalPressure,
		HotCount:      stats.Snapshot.HotCount,
		WarmCount:     stats.Snapshot.WarmCount,
		ColdCount:     stats.Snapshot.ColdCount,
		Nodes:         nodes,
	}
	return nil, out, nil
}

// handleClusters runs the selected cluster detector.
func (s *Server) handleClusters(ctx context.Context, req *sdk.CallToolRequest, args ClustersInput) (*sdk.CallToolResult, ClustersOutput, error) {
	algorithm := args.Algorithm
	if algorithm == "" {
		algorithm = "mutual"
	}
	if algorithm != "mutual" && algorithm != "scc" {
		return nil, ClustersOutput{}, fmt.Errorf("unknown algorithm %q (want 'mutual' or 'scc')", algorithm)
	}

	stats := s.session.Stats(cluster.New(algorithm))

	clusters := make([][]string, 0, len(stats.Clusters))
	for _, c := range stats.Clusters {
		clusters = append(clusters, []string(c))
	}

	out := ClustersOutput{
		Algorithm: algorithm,
		Count:     len(clusters),
		Clusters:  clusters,
	}
	return nil, out, nil
}
