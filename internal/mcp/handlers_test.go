package mcp

import (
	"context"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GMaN1911/hologram-cognitive/internal/discovery"
	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
	"github.com/GMaN1911/hologram-cognitive/internal/store"
)

// setupTestServer persists a small graph under a temp root and opens a
// server over it: a.md and b.md reference each other, c.md is isolated.
func setupTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	tmpDir := t.TempDir()

	b := graph.NewBuilder()
	b.AddNode("c.md")
	b.AddProposal(discovery.Proposal{Source: "a.md", Target: "b.md", Strategy: discovery.StrategyReference, Weight: 1.0})
	b.AddProposal(discovery.Proposal{Source: "b.md", Target: "a.md", Strategy: discovery.StrategyReference, Weight: 1.0})
	g := b.Build()

	engine, err := pressure.NewEngine(g, pressure.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	st, err := store.Open(tmpDir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := st.SaveGraph(context.Background(), g, engine.Snapshot()); err != nil {
		t.Fatalf("SaveGraph: %v", err)
	}
	st.Close()

	server, err := NewServer(&Config{Name: "test-server", Version: "v0.0.0", Root: tmpDir})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { server.Close() })

	return server, tmpDir
}

func TestHandleRunTurn_PersistsState(t *testing.T) {
	server, tmpDir := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	result, output, err := server.handleRunTurn(ctx, req, RunTurnInput{Activate: []string{"c.md"}})
	if err != nil {
		t.Fatalf("handleRunTurn: %v", err)
	}
	if result != nil {
		t.Error("expected nil result (SDK populates from output)")
	}
	if output.Turn != 0 {
		t.Errorf("Turn = %d, want 0", output.Turn)
	}
	if len(output.Activated) != 1 || output.Activated[0] != "c.md" {
		t.Errorf("Activated = %v, want [c.md]", output.Activated)
	}

	// The handler saves state after the turn: a fresh store handle must
	// see the advanced counter and the session's pressures.
	st, err := store.Open(tmpDir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer st.Close()

	g, err := st.LoadGraph(ctx)
	if err != nil {
		t.Fatalf("LoadGraph: %v", err)
	}
	engine, err := pressure.NewEngine(g, pressure.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	turn, err := st.LoadState(ctx, engine)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if turn != 1 {
		t.Errorf("persisted turn = %d, want 1", turn)
	}
	want, _ := server.session.Engine().Pressure("c.md")
	got, _ := engine.Pressure("c.md")
	if got != want {
		t.Errorf("persisted pressure(c.md) = %g, want %g", got, want)
	}
}

func TestHandleRunTurn_UnknownDocument(t *testing.T) {
	server, _ := setupTestServer(t)
	req := &sdk.CallToolRequest{}

	_, _, err := server.handleRunTurn(context.Background(), req, RunTurnInput{Activate: []string{"missing.md"}})
	if err == nil {
		t.Fatal("unknown document must fail the turn")
	}
	if server.session.Turn() != 0 {
		t.Errorf("turn advanced on failed call: %d", server.session.Turn())
	}
}

func TestHandleStats_SortsAndLimits(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	// Boost the isolated node so the ordering is unambiguous.
	if _, _, err := server.handleRunTurn(ctx, req, RunTurnInput{Activate: []string{"c.md"}, Amount: 2.0}); err != nil {
		t.Fatalf("handleRunTurn: %v", err)
	}

	_, output, err := server.handleStats(ctx, req, StatsInput{Limit: 1})
	if err != nil {
		t.Fatalf("handleStats: %v", err)
	}
	if output.NodeCount != 3 || output.EdgeCount != 2 {
		t.Errorf("counts = %d nodes / %d edges, want 3/2", output.NodeCount, output.EdgeCount)
	}
	if len(output.Nodes) != 1 {
		t.Fatalf("len(Nodes) = %d, want 1 (limit applied)", len(output.Nodes))
	}
	if output.Nodes[0].ID != "c.md" {
		t.Errorf("top node = %s, want c.md (highest pressure)", output.Nodes[0].ID)
	}
	if output.Turn != 1 {
		t.Errorf("Turn = %d, want 1", output.Turn)
	}
}

func TestHandleStats_NoLimitReturnsAll(t *testing.T) {
	server, _ := setupTestServer(t)
	req := &sdk.CallToolRequest{}

	_, output, err := server.handleStats(context.Background(), req, StatsInput{})
	if err != nil {
		t.Fatalf("handleStats: %v", err)
	}
	if len(output.Nodes) != 3 {
		t.Errorf("len(Nodes) = %d, want 3", len(output.Nodes))
	}
}

func TestHandleClusters_AlgorithmValidation(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()
	req := &sdk.CallToolRequest{}

	if _, _, err := server.handleClusters(ctx, req, ClustersInput{Algorithm: "bogus"}); err == nil {
		t.Error("unknown algorithm must be rejected")
	}

	// Empty defaults to mutual.
	_, output, err := server.handleClusters(ctx, req, ClustersInput{})
	if err != nil {
		t.Fatalf("handleClusters: %v", err)
	}
	if output.Algorithm != "mutual" {
		t.Errorf("Algorithm = %s, want mutual (default)", output.Algorithm)
	}
	if output.Count != 1 || len(output.Clusters) != 1 {
		t.Fatalf("Count = %d, want the single a/b pair", output.Count)
	}
	if got := output.Clusters[0]; len(got) != 2 || got[0] != "a.md" || got[1] != "b.md" {
		t.Errorf("cluster = %v, want [a.md b.md]", got)
	}
}

func TestHandleClusters_SCC(t *testing.T) {
	server, _ := setupTestServer(t)
	req := &sdk.CallToolRequest{}

	_, output, err := server.handleClusters(context.Background(), req, ClustersInput{Algorithm: "scc"})
	if err != nil {
		t.Fatalf("handleClusters: %v", err)
	}
	if output.Algorithm != "scc" {
		t.Errorf("Algorithm = %s, want scc", output.Algorithm)
	}
	if output.Count != 1 {
		t.Errorf("Count = %d, want 1 (a/b is a 2-cycle)", output.Count)
	}
}
