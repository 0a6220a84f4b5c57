package session

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/GMaN1911/hologram-cognitive/internal/cluster"
	"github.com/GMaN1911/hologram-cognitive/internal/discovery"
	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
)

func buildGraph(t *testing.T, nodes []string, edges [][2]string) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	for _, id := range nodes {
		b.AddNode(id)
	}
	for _, e := range edges {
		b.AddProposal(discovery.Proposal{
			Source:   e[0],
			Target:   e[1],
			Strategy: discovery.StrategyReference,
			Weight:   1.0,
		})
	}
	return b.Build()
}

func newSession(t *testing.T, g *graph.Graph, cfg pressure.Config) *Session {
	t.Helper()
	engine, err := pressure.NewEngine(g, cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return New(engine, nil, nil)
}

func TestRunTurn_AdvancesTurnCounter(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)
	s := newSession(t, g, pressure.DefaultConfig())

	for i := 0; i < 3; i++ {
		result, err := s.RunTurn(nil)
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		if result.Turn != i {
			t.Errorf("result.Turn = %d, want %d", result.Turn, i)
		}
	}
	if s.Turn() != 3 {
		t.Errorf("Turn() = %d, want 3", s.Turn())
	}
}

func TestRunTurn_ActivationDefaultAmount(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)
	cfg := pressure.DefaultConfig()
	s := newSession(t, g, cfg)

	before, _ := s.Engine().Pressure("a")
	result, err := s.RunTurn([]Event{{DocumentID: "a"}})
	if err != nil {
		t.Fatalf("RunTurn: %v", err)
	}
	if !reflect.DeepEqual(result.Activated, []string{"a"}) {
		t.Errorf("Activated = %v, want [a]", result.Activated)
	}

	// a gets the default boost, then everything decays once. No edges, so
	// propagation moves nothing.
	after, _ := s.Engine().Pressure("a")
	want := (before + cfg.ActivationBoost) * cfg.DecayRate
	if math.Abs(after-want) > 1e-9 {
		t.Errorf("pressure(a) = %g, want %g", after, want)
	}
}

func TestRunTurn_UnknownDocumentIsAtomic(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)
	s := newSession(t, g, pressure.DefaultConfig())

	beforeA, _ := s.Engine().Pressure("a")
	beforeTotal := s.Engine().TotalPressure()

	_, err := s.RunTurn([]Event{{DocumentID: "a"}, {DocumentID: "missing"}})
	if !errors.Is(err, pressure.ErrInvalidNode) {
		t.Fatalf("err = %v, want ErrInvalidNode", err)
	}

	// The bad event is detected before anything mutates, so the first
	// event must not have landed either.
	afterA, _ := s.Engine().Pressure("a")
	if afterA != beforeA {
		t.Errorf("pressure(a) changed on failed turn: %g -> %g", beforeA, afterA)
	}
	if got := s.Engine().TotalPressure(); got != beforeTotal {
		t.Errorf("total pressure changed on failed turn: %g -> %g", beforeTotal, got)
	}
	if s.Turn() != 0 {
		t.Errorf("turn counter advanced on failed turn: %d", s.Turn())
	}
}

func TestRunTurn_NegativeAmountIsAtomic(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)
	s := newSession(t, g, pressure.DefaultConfig())

	beforeA, _ := s.Engine().Pressure("a")
	beforeTotal := s.Engine().TotalPressure()

	// The valid event comes first; the bad amount must be caught during
	// resolution, before the first boost lands.
	_, err := s.RunTurn([]Event{
		{DocumentID: "a", Amount: 0.5},
		{DocumentID: "b", Amount: -1.0},
	})
	if err == nil {
		t.Fatal("negative amount must fail the turn")
	}

	afterA, _ := s.Engine().Pressure("a")
	if afterA != beforeA {
		t.Errorf("pressure(a) changed on failed turn: %g -> %g", beforeA, afterA)
	}
	if got := s.Engine().TotalPressure(); got != beforeTotal {
		t.Errorf("total pressure changed on failed turn: %g -> %g", beforeTotal, got)
	}
	if s.Turn() != 0 {
		t.Errorf("turn counter advanced on failed turn: %d", s.Turn())
	}
}

func TestRunTurn_RedistributionCadence(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, nil)
	cfg := pressure.DefaultConfig()
	cfg.RedistributeInterval = 3
	s := newSession(t, g, cfg)

	var redistributed []bool
	for i := 0; i < 6; i++ {
		result, err := s.RunTurn(nil)
		if err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
		redistributed = append(redistributed, result.Redistributed)
	}

	want := []bool{false, false, true, false, false, true}
	if !reflect.DeepEqual(redistributed, want) {
		t.Errorf("redistribution cadence = %v, want %v", redistributed, want)
	}

	// A redistribution turn ends exactly at budget.
	if _, err := s.RunTurn(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RunTurn(nil); err != nil {
		t.Fatal(err)
	}
	result, err := s.RunTurn(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Redistributed {
		t.Fatal("expected redistribution on turn 8")
	}
	if math.Abs(result.TotalPressure-cfg.TotalBudget) > 1e-9 {
		t.Errorf("total after redistribution = %g, want %g", result.TotalPressure, cfg.TotalBudget)
	}
}

func TestRunTurn_QueryActivation(t *testing.T) {
	g := buildGraph(t, []string{"docs/auth.md", "docs/storage.md", "notes/todo.md"}, nil)
	s := newSession(t, g, pressure.DefaultConfig())

	result, err := s.RunTurn([]Event{{Query: "auth login flow"}})
	if err != nil {
		t.Fatalf("RunTurn: %v", err)
	}
	if !reflect.DeepEqual(result.Activated, []string{"docs/auth.md"}) {
		t.Errorf("Activated = %v, want [docs/auth.md]", result.Activated)
	}
}

func TestRunTurn_UnmatchedQueryIsNoOp(t *testing.T) {
	g := buildGraph(t, []string{"a.md", "b.md"}, nil)
	s := newSession(t, g, pressure.DefaultConfig())

	result, err := s.RunTurn([]Event{{Query: "zzz nothing matches"}})
	if err != nil {
		t.Fatalf("unmatched query must not fail the turn: %v", err)
	}
	if len(result.Activated) != 0 {
		t.Errorf("Activated = %v, want none", result.Activated)
	}
}

func TestResolveQuery(t *testing.T) {
	g := buildGraph(t, []string{"docs/Auth.md", "docs/storage.md", "src/auth_handler.go"}, nil)

	tests := []struct {
		query string
		want  []string
	}{
		{"auth", []string{"docs/Auth.md", "src/auth_handler.go"}},
		{"STORAGE layer", []string{"docs/storage.md"}},
		{"a b", nil}, // all tokens too short
		{"", nil},
		{"unrelated terms", nil},
	}
	for _, tt := range tests {
		if got := ResolveQuery(g, tt.query); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ResolveQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestStats(t *testing.T) {
	g := buildGraph(t, nil, [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}})
	s := newSession(t, g, pressure.DefaultConfig())

	stats := s.Stats(nil)
	if stats.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", stats.EdgeCount)
	}
	if stats.Snapshot.NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", stats.Snapshot.NodeCount)
	}
	if stats.Clusters != nil {
		t.Error("nil detector must yield nil clusters")
	}

	stats = s.Stats(cluster.New("mutual"))
	want := []cluster.Cluster{{"a", "b"}}
	if !reflect.DeepEqual(stats.Clusters, want) {
		t.Errorf("Clusters = %v, want %v", stats.Clusters, want)
	}
}
