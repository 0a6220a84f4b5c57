package simulation

import (
	"testing"

	"github.com/GMaN1911/hologram-cognitive/internal/discovery"
	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
	"github.com/GMaN1911/hologram-cognitive/internal/session"
)

// Runner orchestrates multi-turn simulation experiments against a real
// engine and session.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected per-turn snapshots.
func (r *Runner) Run(scenario Scenario) Result {
	r.t.Helper()

	b := graph.NewBuilder()
	for _, id := range scenario.Nodes {
		b.AddNode(id)
	}
	for _, e := range scenario.Edges {
		b.AddProposal(discovery.Proposal{
			Source:   e.Source,
			Target:   e.Target,
			Strategy: discovery.StrategyReference,
			Weight:   e.Weight,
		})
	}
	g := b.Build()

	cfg := pressure.DefaultConfig()
	if scenario.Config != nil {
		cfg = *scenario.Config
	}

	engine, err := pressure.NewEngine(g, cfg)
	if err != nil {
		r.t.Fatalf("%s: NewEngine: %v", scenario.Name, err)
	}
	sess := session.New(engine, nil, nil)

	result := Result{Config: cfg, Turns: make([]TurnSnapshot, 0, scenario.Turns)}
	for turn := 0; turn < scenario.Turns; turn++ {
		var events []session.Event
		if scenario.EventsFor != nil {
			events = scenario.EventsFor(turn)
		}

		tr, err := sess.RunTurn(events)
		if err != nil {
			r.t.Fatalf("%s: turn %d: %v", scenario.Name, turn, err)
		}

		pressures := make(map[string]float64, g.NodeCount())
		for _, id := range g.Nodes() {
			p, err := engine.Pressure(id)
			if err != nil {
				r.t.Fatalf("%s: turn %d: pressure %s: %v", scenario.Name, turn, id, err)
			}
			pressures[id] = p
		}

		result.Turns = append(result.Turns, TurnSnapshot{
			Result:    tr,
			Pressures: pressures,
			Total:     engine.TotalPressure(),
		})
	}

	return result
}
