package simulation

import (
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
	"github.com/GMaN1911/hologram-cognitive/internal/session"
)

// Scenario defines a complete simulation experiment.
type Scenario struct {
	Name string

	// Nodes lists documents with no edges of their own. Nodes named in
	// Edges are added implicitly.
	Nodes []string

	// Edges pre-seeds the graph.
	Edges []EdgeSpec

	// Config overrides the engine parameters. Nil means defaults.
	Config *pressure.Config

	// Turns is how many turns to run.
	Turns int

	// EventsFor, when non-nil, is called with the turn index to produce
	// that turn's activation events. Nil means every turn is empty.
	EventsFor func(turn int) []session.Event
}

// EdgeSpec defines a pre-seeded edge in the graph.
type EdgeSpec struct {
	Source string
	Target string
	Weight float64
}

// TurnSnapshot captures the state right after one turn completed.
type TurnSnapshot struct {
	Result    session.TurnResult
	Pressures map[string]float64
	Total     float64
}

// Result captures all turns of a scenario run.
type Result struct {
	Config pressure.Config
	Turns  []TurnSnapshot
}

// Final returns the last turn's snapshot.
func (r Result) Final() TurnSnapshot {
	return r.Turns[len(r.Turns)-1]
}
