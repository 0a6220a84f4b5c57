package pressure

import (
	"fmt"

	"github.com/GMaN1911/hologram-cognitive/internal/graph"
)

// nodeState is the mutable per-document state.
// The tier is deliberately absent: it is derived from RawPressure on
// demand so the two can never disagree.
type nodeState struct {
	rawPressure     float64
	lastActivated   int // turn index, -1 when never
	lastResurrected int // turn index, -1 when never
}

// Engine owns the per-node pressure state for one session.
// It is a single-threaded turn-based state machine: the caller must
// serialize turns (session.Session holds one mutation lock per turn).
//
// Fixed ordering within a turn: ApplyActivation -> Propagate ->
// ApplyDecay -> (every RedistributeInterval turns) Redistribute.
// Reordering changes numerical results.
type Engine struct {
	config Config
	graph  *graph.Graph
	nodes  map[string]*nodeState
}

// NewEngine creates an engine over the given graph. Every graph node gets
// a state entry with an equal share of the pressure budget, so the
// conservation invariant holds from the first turn. The configuration is
// validated here and immutable afterwards.
func NewEngine(g *graph.Graph, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config: config,
		graph:  g,
		nodes:  make(map[string]*nodeState, g.NodeCount()),
	}

	initial := 0.0
	if g.NodeCount() > 0 {
		initial = config.TotalBudget / float64(g.NodeCount())
	}
	for _, id := range g.Nodes() {
		e.nodes[id] = &nodeState{
			rawPressure:     initial,
			lastActivated:   -1,
			lastResurrected: -1,
		}
	}
	return e, nil
}

// Config returns the engine's immutable configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Graph returns the graph the engine propagates over.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Pressure returns the current raw pressure of a node.
func (e *Engine) Pressure(id string) (float64, error) {
	n, ok := e.nodes[id]
	if !ok {
		return 0, fmt.Errorf("pressure of %q: %w", id, ErrInvalidNode)
	}
	return n.rawPressure, nil
}

// Tier returns the node's current tier, derived from its raw pressure.
func (e *Engine) Tier(id string) (Tier, error) {
	n, ok := e.nodes[id]
	if !ok {
		return "", fmt.Errorf("tier of %q: %w", id, ErrInvalidNode)
	}
	return e.config.TierFor(n.rawPressure), nil
}

// ApplyActivation adds amount to the node's pressure and records the
// activation turn. There is no upper clamp; the next redistribution
// restores the budget. Fails atomically with ErrInvalidNode on an unknown
// id: no state is mutated.
func (e *Engine) ApplyActivation(id string, amount float64, turn int) error {
	n, ok := e.nodes[id]
	if !ok {
		return fmt.Errorf("activate %q: %w", id, ErrInvalidNode)
	}
	if amount < 0 {
		return fmt.Errorf("activate %q: amount must be non-negative, got %g", id, amount)
	}

	if e.config.ConservativeActivation && len(e.nodes) > 1 {
		// Pay for the boost immediately by draining the others evenly,
		// instead of waiting for the next redistribution.
		drain := amount / float64(len(e.nodes)-1)
		for otherID, other := range e.nodes {
			if otherID == id {
				continue
			}
			other.rawPressure -= drain
			if other.rawPressure < 0 {
				other.rawPressure = 0
			}
		}
	}

	n.rawPressure += amount
	n.lastActivated = turn
	return nil
}

// Propagate pushes pressure one hop along outgoing edges. Every node
// whose pre-propagation pressure exceeds MinPropagationPressure and that
// has outgoing edges distributes its entire pressure across its
// neighbors, proportional to edge weight over the node's total outgoing
// weight. Amounts pushed and received are computed against a snapshot of
// the pre-propagation pressures, so a node's own push is unaffected by
// pressure it receives in the same turn. Exactly one hop per call; the
// pass never iterates to a fixpoint.
func (e *Engine) Propagate(turn int) {
	// Snapshot pre-propagation pressures.
	snapshot := make(map[string]float64, len(e.nodes))
	for id, n := range e.nodes {
		snapshot[id] = n.rawPressure
	}

	deltas := make(map[string]float64)
	for _, id := range e.graph.Nodes() {
		p := snapshot[id]
		if p <= e.config.MinPropagationPressure {
			continue
		}
		total := e.graph.TotalOutWeight(id)
		if total <= 0 {
			continue
		}
		for _, edge := range e.graph.Outgoing(id) {
			flow := p * edge.Weight / total
			deltas[edge.Target] += flow
			deltas[id] -= flow
		}
	}

	for id, delta := range deltas {
		n := e.nodes[id]
		n.rawPressure += delta
		if n.rawPressure < 0 {
			// Float noise only: the outflow fractions sum to the
			// snapshot pressure exactly in real arithmetic.
			n.rawPressure = 0
		}
	}
}

// ApplyDecay multiplies every node's pressure by the decay rate. With
// resurrection enabled, a node that falls below the resurrection
// threshold wraps around to ResurrectionConfig.Pressure once per
// cooldown window; while in cooldown it is clamped at the threshold
// instead of decaying further toward zero.
//
// Resurrection can transiently break conservation; the next scheduled
// Redistribute corrects it.
func (e *Engine) ApplyDecay(turn int) {
	r := e.config.Resurrection
	for _, n := range e.nodes {
		n.rawPressure *= e.config.DecayRate

		if !r.Enabled || n.rawPressure >= r.Threshold {
			continue
		}
		if n.lastResurrected < 0 || turn-n.lastResurrected >= r.Cooldown {
			n.rawPressure = r.Pressure
			n.lastResurrected = turn
		} else {
			n.rawPressure = r.Threshold
		}
	}
}

// Redistribute rescales every node's pressure by a single ratio so the
// system-wide total equals TotalBudget again. Drift between calls is
// expected (repeated decay and propagation accumulate floating-point
// error); this is the explicit correction, invoked by the caller on a
// fixed cadence. When the current sum is zero the budget is split
// equally across all nodes as a degenerate recovery.
func (e *Engine) Redistribute(turn int) {
	if len(e.nodes) == 0 {
		return
	}

	sum := 0.0
	for _, n := range e.nodes {
		sum += n.rawPressure
	}

	if sum == 0 {
		even := e.config.TotalBudget / float64(len(e.nodes))
		for _, n := range e.nodes {
			n.rawPressure = even
		}
		return
	}

	ratio := e.config.TotalBudget / sum
	for _, n := range e.nodes {
		n.rawPressure *= ratio
	}
}

// TotalPressure returns the current sum of all node pressures.
func (e *Engine) TotalPressure() float64 {
	sum := 0.0
	for _, n := range e.nodes {
		sum += n.rawPressure
	}
	return sum
}

// Restore overwrites one node's state. Used when reloading a persisted
// session; not part of the turn cycle.
func (e *Engine) Restore(id string, pressure float64, lastActivated, lastResurrected int) error {
	n, ok := e.nodes[id]
	if !ok {
		return fmt.Errorf("restore %q: %w", id, ErrInvalidNode)
	}
	if pressure < 0 {
		return fmt.Errorf("restore %q: pressure must be non-negative, got %g", id, pressure)
	}
	n.rawPressure = pressure
	n.lastActivated = lastActivated
	n.lastResurrected = lastResurrected
	return nil
}
