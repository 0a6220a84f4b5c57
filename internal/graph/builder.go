package graph

import (
	"sort"

	"github.com/GMaN1911/hologram-cognitive/internal/discovery"
)

// maxStrategyContribution caps what a single strategy may add to an edge
// weight. Without the cap, a chatty strategy (keyword matching in a large
// corpus) drowns out the precise ones.
const maxStrategyContribution = 1.0

// Builder aggregates discovery proposals into a Graph.
// Adding the same ordered pair repeatedly is idempotent per strategy:
// the combination rule is max-per-strategy, then sum across strategies.
type Builder struct {
	nodes map[string]bool
	// pairs[source][target][strategy] = max proposed weight
	pairs map[string]map[string]map[string]float64
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes: make(map[string]bool),
		pairs: make(map[string]map[string]map[string]float64),
	}
}

// AddNode registers a document id, even if no edge touches it.
// Every discovered document becomes a node at build time.
func (b *Builder) AddNode(id string) {
	if id != "" {
		b.nodes[id] = true
	}
}

// AddProposal records one strategy's contribution to an ordered pair.
// Self-loops and non-positive weights are discarded.
func (b *Builder) AddProposal(p discovery.Proposal) {
	if p.Source == "" || p.Target == "" || p.Source == p.Target || p.Weight <= 0 {
		return
	}
	b.AddNode(p.Source)
	b.AddNode(p.Target)

	targets, ok := b.pairs[p.Source]
	if !ok {
		targets = make(map[string]map[string]float64)
		b.pairs[p.Source] = targets
	}
	strategies, ok := targets[p.Target]
	if !ok {
		strategies = make(map[string]float64)
		targets[p.Target] = strategies
	}

	w := p.Weight
	if w > maxStrategyContribution {
		w = maxStrategyContribution
	}
	// Re-discovering the same pair with the same strategy must not
	// inflate the edge: keep the max, never accumulate duplicates.
	if w > strategies[p.Strategy] {
		strategies[p.Strategy] = w
	}
}

// AddProposals records a batch of proposals.
func (b *Builder) AddProposals(proposals []discovery.Proposal) {
	for _, p := range proposals {
		b.AddProposal(p)
	}
}

// Build produces the finished graph. The result is deterministic:
// identical proposal sets yield bit-identical edges and weights
// regardless of insertion order.
func (b *Builder) Build() *Graph {
	g := &Graph{
		nodeSet:  make(map[string]bool, len(b.nodes)),
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]Edge),
		outTotal: make(map[string]float64),
	}

	for id := range b.nodes {
		g.nodes = append(g.nodes, id)
		g.nodeSet[id] = true
	}
	sort.Strings(g.nodes)

	for _, source := range g.nodes {
		targets := b.pairs[source]
		targetIDs := make([]string, 0, len(targets))
		for t := range targets {
			targetIDs = append(targetIDs, t)
		}
		sort.Strings(targetIDs)

		for _, target := range targetIDs {
			strategies := targets[target]
			tags := make([]string, 0, len(strategies))
			for tag := range strategies {
				tags = append(tags, tag)
			}
			sort.Strings(tags)

			weight := 0.0
			for _, tag := range tags {
				weight += strategies[tag]
			}

			e := Edge{Source: source, Target: target, Weight: weight, Strategies: tags}
			g.outgoing[source] = append(g.outgoing[source], e)
			g.incoming[target] = append(g.incoming[target], e)
			g.outTotal[source] += weight
			g.edges++
		}
	}

	g.sortEdgeLists()
	return g
}
