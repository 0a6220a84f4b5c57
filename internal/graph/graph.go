// Package graph builds and queries the directed document graph. Edge
// proposals from discovery are merged into one weighted edge per ordered
// pair; adjacency is queryable in both directions.
package graph

import "sort"

// Edge is a directed, weighted connection between two documents.
// Strategies records which discovery heuristics contributed, for
// diagnostics only.
type Edge struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Weight     float64  `json:"weight"`
	Strategies []string `json:"strategies"`
}

// Graph is an immutable directed graph over document ids.
// Build one with a Builder; all query methods return deterministic,
// sorted results.
type Graph struct {
	nodes    []string // sorted
	nodeSet  map[string]bool
	outgoing map[string][]Edge // sorted by target
	incoming map[string][]Edge // sorted by source
	outTotal map[string]float64
	edges    int
}

// FromEdges reconstructs a graph from already-merged edges, e.g. when
// loading a persisted session. Self-loops are dropped; nodes referenced
// only by edges are added implicitly.
func FromEdges(nodes []string, edges []Edge) *Graph {
	g := &Graph{
		nodeSet:  make(map[string]bool),
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]Edge),
		outTotal: make(map[string]float64),
	}

	add := func(id string) {
		if id != "" && !g.nodeSet[id] {
			g.nodeSet[id] = true
			g.nodes = append(g.nodes, id)
		}
	}
	for _, id := range nodes {
		add(id)
	}
	for _, e := range edges {
		if e.Source == e.Target {
			continue
		}
		add(e.Source)
		add(e.Target)
		g.outgoing[e.Source] = append(g.outgoing[e.Source], e)
		g.incoming[e.Target] = append(g.incoming[e.Target], e)
		g.outTotal[e.Source] += e.Weight
		g.edges++
	}
	sort.Strings(g.nodes)
	g.sortEdgeLists()
	return g
}

// Nodes returns all node ids in sorted order.
// The returned slice must not be mutated.
func (g *Graph) Nodes() []string {
	return g.nodes
}

// HasNode reports whether the id is a node in the graph.
func (g *Graph) HasNode(id string) bool {
	return g.nodeSet[id]
}

// Outgoing returns the edges leaving id, sorted by target.
func (g *Graph) Outgoing(id string) []Edge {
	return g.outgoing[id]
}

// Incoming returns the edges arriving at id, sorted by source.
func (g *Graph) Incoming(id string) []Edge {
	return g.incoming[id]
}

// TotalOutWeight returns the sum of outgoing edge weights for id.
func (g *Graph) TotalOutWeight(id string) float64 {
	return g.outTotal[id]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of merged edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Edges returns every edge in the graph, sorted by (source, target).
func (g *Graph) Edges() []Edge {
	all := make([]Edge, 0, g.edges)
	for _, id := range g.nodes {
		all = append(all, g.outgoing[id]...)
	}
	return all
}

// HasEdge reports whether a directed edge source->target exists.
func (g *Graph) HasEdge(source, target string) bool {
	for _, e := range g.outgoing[source] {
		if e.Target == target {
			return true
		}
	}
	return false
}

// sortEdgeLists finalizes adjacency ordering after building.
func (g *Graph) sortEdgeLists() {
	for _, edges := range g.outgoing {
		sort.Slice(edges, func(i, j int) bool { return edges[i].Target < edges[j].Target })
	}
	for _, edges := range g.incoming {
		sort.Slice(edges, func(i, j int) bool { return edges[i].Source < edges[j].Source })
	}
}
