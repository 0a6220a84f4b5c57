package cluster

import "github.com/GMaN1911/hologram-cognitive/internal/graph"

// MutualPairDetector approximates clusters from direct bidirectional edges.
// For each node, every neighbor with a reverse edge forms a mutual pair;
// pairs sharing a node are merged into one reported set.
//
// Known limitation: this only certifies pairwise mutual reachability. A
// cycle whose edges are not pairwise bidirectional (A->B->C->A with no
// reverse edges) is not found, and reported sets may overlap in
// membership where the exact algorithm would merge them.
type MutualPairDetector struct{}

// DetectClusters returns merged mutual-pair clusters.
func (d *MutualPairDetector) DetectClusters(g *graph.Graph) []Cluster {
	// Union-find over nodes joined by mutual pairs.
	parent := make(map[string]string)
	var find func(string) string
	find = func(x string) string {
		p, ok := parent[x]
		if !ok {
			parent[x] = x
			return x
		}
		if p == x {
			return x
		}
		root := find(p)
		parent[x] = root
		return root
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if ra < rb {
				parent[rb] = ra
			} else {
				parent[ra] = rb
			}
		}
	}

	paired := make(map[string]bool)
	for _, id := range g.Nodes() {
		for _, e := range g.Outgoing(id) {
			if e.Target <= id {
				continue // handle each unordered pair once
			}
			if g.HasEdge(e.Target, id) {
				union(id, e.Target)
				paired[id] = true
				paired[e.Target] = true
			}
		}
	}

	groups := make(map[string][]string)
	for _, id := range g.Nodes() {
		if !paired[id] {
			continue
		}
		root := find(id)
		groups[root] = append(groups[root], id)
	}

	raw := make([][]string, 0, len(groups))
	for _, members := range groups {
		raw = append(raw, members)
	}
	return sortClusters(raw)
}
