// Package cluster computes diagnostic groupings over the document graph.
// Clusters are reporting-only: the pressure engine never consults them.
package cluster

import (
	"sort"

	"github.com/GMaN1911/hologram-cognitive/internal/graph"
)

// Cluster is a set of node ids with size >= 2, sorted.
type Cluster []string

// Detector finds clusters in a graph. Implementations are interchangeable
// at the interface level, but callers must not assume one produces a
// superset of the other's membership shapes.
type Detector interface {
	DetectClusters(g *graph.Graph) []Cluster
}

// New returns the detector for the given algorithm name:
// "mutual" for the mutual-pair approximation, "scc" for exact
// strongly-connected components. Unknown names fall back to "mutual".
func New(algorithm string) Detector {
	if algorithm == "scc" {
		return &SCCDetector{}
	}
	return &MutualPairDetector{}
}

// sortClusters normalizes detector output: members sorted within each
// cluster, clusters ordered by first member, singletons dropped.
func sortClusters(raw [][]string) []Cluster {
	clusters := make([]Cluster, 0, len(raw))
	for _, members := range raw {
		if len(members) < 2 {
			continue
		}
		c := make(Cluster, len(members))
		copy(c, members)
		sort.Strings(c)
		clusters = append(clusters, c)
	}
	sort.Slice(clusters, func(i, j int) bool { return clusters[i][0] < clusters[j][0] })
	return clusters
}
