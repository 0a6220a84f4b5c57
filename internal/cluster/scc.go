package cluster

import "github.com/GMaN1911/hologram-cognitive/internal/graph"

// SCCDetector finds exact strongly-connected components with an iterative
// Tarjan index/low-link pass. Singleton components are not reported.
// Complexity is O(nodes + edges), the same as the mutual-pair
// approximation, so the two are interchangeable at the Detector level.
type SCCDetector struct{}

// frame is an explicit stack frame for the iterative DFS.
// Recursion depth on a path-shaped corpus would otherwise scale with the
// document count.
type frame struct {
	node string
	edge int // index of the next outgoing edge to visit
}

// DetectClusters returns all strongly-connected components of size >= 2.
func (d *SCCDetector) DetectClusters(g *graph.Graph) []Cluster {
	index := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	next := 0

	var raw [][]string

	for _, start := range g.Nodes() {
		if _, visited := index[start]; visited {
			continue
		}

		frames := []frame{{node: start}}
		index[start] = next
		lowlink[start] = next
		next++
		stack = append(stack, start)
		onStack[start] = true

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			out := g.Outgoing(f.node)

			if f.edge < len(out) {
				target := out[f.edge].Target
				f.edge++

				if _, visited := index[target]; !visited {
					index[target] = next
					lowlink[target] = next
					next++
					stack = append(stack, target)
					onStack[target] = true
					frames = append(frames, frame{node: target})
				} else if onStack[target] {
					if index[target] < lowlink[f.node] {
						lowlink[f.node] = index[target]
					}
				}
				continue
			}

			// All edges of f.node visited: pop the frame.
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowlink[f.node] < lowlink[parent] {
					lowlink[parent] = lowlink[f.node]
				}
			}

			// Root of a component: pop the component off the node stack.
			if lowlink[f.node] == index[f.node] {
				var members []string
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					members = append(members, top)
					if top == f.node {
						break
					}
				}
				raw = append(raw, members)
			}
		}
	}

	return sortClusters(raw)
}
