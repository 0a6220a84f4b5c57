// Package visualization renders the document graph in DOT and JSON
// output formats.
package visualization

import (
	"fmt"
	"strings"

	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// tierColors maps pressure tiers to DOT fill colors.
var tierColors = map[pressure.Tier]string{
	pressure.TierHot:  "tomato",
	pressure.TierWarm: "goldenrod",
	pressure.TierCold: "lightgray",
}

// edgeStyles maps the leading discovery strategy to a DOT line style.
var edgeStyles = map[string]string{
	"reference":      "solid",
	"mutual":         "bold",
	"path-component": "dashed",
	"keyword":        "dotted",
}

// RenderDOT produces a Graphviz DOT representation of the graph, with
// nodes colored by tier and edge styles taken from the strongest
// discovery strategy on the edge.
func RenderDOT(g *graph.Graph, snap pressure.Snapshot) string {
	byID := make(map[string]pressure.NodeSnapshot, len(snap.Nodes))
	for _, n := range snap.Nodes {
		byID[n.ID] = n
	}

	var b strings.Builder
	b.WriteString("digraph hologram {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for _, id := range g.Nodes() {
		n := byID[id]
		color := tierColors[n.Tier]
		if color == "" {
			color = "lightgray"
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q, tooltip=\"pressure=%.3f\"];\n",
			id, truncate(id, 40), color, n.Pressure))
	}
	b.WriteString("\n")

	for _, e := range g.Edges() {
		style := "solid"
		if len(e.Strategies) > 0 {
			if s, ok := edgeStyles[e.Strategies[0]]; ok {
				style = s
			}
		}
		b.WriteString(fmt.Sprintf("  %q -> %q [label=%q, style=%s, weight=\"%.1f\"];\n",
			e.Source, e.Target, strings.Join(e.Strategies, ","), style, e.Weight))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON produces a JSON-ready graph representation with nodes and
// edges arrays.
func RenderJSON(g *graph.Graph, snap pressure.Snapshot) map[string]interface{} {
	jsonNodes := make([]map[string]interface{}, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		jsonNodes = append(jsonNodes, map[string]interface{}{
			"id":       n.ID,
			"pressure": n.Pressure,
			"tier":     string(n.Tier),
		})
	}

	edges := g.Edges()
	jsonEdges := make([]map[string]interface{}, 0, len(edges))
	for _, e := range edges {
		jsonEdges = append(jsonEdges, map[string]interface{}{
			"source":     e.Source,
			"target":     e.Target,
			"strategies": e.Strategies,
			"weight":     e.Weight,
		})
	}

	return map[string]interface{}{
		"nodes":      jsonNodes,
		"edges":      jsonEdges,
		"node_count": len(jsonNodes),
		"edge_count": len(jsonEdges),
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
