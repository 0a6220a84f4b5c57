package pressure

// NodeSnapshot is one node's state at snapshot time.
type NodeSnapshot struct {
	ID              string  `json:"id"`
	Pressure        float64 `json:"pressure"`
	Tier            Tier    `json:"tier"`
	LastActivated   int     `json:"last_activated"`   // turn index, -1 when never
	LastResurrected int     `json:"last_resurrected"` // turn index, -1 when never
}

// Snapshot is a read-only view of the engine state for diagnostics and
// reporting. The core does not assume any serialization format; the
// struct tags are a convenience for the CLI's JSON output path.
type Snapshot struct {
	NodeCount     int            `json:"node_count"`
	TotalPressure float64        `json:"total_pressure"`
	MaxPressure   float64        `json:"max_pressure"`
	HotCount      int            `json:"hot_count"`
	WarmCount     int            `json:"warm_count"`
	ColdCount     int            `json:"cold_count"`
	Nodes         []NodeSnapshot `json:"nodes"`
}

// Snapshot captures the current per-node state, sorted by node id.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		NodeCount: len(e.nodes),
		Nodes:     make([]NodeSnapshot, 0, len(e.nodes)),
	}

	for _, id := range e.graph.Nodes() {
		n := e.nodes[id]
		tier := e.config.TierFor(n.rawPressure)
		snap.Nodes = append(snap.Nodes, NodeSnapshot{
			ID:              id,
			Pressure:        n.rawPressure,
			Tier:            tier,
			LastActivated:   n.lastActivated,
			LastResurrected: n.lastResurrected,
		})

		snap.TotalPressure += n.rawPressure
		if n.rawPressure > snap.MaxPressure {
			snap.MaxPressure = n.rawPressure
		}
		switch tier {
		case TierHot:
			snap.HotCount++
		case TierWarm:
			snap.WarmCount++
		default:
			snap.ColdCount++
		}
	}

	return snap
}
