package mcp

// RunTurnInput defines the input for the hologram_turn tool.
type RunTurnInput struct {
	Activate []string `json:"activate,omitempty" jsonschema:"Document ids to activate this turn"`
	Query    string   `json:"query,omitempty" jsonschema:"Free query text resolved to matching document ids"`
	Amount   float64  `json:"amount,omitempty" jsonschema:"Pressure boost per activation (default: configured activation_boost)"`
}

// RunTurnOutput defines the output for the hologram_turn tool.
type RunTurnOutput struct {
	Turn          int      `json:"turn" jsonschema:"Turn index that was executed"`
	Activated     []string `json:"activated" jsonschema:"Document ids that received a boost"`
	Redistributed bool     `json:"redistributed" jsonschema:"Whether conservation was restored this turn"`
	TotalPressure float64  `json:"total_pressure" jsonschema:"System-wide pressure after the turn"`
}

// StatsInput defines the input for the hologram_stats tool.
type StatsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of nodes to return sorted by pressure descending (0 = all)"`
}

// NodeStats is one document's state in the stats output.
type NodeStats struct {
	ID       string  `json:"id"`
	Pressure float64 `json:"pressure"`
	Tier     string  `json:"tier"`
}

// StatsOutput defines the output for the hologram_stats tool.
type StatsOutput struct {
	Turn          int         `json:"turn" jsonschema:"Next turn index"`
	NodeCount     int         `json:"node_count"`
	EdgeCount     int         `json:"edge_count"`
	TotalPressure float64     `json:"total_pressure"`
	HotCount      int         `json:"hot_count"`
	WarmCount     int         `json:"warm_count"`
	ColdCount     int         `json:"cold_count"`
	Nodes         []NodeStats `json:"nodes" jsonschema:"Per-document pressure and tier"`
}

// ClustersInput defines the input for the hologram_clusters tool.
type ClustersInput struct {
	Algorithm string `json:"algorithm,omitempty" jsonschema:"Cluster algorithm: 'mutual' (approximate, default) or 'scc' (exact)"`
}

// ClustersOutput defines the output for the hologram_clusters tool.
type ClustersOutput struct {
	Algorithm string     `json:"algorithm"`
	Count     int        `json:"count"`
	Clusters  [][]string `json:"clusters" jsonschema:"Groups of mutually reachable document ids (size >= 2)"`
}
