// Package backup exports and imports portable session snapshots: the
// merged graph, the per-document pressure state, and the turn counter
// as a single JSON file. Snapshots carry no document content, only ids.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
)

// FormatV1 is the only snapshot format version.
const FormatV1 = 1

// NodeState is one document's persisted pressure state.
type NodeState struct {
	ID              string  `json:"id"`
	Pressure        float64 `json:"pressure"`
	LastActivated   int     `json:"last_activated"`
	LastResurrected int     `json:"last_resurrected"`
}

// Format is the JSON structure of a snapshot file.
type Format struct {
	Version   int          `json:"version"`
	CreatedAt time.Time    `json:"created_at"`
	Turn      int          `json:"turn"`
	Nodes     []NodeState  `json:"nodes"`
	Edges     []graph.Edge `json:"edges"`
}

// DefaultPath returns a timestamped snapshot path under dir.
func DefaultPath(dir string) string {
	name := "hologram-backup-" + time.Now().Format("20060102-150405") + ".json"
	return filepath.Join(dir, name)
}

// Export writes the session to path as an indented JSON snapshot.
func Export(path string, g *graph.Graph, snap pressure.Snapshot, turn int) (*Format, error) {
	b := &Format{
		Version:   FormatV1,
		CreatedAt: time.Now().UTC(),
		Turn:      turn,
		Nodes:     make([]NodeState, 0, len(snap.Nodes)),
		Edges:     g.Edges(),
	}
	for _, n := range snap.Nodes {
		b.Nodes = append(b.Nodes, NodeState{
			ID:              n.ID,
			Pressure:        n.Pressure,
			LastActivated:   n.LastActivated,
			LastResurrected: n.LastResurrected,
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("encode backup: %w", err)
	}
	return b, nil
}

// Import reads and validates a snapshot file. The caller rebuilds the
// graph from the edges and restores engine state from the nodes.
func Import(path string) (*Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	var b Format
	if err := json.NewDecoder(f).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode backup: %w", err)
	}
	if b.Version != FormatV1 {
		return nil, fmt.Errorf("unsupported backup version: %d", b.Version)
	}
	return &b, nil
}

// Graph reconstructs the snapshot's graph.
func (b *Format) Graph() *graph.Graph {
	ids := make([]string, 0, len(b.Nodes))
	for _, n := range b.Nodes {
		ids = append(ids, n.ID)
	}
	return graph.FromEdges(ids, b.Edges)
}

// RestoreInto pushes the snapshot's node state into an engine built on a
// matching graph.
func (b *Format) RestoreInto(engine *pressure.Engine) error {
	for _, n := range b.Nodes {
		if err := engine.Restore(n.ID, n.Pressure, n.LastActivated, n.LastResurrected); err != nil {
			return fmt.Errorf("restore %s: %w", n.ID, err)
		}
	}
	return nil
}

// List scans dir for snapshot files and returns their paths sorted
// newest-first by the embedded timestamp.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "hologram-backup-") || !strings.HasSuffix(name, ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Slice(paths, func(i, j int) bool {
		return filepath.Base(paths[i]) > filepath.Base(paths[j])
	})
	return paths, nil
}
