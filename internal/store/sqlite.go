// Package store persists a session to SQLite: the merged graph, the
// per-document pressure state, and the turn counter. Nothing else is
// persisted — the engine keeps no history beyond what decay and
// resurrection cooldowns need.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
)

// Store is a SQLite-backed session store rooted at <root>/.hologram.
type Store struct {
	db  *sql.DB
	dir string
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    pressure REAL NOT NULL DEFAULT 0,
    last_activated INTEGER NOT NULL DEFAULT -1,
    last_resurrected INTEGER NOT NULL DEFAULT -1
);

CREATE TABLE IF NOT EXISTS edges (
    source TEXT NOT NULL,
    target TEXT NOT NULL,
    weight REAL NOT NULL,
    strategies TEXT NOT NULL,
    PRIMARY KEY (source, target)
);
CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target);

CREATE TABLE IF NOT EXISTS session (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// Open creates or opens the session database at <root>/.hologram/hologram.db.
func Open(root string) (*Store, error) {
	dir := filepath.Join(root, ".hologram")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "hologram.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with a single writer

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db, dir: dir}, nil
}

// Dir returns the .hologram directory the store lives in.
func (s *Store) Dir() string {
	return s.dir
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGraph replaces the persisted graph with g and resets the pressure
// state to snap. Called after a (re)build; removing a document from the
// corpus requires exactly this path.
func (s *Store) SaveGraph(ctx context.Context, g *graph.Graph, snap pressure.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save graph: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges`); err != nil {
		return fmt.Errorf("save graph: clear edges: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("save graph: clear documents: %w", err)
	}

	for _, n := range snap.Nodes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, pressure, last_activated, last_resurrected) VALUES (?, ?, ?, ?)`,
			n.ID, n.Pressure, n.LastActivated, n.LastResurrected); err != nil {
			return fmt.Errorf("save graph: insert document %s: %w", n.ID, err)
		}
	}

	for _, e := range g.Edges() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO edges (source, target, weight, strategies) VALUES (?, ?, ?, ?)`,
			e.Source, e.Target, e.Weight, strings.Join(e.Strategies, ",")); err != nil {
			return fmt.Errorf("save graph: insert edge %s->%s: %w", e.Source, e.Target, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO session (key, value) VALUES ('turn', '0')
		 ON CONFLICT(key) DO UPDATE SET value = '0'`); err != nil {
		return fmt.Errorf("save graph: reset turn: %w", err)
	}

	return tx.Commit()
}

// LoadGraph reconstructs the persisted graph.
func (s *Store) LoadGraph(ctx context.Context) (*graph.Graph, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load graph: query documents: %w", err)
	}
	defer rows.Close()

	var nodes []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("load graph: scan document: %w", err)
		}
		nodes = append(nodes, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load graph: documents: %w", err)
	}

	edgeRows, err := s.db.QueryContext(ctx,
		`SELECT source, target, weight, strategies FROM edges ORDER BY source, target`)
	if err != nil {
		return nil, fmt.Errorf("load graph: query edges: %w", err)
	}
	defer edgeRows.Close()

	var edges []graph.Edge
	for edgeRows.Next() {
		var e graph.Edge
		var strategies string
		if err := edgeRows.Scan(&e.Source, &e.Target, &e.Weight, &strategies); err != nil {
			return nil, fmt.Errorf("load graph: scan edge: %w", err)
		}
		if strategies != "" {
			e.Strategies = strings.Split(strategies, ",")
		}
		edges = append(edges, e)
	}
	if err := edgeRows.Err(); err != nil {
		return nil, fmt.Errorf("load graph: edges: %w", err)
	}

	return graph.FromEdges(nodes, edges), nil
}

// SaveState writes the per-node pressure state and the turn counter.
func (s *Store) SaveState(ctx context.Context, snap pressure.Snapshot, turn int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save state: begin: %w", err)
	}
	defer tx.Rollback()

	for _, n := range snap.Nodes {
		if _, err := tx.ExecContext(ctx,
			`UPDATE documents SET pressure = ?, last_activated = ?, last_resurrected = ? WHERE id = ?`,
			n.Pressure, n.LastActivated, n.LastResurrected, n.ID); err != nil {
			return fmt.Errorf("save state: update %s: %w", n.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO session (key, value) VALUES ('turn', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprintf("%d", turn)); err != nil {
		return fmt.Errorf("save state: turn: %w", err)
	}

	return tx.Commit()
}

// LoadState restores persisted per-node state into the engine and
// returns the stored turn counter. Rows for ids absent from the engine's
// graph are skipped: a stale database row must not fail a fresh build.
func (s *Store) LoadState(ctx context.Context, engine *pressure.Engine) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pressure, last_activated, last_resurrected FROM documents`)
	if err != nil {
		return 0, fmt.Errorf("load state: query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var p float64
		var lastActivated, lastResurrected int
		if err := rows.Scan(&id, &p, &lastActivated, &lastResurrected); err != nil {
			return 0, fmt.Errorf("load state: scan: %w", err)
		}
		if !engine.Graph().HasNode(id) {
			continue
		}
		if err := engine.Restore(id, p, lastActivated, lastResurrected); err != nil {
			return 0, fmt.Errorf("load state: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("load state: %w", err)
	}

	var turnValue string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = 'turn'`).Scan(&turnValue)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load state: turn: %w", err)
	}

	var turn int
	if _, err := fmt.Sscanf(turnValue, "%d", &turn); err != nil {
		return 0, fmt.Errorf("load state: parse turn %q: %w", turnValue, err)
	}
	return turn, nil
}
