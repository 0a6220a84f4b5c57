package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GMaN1911/hologram-cognitive/internal/config"
	"github.com/GMaN1911/hologram-cognitive/internal/logging"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
	"github.com/GMaN1911/hologram-cognitive/internal/session"
	"github.com/GMaN1911/hologram-cognitive/internal/store"
)

// openedSession bundles everything a command needs to run against a
// persisted session.
type openedSession struct {
	cfg     *config.Config
	store   *store.Store
	session *session.Session
}

func (o *openedSession) Close() {
	o.store.Close()
}

// loadConfig reads <root>/.hologram/config.yaml, falling back to defaults
// when absent.
func loadConfig(root string) (*config.Config, error) {
	return config.Load(filepath.Join(root, ".hologram", "config.yaml"))
}

// openSession loads the persisted graph and pressure state from root.
func openSession(ctx context.Context, root string) (*openedSession, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(root)
	if err != nil {
		return nil, err
	}

	g, err := st.LoadGraph(ctx)
	if err != nil {
		st.Close()
		return nil, err
	}
	if g.NodeCount() == 0 {
		st.Close()
		return nil, fmt.Errorf("no graph found under %s: run 'hologram build' first", root)
	}

	engine, err := pressure.NewEngine(g, cfg.Pressure)
	if err != nil {
		st.Close()
		return nil, err
	}
	turn, err := st.LoadState(ctx, engine)
	if err != nil {
		st.Close()
		return nil, err
	}

	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	trace := logging.NewTurnLogger(st.Dir(), cfg.Logging.Level)
	sess := session.New(engine, logger, trace)
	sess.SetTurn(turn)

	return &openedSession{cfg: cfg, store: st, session: sess}, nil
}
