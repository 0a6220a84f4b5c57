// Package mcp provides an MCP (Model Context Protocol) server for
// hologram. It exposes the turn cycle and the diagnostics snapshot as
// tools so an agent host can drive the engine over stdio.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/GMaN1911/hologram-cognitive/internal/config"
	"github.com/GMaN1911/hologram-cognitive/internal/logging"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
	"github.com/GMaN1911/hologram-cognitive/internal/session"
	"github.com/GMaN1911/hologram-cognitive/internal/store"
)

// Server wraps the MCP SDK server around one hologram session.
type Server struct {
	server  *sdk.Server
	store   *store.Store
	session *session.Session
	cfg     *config.Config
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "hologram")
	Version string // Server version
	Root    string // Project root directory
}

// NewServer creates an MCP server over the persisted session at
// cfg.Root. The graph must already exist; the server never scans
// documents itself.
func NewServer(cfg *Config) (*Server, error) {
	appCfg, err := config.Load(configPath(cfg.Root))
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	g, err := st.LoadGraph(context.Background())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load graph: %w", err)
	}
	if g.NodeCount() == 0 {
		st.Close()
		return nil, fmt.Errorf("no graph found under %s: run 'hologram build' first", cfg.Root)
	}

	engine, err := pressure.NewEngine(g, appCfg.Pressure)
	if err != nil {
		st.Close()
		return nil, err
	}
	turn, err := st.LoadState(context.Background(), engine)
	if err != nil {
		st.Close()
		return nil, err
	}

	logger := logging.NewLogger(appCfg.Logging.Level, os.Stderr)
	trace := logging.NewTurnLogger(st.Dir(), appCfg.Logging.Level)
	sess := session.New(engine, logger, trace)
	sess.SetTurn(turn)

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		server:  mcpServer,
		store:   st,
		session: sess,
		cfg:     appCfg,
	}
	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()
	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}

// configPath returns the YAML config location under root.
func configPath(root string) string {
	return filepath.Join(root, ".hologram", "config.yaml")
}
