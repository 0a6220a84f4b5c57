// Package session owns the per-session pressure state and runs the
// turn-based cycle. A session serializes turns with one mutation lock
// held for the full sequence (activation through redistribution);
// concurrent turns against the same session are undefined otherwise.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/GMaN1911/hologram-cognitive/internal/cluster"
	"github.com/GMaN1911/hologram-cognitive/internal/discovery"
	"github.com/GMaN1911/hologram-cognitive/internal/graph"
	"github.com/GMaN1911/hologram-cognitive/internal/logging"
	"github.com/GMaN1911/hologram-cognitive/internal/pressure"
)

// Event is one activation input for a turn: either an explicit document
// id or free query text resolved against node ids. Amount 0 means the
// configured default boost.
type Event struct {
	DocumentID string  `json:"document_id,omitempty"`
	Query      string  `json:"query,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
}

// TurnResult summarizes what one turn did.
type TurnResult struct {
	Turn          int      `json:"turn"`
	Activated     []string `json:"activated"`
	Redistributed bool     `json:"redistributed"`
	TotalPressure float64  `json:"total_pressure"`
}

// Stats is the diagnostics snapshot handed to reporting layers.
type Stats struct {
	Turn      int               `json:"turn"`
	EdgeCount int               `json:"edge_count"`
	Snapshot  pressure.Snapshot `json:"snapshot"`
	Clusters  []cluster.Cluster `json:"clusters,omitempty"`
}

// Session binds an engine to a turn counter and a lock.
type Session struct {
	mu     sync.Mutex
	engine *pressure.Engine
	turn   int
	logger *slog.Logger
	trace  *logging.TurnLogger
}

// New creates a session around an engine. logger may be nil (discarded);
// trace may be nil (turn tracing disabled).
func New(engine *pressure.Engine, logger *slog.Logger, trace *logging.TurnLogger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{engine: engine, logger: logger, trace: trace}
}

// Engine exposes the underlying engine for read-only inspection.
func (s *Session) Engine() *pressure.Engine {
	return s.engine
}

// Turn returns the index of the next turn to run.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// SetTurn overwrites the turn counter when restoring a persisted session.
func (s *Session) SetTurn(turn int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turn = turn
}

// RunTurn executes one full turn in the fixed order: activation ->
// propagation -> decay -> redistribution on the configured cadence.
// All activation events are validated before any state is mutated, so a
// bad event leaves the session untouched. The lock is held for the
// entire sequence.
func (s *Session) RunTurn(events []Event) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := s.turn
	config := s.engine.Config()
	g := s.engine.Graph()

	// Resolve events to (id, amount) pairs up front; an unknown explicit
	// id or a negative amount fails the whole turn before anything mutates.
	type boost struct {
		id     string
		amount float64
	}
	var boosts []boost
	for _, ev := range events {
		amount := ev.Amount
		if amount < 0 {
			return TurnResult{}, fmt.Errorf("turn %d: activation amount must be non-negative, got %g", turn, amount)
		}
		if amount == 0 {
			amount = config.ActivationBoost
		}
		switch {
		case ev.DocumentID != "":
			if !g.HasNode(ev.DocumentID) {
				return TurnResult{}, fmt.Errorf("turn %d: activate %q: %w",
					turn, ev.DocumentID, pressure.ErrInvalidNode)
			}
			boosts = append(boosts, boost{ev.DocumentID, amount})
		case ev.Query != "":
			for _, id := range ResolveQuery(g, ev.Query) {
				boosts = append(boosts, boost{id, amount})
			}
		}
	}

	result := TurnResult{Turn: turn}
	for _, b := range boosts {
		if err := s.engine.ApplyActivation(b.id, b.amount, turn); err != nil {
			return TurnResult{}, fmt.Errorf("turn %d: %w", turn, err)
		}
		result.Activated = append(result.Activated, b.id)
	}
	sort.Strings(result.Activated)

	s.engine.Propagate(turn)
	s.engine.ApplyDecay(turn)

	if (turn+1)%config.RedistributeInterval == 0 {
		s.engine.Redistribute(turn)
		result.Redistributed = true
	}

	result.TotalPressure = s.engine.TotalPressure()
	s.turn++

	s.logger.Debug("turn complete",
		"turn", turn,
		"activated", len(result.Activated),
		"redistributed", result.Redistributed,
		"total_pressure", result.TotalPressure)
	s.trace.Log(map[string]any{
		"turn":           turn,
		"activated":      result.Activated,
		"redistributed":  result.Redistributed,
		"total_pressure": result.TotalPressure,
	})

	return result, nil
}

// Stats builds the diagnostics snapshot. detector may be nil to skip
// cluster detection; clusters are diagnostic output only and never feed
// back into the engine.
func (s *Session) Stats(detector cluster.Detector) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.engine.Graph()
	stats := Stats{
		Turn:      s.turn,
		EdgeCount: g.EdgeCount(),
		Snapshot:  s.engine.Snapshot(),
	}
	if detector != nil {
		stats.Clusters = detector.DetectClusters(g)
	}
	return stats
}

// minQueryTokenLength drops query tokens too short to be selective.
// Queries match against ids only, never content, so the floor is looser
// than the discovery tokenizer's MinTokenLength.
const minQueryTokenLength = 3

// ResolveQuery maps free query text to document ids by matching salient
// query tokens against id path segments. Matching is case-insensitive;
// results are sorted. An unmatched query resolves to nothing rather than
// failing the turn.
func ResolveQuery(g *graph.Graph, query string) []string {
	tokens := make(map[string]bool)
	for _, tok := range discovery.Tokenize(strings.ToLower(query)) {
		if len(tok) >= minQueryTokenLength {
			tokens[tok] = true
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	var matched []string
	for _, id := range g.Nodes() {
		idLower := strings.ToLower(id)
		for tok := range tokens {
			if strings.Contains(idLower, tok) {
				matched = append(matched, id)
				break
			}
		}
	}
	sort.Strings(matched)
	return matched
}
