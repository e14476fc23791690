// Package store holds the single authoritative GameState of a running app,
// guards the at-most-one-in-flight-turn contract, and persists snapshots.
// It is a thin shell: all transition logic lives in the pure reducer.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tatianab/persona-chronicles/internal/engine"
	"github.com/tatianab/persona-chronicles/internal/models"
	"github.com/tatianab/persona-chronicles/internal/provider"
)

// AutosaveName is the save slot the store writes after every transition.
const AutosaveName = "current"

// ErrTurnInFlight is returned when a turn is requested while another is
// still resolving for the same game.
var ErrTurnInFlight = errors.New("store: a turn is already in flight")

// ErrNotPlaying is returned when a turn is requested outside GAMEPLAY.
var ErrNotPlaying = errors.New("store: no game in progress")

// Store owns one GameState. All access goes through it.
type Store struct {
	mu          sync.Mutex
	state       models.GameState
	inFlight    bool
	subscribers []func(models.GameState)
	runID       string

	engine   *engine.Engine
	settings *provider.Settings
	autosave bool
	log      zerolog.Logger
}

// New builds a store starting in the SELECTION state. settings is read at
// each dispatch, so the player can switch backends between turns.
func New(eng *engine.Engine, settings *provider.Settings, autosave bool, log zerolog.Logger) *Store {
	return &Store{
		state:    engine.InitialState(),
		engine:   eng,
		settings: settings,
		autosave: autosave,
		log:      log,
	}
}

// Read returns a snapshot of the current state.
func (s *Store) Read() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InFlight reports whether a turn is currently resolving.
func (s *Store) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Subscribe registers fn to run after every state transition.
func (s *Store) Subscribe(fn func(models.GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Reset discards the run and returns to SELECTION with default rules and
// stats.
func (s *Store) Reset() models.GameState {
	s.mu.Lock()
	s.state = engine.InitialState()
	s.runID = ""
	next := s.state
	s.mu.Unlock()

	s.notify(next)
	return next
}

// StartNewGame seeds a fresh run with the chosen character: GAMEPLAY phase,
// turn 1, the fixed introduction node, default stats and rules.
func (s *Store) StartNewGame(char models.Character) models.GameState {
	s.mu.Lock()
	s.state = engine.NewGame(char)
	s.runID = uuid.NewString()
	next := s.state
	runID := s.runID
	s.mu.Unlock()

	s.log.Info().Str("run", runID).Str("character", char.ID).Msg("new game")
	s.notify(next)
	s.persist(next)
	return next
}

// Restore replaces the current state with a loaded snapshot.
func (s *Store) Restore(state models.GameState) models.GameState {
	s.mu.Lock()
	s.state = state
	if s.runID == "" {
		s.runID = uuid.NewString()
	}
	next := s.state
	s.mu.Unlock()

	s.notify(next)
	return next
}

// ResolveTurn runs one full turn: gateway call, sanitize, reduce, apply.
// The provider config is snapshotted at dispatch time, so settings changed
// mid-flight don't touch this call. A second call while one is in flight
// returns ErrTurnInFlight. Only a provider ConfigurationError surfaces;
// every other failure resolves into the fallback scene.
func (s *Store) ResolveTurn(ctx context.Context, choiceText string) (models.GameState, error) {
	s.mu.Lock()
	if s.state.Phase != models.PhaseGameplay {
		s.mu.Unlock()
		return s.state, ErrNotPlaying
	}
	if s.inFlight {
		s.mu.Unlock()
		return s.state, ErrTurnInFlight
	}
	s.inFlight = true
	req := engine.TurnRequest{
		Character:      *s.state.Character,
		ActiveRules:    s.state.ActiveRules(),
		RealityStats:   s.state.RealityStats,
		LastChoiceText: choiceText,
		HistorySummary: engine.HistorySummary(s.state.StoryLog),
		TurnCount:      s.state.TurnCount,
		MaxTurns:       s.state.MaxTurns,
		Provider:       s.settings.Config(),
	}
	runID := s.runID
	s.mu.Unlock()

	result, err := s.engine.RequestTurn(ctx, req)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		state := s.state
		s.mu.Unlock()
		return state, err
	}
	s.state = engine.ApplyTurn(s.state, result)
	next := s.state
	s.mu.Unlock()

	s.log.Info().
		Str("run", runID).
		Int("turn", next.TurnCount).
		Str("phase", string(next.Phase)).
		Msg("turn resolved")
	s.notify(next)
	s.persist(next)
	return next, nil
}

func (s *Store) notify(state models.GameState) {
	s.mu.Lock()
	subs := make([]func(models.GameState), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

func (s *Store) persist(state models.GameState) {
	if !s.autosave {
		return
	}
	if err := state.Save(AutosaveName); err != nil {
		s.log.Warn().Err(err).Msg("autosave failed")
	}
}
