package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/persona-chronicles/internal/content"
	"github.com/tatianab/persona-chronicles/internal/engine"
	"github.com/tatianab/persona-chronicles/internal/models"
	"github.com/tatianab/persona-chronicles/internal/provider"
)

// stubGenerator returns a fixed payload, optionally blocking until released
// so tests can hold a turn in flight.
type stubGenerator struct {
	response string
	err      error
	block    chan struct{}
}

func (g *stubGenerator) Generate(_ context.Context, _ provider.Config, _ provider.Request) (string, error) {
	if g.block != nil {
		<-g.block
	}
	return g.response, g.err
}

func newTestStore(gen engine.Generator) *Store {
	eng := engine.New(gen, zerolog.Nop())
	return New(eng, provider.DefaultSettings(), false, zerolog.Nop())
}

const okResponse = `{"text": "Onward.", "choices": [{"id": "c1", "text": "Go."}]}`

func TestStoreStartsInSelection(t *testing.T) {
	st := newTestStore(&stubGenerator{response: okResponse})

	state := st.Read()
	assert.Equal(t, models.PhaseSelection, state.Phase)
	assert.Nil(t, state.Character)
	assert.False(t, st.InFlight())
}

func TestStartNewGameSeedsRun(t *testing.T) {
	st := newTestStore(&stubGenerator{response: okResponse})

	char := content.Characters()[0]
	state := st.StartNewGame(char)

	assert.Equal(t, models.PhaseGameplay, state.Phase)
	require.NotNil(t, state.Character)
	assert.Equal(t, char.ID, state.Character.ID)
	assert.Equal(t, 1, state.TurnCount)
	require.NotNil(t, state.CurrentStory)
	assert.NotEmpty(t, state.CurrentStory.Choices)
}

func TestResolveTurnOutsideGameplay(t *testing.T) {
	st := newTestStore(&stubGenerator{response: okResponse})

	_, err := st.ResolveTurn(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotPlaying)
}

func TestResolveTurnAdvancesState(t *testing.T) {
	st := newTestStore(&stubGenerator{response: okResponse})
	st.StartNewGame(content.Characters()[0])

	state, err := st.ResolveTurn(context.Background(), "Step through the gate.")

	require.NoError(t, err)
	assert.Equal(t, 2, state.TurnCount)
	assert.Equal(t, "Onward.", state.CurrentStory.Text)
	assert.Len(t, state.StoryLog, 2)
	assert.False(t, st.InFlight())
}

func TestResolveTurnRejectsConcurrentTurn(t *testing.T) {
	gen := &stubGenerator{response: okResponse, block: make(chan struct{})}
	st := newTestStore(gen)
	st.StartNewGame(content.Characters()[0])

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := st.ResolveTurn(context.Background(), "first")
		assert.NoError(t, err)
	}()

	// Wait for the first turn to reach the blocked generator.
	require.Eventually(t, st.InFlight, time.Second, time.Millisecond)

	_, err := st.ResolveTurn(context.Background(), "second")
	assert.ErrorIs(t, err, ErrTurnInFlight)

	close(gen.block)
	<-done
	assert.False(t, st.InFlight())

	// The guard clears once the turn resolves.
	_, err = st.ResolveTurn(context.Background(), "third")
	assert.NoError(t, err)
}

func TestResolveTurnConfigurationErrorLeavesStateUntouched(t *testing.T) {
	gen := &stubGenerator{err: &provider.ConfigurationError{Reason: "no API key"}}
	st := newTestStore(gen)
	before := st.StartNewGame(content.Characters()[0])

	state, err := st.ResolveTurn(context.Background(), "go")

	var cfgErr *provider.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, before.TurnCount, state.TurnCount)
	assert.Equal(t, before.CurrentStory.Text, state.CurrentStory.Text)
	assert.False(t, st.InFlight(), "a failed turn releases the guard")
}

func TestResolveTurnTransportErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{err: provider.ErrTransport}
	st := newTestStore(gen)
	st.StartNewGame(content.Characters()[0])

	state, err := st.ResolveTurn(context.Background(), "go")

	require.NoError(t, err, "transport failures resolve into the fallback scene")
	assert.Equal(t, 2, state.TurnCount)
	require.Len(t, state.CurrentStory.Choices, 1)
	assert.Equal(t, "retry", state.CurrentStory.Choices[0].ID)
	assert.Equal(t, models.PhaseGameplay, state.Phase)
}

func TestSubscribeSeesEveryTransition(t *testing.T) {
	st := newTestStore(&stubGenerator{response: okResponse})

	var mu sync.Mutex
	var phases []models.Phase
	st.Subscribe(func(state models.GameState) {
		mu.Lock()
		phases = append(phases, state.Phase)
		mu.Unlock()
	})

	st.StartNewGame(content.Characters()[0])
	_, err := st.ResolveTurn(context.Background(), "go")
	require.NoError(t, err)
	st.Reset()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.Phase{models.PhaseGameplay, models.PhaseGameplay, models.PhaseSelection}, phases)
}

func TestResetReturnsToSelection(t *testing.T) {
	st := newTestStore(&stubGenerator{response: okResponse})
	st.StartNewGame(content.Characters()[0])

	state := st.Reset()

	assert.Equal(t, models.PhaseSelection, state.Phase)
	assert.Nil(t, state.Character)
	assert.Equal(t, content.DefaultStats(), state.RealityStats)
	assert.Len(t, state.Rules, len(content.InitialRules()))
}

func TestRestoreReplacesState(t *testing.T) {
	st := newTestStore(&stubGenerator{response: okResponse})

	saved := engine.NewGame(content.Characters()[1])
	saved.TurnCount = 7

	state := st.Restore(saved)

	assert.Equal(t, 7, state.TurnCount)
	assert.Equal(t, saved.Character.ID, st.Read().Character.ID)

	// A restored run can keep playing.
	_, err := st.ResolveTurn(context.Background(), "continue")
	assert.NoError(t, err)
}

func TestAutosaveWritesCurrentSlot(t *testing.T) {
	models.SaveDir = t.TempDir()

	eng := engine.New(&stubGenerator{response: okResponse}, zerolog.Nop())
	st := New(eng, provider.DefaultSettings(), true, zerolog.Nop())
	st.StartNewGame(content.Characters()[0])

	loaded, err := models.LoadState(AutosaveName)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseGameplay, loaded.Phase)

	_, err = st.ResolveTurn(context.Background(), "go")
	require.NoError(t, err)

	loaded, err = models.LoadState(AutosaveName)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.TurnCount)
}
