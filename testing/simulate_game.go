// Command simulate_game plays a full scripted run through the real turn
// pipeline (engine, sanitizer, reducer, store) against a canned backend,
// so the whole game loop can be exercised without network access or keys.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/tatianab/persona-chronicles/internal/content"
	"github.com/tatianab/persona-chronicles/internal/engine"
	"github.com/tatianab/persona-chronicles/internal/models"
	"github.com/tatianab/persona-chronicles/internal/provider"
	"github.com/tatianab/persona-chronicles/internal/store"
)

// scriptedGenerator replays canned JSON payloads instead of calling a
// backend. The last payload repeats if the script runs out.
type scriptedGenerator struct {
	responses []string
	calls     int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ provider.Config, _ provider.Request) (string, error) {
	i := g.calls
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	g.calls++
	return g.responses[i], nil
}

var script = []string{
	`{
		"text": "The guard pockets your memory of home with a hungry smile and waves you through. Inside, Oakhaven's streets coil like intestines.",
		"statUpdates": {"stress": 1, "connections": 1},
		"ruleUpdates": {"add": [{"id": "r13", "title": "Toll Paid in Memory", "type": "CONSTRAINT", "description": "A piece of you belongs to the gate now.", "active": true}]},
		"isGameOver": false,
		"choices": [
			{"id": "a1", "text": "Follow the smell of sulfur to the lower market.", "consequence": "Find the black market.", "risk": "Ambush"},
			{"id": "a2", "text": "Ask a beggar about the Ember Heart.", "consequence": "Information costs coin or favor.", "cost": "A favor"}
		]
	}`,
	`{
		"text": "The beggar's eyes go white. 'The Heart beats beneath the cathedral,' he rasps, 'and the bishop knows you are coming.'",
		"statUpdates": {"credibility": -1, "stress": 2},
		"ruleUpdates": {"removeIds": ["r5"]},
		"isGameOver": false,
		"choices": [
			{"id": "b1", "text": "Break into the cathedral crypt tonight.", "consequence": "Direct but dangerous.", "risk": "Night terrors"},
			{"id": "b2", "text": "Seek the bishop openly and bargain.", "consequence": "Diplomacy under suspicion."}
		]
	}`,
	// Deliberately broken payload. The sanitizer turns it into the fallback
	// scene with a single retry choice, and the run keeps going.
	"```json\n{\"text\": \"not even close",
	`{
		"text": "The crypt opens onto a chamber of slow red light. The Ember Heart hangs in the air, beating. You reach out, and the world holds its breath.",
		"statUpdates": {"stress": 3, "credibility": 2},
		"ruleUpdates": {},
		"isGameOver": true,
		"gameSummary": "You carried the Ember Heart out of Oakhaven as the rot began, at last, to retreat. What it cost you will surface later.",
		"choices": []
	}`,
}

func main() {
	log := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	gen := &scriptedGenerator{responses: script}
	eng := engine.New(gen, log)
	st := store.New(eng, provider.DefaultSettings(), false, log)

	chars := content.Characters()
	state := st.StartNewGame(chars[2]) // Vesper, the Whispering Thief
	fmt.Printf("=== New game as %s, %s ===\n\n", chars[2].Name, chars[2].Title)
	fmt.Println(state.CurrentStory.Text)

	for state.Phase == models.PhaseGameplay {
		if len(state.CurrentStory.Choices) == 0 {
			fmt.Println("\nNo paths remain open.")
			break
		}
		choice := state.CurrentStory.Choices[0]
		fmt.Printf("\n--- Turn %d: %s ---\n", state.TurnCount, choice.Text)

		var err error
		state, err = st.ResolveTurn(context.Background(), choice.Text)
		if err != nil {
			fmt.Printf("turn failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(state.CurrentStory.Text)
		fmt.Printf("[credibility %d, stress %d, connections %d, %d active rules]\n",
			state.RealityStats.Credibility,
			state.RealityStats.Stress,
			state.RealityStats.Connections,
			len(state.ActiveRules()))
	}

	if state.Phase == models.PhaseGameOver {
		fmt.Printf("\n=== GAME OVER after %d turns ===\n%s\n", state.TurnCount, state.FinalSummary)
	}
}
