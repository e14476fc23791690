package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() GameState {
	intro := StoryNode{
		Text: "The gates of Oakhaven loom.",
		Choices: []StoryChoice{
			{ID: "opt1", Text: "Pay the toll.", Consequence: "Lighter pockets.", Cost: "A memory"},
		},
	}
	return GameState{
		Phase:     PhaseGameplay,
		Character: &Character{ID: "c3", Name: "Vesper", Title: "the Whispering Thief", Weakness: "Locked doors"},
		Rules: []RuleCard{
			{ID: "r1", Title: "Iron Curfew", Kind: RuleConstraint, Description: "Streets empty at dusk.", Active: true},
			{ID: "r2", Title: "Old Debt", Kind: RuleRisk, Description: "Someone remembers you.", Active: false},
		},
		StoryLog:     []StoryNode{intro},
		CurrentStory: &intro,
		RealityStats: RealityStats{Credibility: 5, Stress: 2, Connections: 3},
		TurnCount:    1,
		MaxTurns:     10,
	}
}

func TestSaveAndLoadState(t *testing.T) {
	SaveDir = t.TempDir()

	state := sampleState()
	require.NoError(t, state.Save("slot1"))

	loaded, err := LoadState("slot1")
	require.NoError(t, err)
	assert.Equal(t, &state, loaded)
}

func TestLoadStateMissing(t *testing.T) {
	SaveDir = t.TempDir()

	_, err := LoadState("never-saved")
	assert.Error(t, err)
}

func TestListSaves(t *testing.T) {
	SaveDir = t.TempDir()

	saves, err := ListSaves()
	require.NoError(t, err)
	assert.Empty(t, saves)

	state := sampleState()
	require.NoError(t, state.Save("current"))
	require.NoError(t, state.Save("backup"))

	saves, err = ListSaves()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"current", "backup"}, saves)
}

func TestGameStateJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(sampleState())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, field := range []string{"phase", "character", "rules", "storyLog", "currentStory", "realityStats", "turnCount", "maxTurns"} {
		assert.Contains(t, doc, field)
	}

	rules := doc["rules"].([]any)
	first := rules[0].(map[string]any)
	assert.Equal(t, "CONSTRAINT", first["type"], "rule kind serializes under the 'type' key")
}

func TestActiveRules(t *testing.T) {
	state := sampleState()

	active := state.ActiveRules()
	require.Len(t, active, 1)
	assert.Equal(t, "r1", active[0].ID)

	state.Rules = nil
	assert.Empty(t, state.ActiveRules())
}

func TestTurnResultWireShape(t *testing.T) {
	raw := `{
		"text": "A door.",
		"choices": [{"id": "c1", "text": "Open it.", "consequence": ""}],
		"statUpdates": {"stress": 1},
		"isGameOver": false
	}`

	var result TurnResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))

	assert.Equal(t, "A door.", result.Text)
	require.Len(t, result.Choices, 1)
	require.NotNil(t, result.StatUpdates.Stress)
	assert.Equal(t, 1, *result.StatUpdates.Stress)
}
