package engine

import (
	"slices"

	"github.com/tatianab/persona-chronicles/internal/content"
	"github.com/tatianab/persona-chronicles/internal/models"
)

// Default endings substituted when a guardrail fires and the model supplied
// no summary of its own.
const (
	MindShatteredSummary = "Your sanity has shattered. The world dissolves into an incomprehensible blur of color and screaming."
	ExiledSummary        = "You are cast out for good. No city will ever open its gates to you again."
)

// NewGame seeds the state for a fresh run with the chosen character.
func NewGame(char models.Character) models.GameState {
	intro := content.IntroNode()
	return models.GameState{
		Phase:        models.PhaseGameplay,
		Character:    &char,
		Rules:        content.InitialRules(),
		StoryLog:     []models.StoryNode{intro},
		CurrentStory: &intro,
		RealityStats: content.DefaultStats(),
		TurnCount:    1,
		MaxTurns:     content.DefaultMaxTurns,
	}
}

// InitialState is the pre-game SELECTION state.
func InitialState() models.GameState {
	return models.GameState{
		Phase:        models.PhaseSelection,
		Rules:        content.InitialRules(),
		RealityStats: content.DefaultStats(),
		MaxTurns:     content.DefaultMaxTurns,
	}
}

// ApplyTurn folds a sanitized TurnResult into the game state and returns
// the next state. Pure: no I/O, inputs never mutated. The step order
// (stats, rules, guardrails, log, counter, phase) is fixed because the
// guardrails judge the post-delta stats.
func ApplyTurn(state models.GameState, result models.TurnResult) models.GameState {
	next := state

	// 1. Stats: apply deltas, clamp to [StatMin, StatMax]. Clamping is the
	// final word; an out-of-range delta is truncated, not rejected.
	next.RealityStats = applyStats(state.RealityStats, result.StatUpdates)

	// 2. Rule deck: removes before adds; an add colliding with a surviving
	// id is dropped so ids stay pairwise distinct.
	next.Rules = applyRules(state.Rules, result.RuleUpdates)

	// 3. Guardrail override, independent of the model's verdict. It can
	// only end a game, never un-end one. A model-supplied summary wins
	// over the guardrail default.
	gameOver := result.IsGameOver
	summary := result.GameSummary
	if next.RealityStats.Stress >= models.StatMax {
		gameOver = true
		if summary == "" {
			summary = MindShatteredSummary
		}
	}
	if next.RealityStats.Credibility <= models.StatMin {
		gameOver = true
		if summary == "" {
			summary = ExiledSummary
		}
	}

	// 4. Story log: append-only, newest node becomes current.
	node := result.StoryNode
	next.StoryLog = append(slices.Clone(state.StoryLog), node)
	next.CurrentStory = &node

	// 5. Turn counter.
	next.TurnCount = state.TurnCount + 1

	// 6. Phase transition.
	if gameOver {
		next.Phase = models.PhaseGameOver
		next.FinalSummary = summary
	}

	return next
}

func applyStats(stats models.RealityStats, updates models.StatUpdates) models.RealityStats {
	if updates.Credibility != nil {
		stats.Credibility = clampStat(stats.Credibility + *updates.Credibility)
	}
	if updates.Stress != nil {
		stats.Stress = clampStat(stats.Stress + *updates.Stress)
	}
	if updates.Connections != nil {
		stats.Connections = clampStat(stats.Connections + *updates.Connections)
	}
	return stats
}

func clampStat(v int) int {
	if v < models.StatMin {
		return models.StatMin
	}
	if v > models.StatMax {
		return models.StatMax
	}
	return v
}

func applyRules(rules []models.RuleCard, updates models.RuleUpdates) []models.RuleCard {
	removed := make(map[string]bool, len(updates.RemoveIDs))
	for _, id := range updates.RemoveIDs {
		removed[id] = true
	}

	out := make([]models.RuleCard, 0, len(rules)+len(updates.Add))
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if removed[r.ID] {
			continue
		}
		out = append(out, r)
		seen[r.ID] = true
	}
	for _, card := range updates.Add {
		if seen[card.ID] {
			continue
		}
		out = append(out, card)
		seen[card.ID] = true
	}
	return out
}
