// Package sanitize coerces the model's loosely-typed JSON payload into a
// strictly-typed TurnResult. The payload is adversarial by construction:
// well-schema'd most of the time, but never to be trusted past this
// boundary. Sanitize is total: any failure degrades to a fixed fallback
// result instead of an error.
package sanitize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tatianab/persona-chronicles/internal/models"
)

// Fixed texts used when the payload cannot be trusted.
const (
	// FallbackText is the narrative shown when the whole response is unusable.
	FallbackText = "The weave of reality tears. A connection to the beyond has been disrupted."
	// RetryChoiceID identifies the single choice the fallback scene offers.
	RetryChoiceID = "retry"
	// PlaceholderText replaces a narrative field that was not a string.
	PlaceholderText = "The mist closes in..."
	// placeholderChoiceText replaces a choice label that was not a string.
	placeholderChoiceText = "Press on."
)

// Fallback returns the safe TurnResult used for any unrecoverable payload:
// fixed text, a single retry choice, no state changes, game not over.
func Fallback() models.TurnResult {
	return models.TurnResult{
		StoryNode: models.StoryNode{
			Text: FallbackText,
			Choices: []models.StoryChoice{
				{ID: RetryChoiceID, Text: "Attempt to mend reality", Consequence: "Retry"},
			},
		},
	}
}

// Sanitize parses raw as JSON and coerces it field by field into a
// TurnResult. It never panics and never returns an error; unusable input
// yields Fallback().
func Sanitize(raw string) models.TurnResult {
	var payload map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &payload); err != nil {
		return Fallback()
	}

	return models.TurnResult{
		StoryNode: models.StoryNode{
			Text:    coerceText(payload["text"]),
			Choices: coerceChoices(payload["choices"]),
		},
		StatUpdates: coerceStatUpdates(payload["statUpdates"]),
		RuleUpdates: coerceRuleUpdates(payload["ruleUpdates"]),
		IsGameOver:  coerceBool(payload["isGameOver"]),
		GameSummary: coerceString(payload["gameSummary"]),
	}
}

// stripFences removes a markdown code fence the model may wrap the JSON in.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// coerceText guarantees a string reaches the rendering boundary; anything
// else (nested object, array, number) becomes the fixed placeholder.
func coerceText(v any) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return PlaceholderText
}

func coerceChoices(v any) []models.StoryChoice {
	items, ok := v.([]any)
	if !ok {
		return []models.StoryChoice{}
	}

	choices := make([]models.StoryChoice, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)

		choice := models.StoryChoice{
			ID:          coerceString(obj["id"]),
			Text:        coerceString(obj["text"]),
			Consequence: coerceString(obj["consequence"]),
			Cost:        coercePrimitive(obj["cost"]),
			Risk:        coercePrimitive(obj["risk"]),
		}
		if choice.ID == "" {
			// Stable synthetic id by position.
			choice.ID = fmt.Sprintf("choice_%d", i)
		}
		if choice.Text == "" {
			choice.Text = placeholderChoiceText
		}
		choices = append(choices, choice)
	}
	return choices
}

func coerceStatUpdates(v any) models.StatUpdates {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.StatUpdates{}
	}
	return models.StatUpdates{
		Credibility: coerceDelta(obj["credibility"]),
		Stress:      coerceDelta(obj["stress"]),
		Connections: coerceDelta(obj["connections"]),
	}
}

// coerceDelta accepts an integer delta. Non-numeric or absent fields are a
// no-op, never an error; a fractional number is truncated toward zero.
func coerceDelta(v any) *int {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	n := int(math.Trunc(f))
	return &n
}

func coerceRuleUpdates(v any) models.RuleUpdates {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.RuleUpdates{}
	}

	var updates models.RuleUpdates
	if items, ok := obj["add"].([]any); ok {
		for _, item := range items {
			if card, ok := coerceRuleCard(item); ok {
				updates.Add = append(updates.Add, card)
			}
		}
	}
	if ids, ok := obj["removeIds"].([]any); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok && s != "" {
				updates.RemoveIDs = append(updates.RemoveIDs, s)
			}
		}
	}
	return updates
}

// coerceRuleCard validates one proposed rule. A card missing its id or title
// is dropped entirely rather than guessed; an unknown kind is normalized to
// REALITY since the taxonomy is display-only.
func coerceRuleCard(v any) (models.RuleCard, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.RuleCard{}, false
	}

	card := models.RuleCard{
		ID:          coerceString(obj["id"]),
		Title:       coerceString(obj["title"]),
		Kind:        models.RuleKind(coerceString(obj["type"])),
		Description: coerceString(obj["description"]),
		Active:      true,
	}
	if card.ID == "" || card.Title == "" {
		return models.RuleCard{}, false
	}
	if !models.ValidRuleKind(card.Kind) {
		card.Kind = models.RuleReality
	}
	if active, ok := obj["active"].(bool); ok {
		card.Active = active
	}
	return card, true
}

func coerceBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

// coercePrimitive stringifies presentation hints when they arrive as a
// compatible primitive (string or number); anything else is omitted.
func coercePrimitive(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
