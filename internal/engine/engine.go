// Package engine owns one turn of the game: it asks the configured backend
// for the next narrative beat, sanitizes the answer, and folds it into
// authoritative game state with a pure reducer.
package engine

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/tatianab/persona-chronicles/internal/models"
	"github.com/tatianab/persona-chronicles/internal/provider"
	"github.com/tatianab/persona-chronicles/internal/sanitize"
)

//go:embed prompts/system.txt
var systemPrompt string

//go:embed prompts/process_turn.txt
var processTurnPrompt string

// historyLimit bounds the prior-story digest sent with each turn. It keeps
// the outbound request size sane; it is not a correctness requirement.
const historyLimit = 1000

// Generator dispatches one completion call. Satisfied by *provider.Gateway.
type Generator interface {
	Generate(ctx context.Context, cfg provider.Config, req provider.Request) (string, error)
}

// TurnRequest is everything one turn needs: the player's situation, the
// chosen action, and a snapshot of the provider configuration.
type TurnRequest struct {
	Character      models.Character
	ActiveRules    []models.RuleCard
	RealityStats   models.RealityStats
	LastChoiceText string
	HistorySummary string
	TurnCount      int
	MaxTurns       int
	Provider       provider.Config
}

type Engine struct {
	gateway Generator
	tmpl    *template.Template
	log     zerolog.Logger
}

func New(gateway Generator, log zerolog.Logger) *Engine {
	return &Engine{
		gateway: gateway,
		tmpl:    template.Must(template.New("process_turn").Parse(processTurnPrompt)),
		log:     log,
	}
}

// RequestTurn runs the outbound half of a turn: prompt build, completion
// call, sanitize. Transport and malformed-response failures degrade into
// the sanitizer's fallback result so the game always receives a
// structurally valid TurnResult; only a *provider.ConfigurationError
// surfaces as an error.
func (e *Engine) RequestTurn(ctx context.Context, req TurnRequest) (models.TurnResult, error) {
	prompt, err := e.buildPrompt(req)
	if err != nil {
		e.log.Error().Err(err).Msg("prompt template failed")
		return sanitize.Fallback(), nil
	}

	raw, err := e.gateway.Generate(ctx, req.Provider, provider.Request{
		Prompt:            prompt,
		SystemInstruction: systemPrompt,
		Schema:            TurnSchema(),
		JSONMode:          true,
	})
	if err != nil {
		var cfgErr *provider.ConfigurationError
		if errors.As(err, &cfgErr) {
			return models.TurnResult{}, cfgErr
		}
		e.log.Warn().Err(err).Int("turn", req.TurnCount).Msg("turn degraded to fallback")
		return sanitize.Fallback(), nil
	}

	return sanitize.Sanitize(raw), nil
}

func (e *Engine) buildPrompt(req TurnRequest) (string, error) {
	var registry strings.Builder
	for _, r := range req.ActiveRules {
		registry.WriteString("(ID: " + r.ID + ") " + r.Title + ": " + r.Description + "\n")
	}

	finalDirective := "Generate 3 distinct choices for the next step."
	if req.TurnCount >= req.MaxTurns {
		finalDirective = "This is the CLIMAX. Do not generate choices. Set isGameOver to true and provide a gameSummary."
	}

	var buf bytes.Buffer
	data := struct {
		TurnCount      int
		MaxTurns       int
		Name           string
		Title          string
		Weakness       string
		Credibility    int
		Stress         int
		Connections    int
		RulesRegistry  string
		HistorySummary string
		PlayerAction   string
		FinalDirective string
	}{
		TurnCount:      req.TurnCount,
		MaxTurns:       req.MaxTurns,
		Name:           req.Character.Name,
		Title:          req.Character.Title,
		Weakness:       req.Character.Weakness,
		Credibility:    req.RealityStats.Credibility,
		Stress:         req.RealityStats.Stress,
		Connections:    req.RealityStats.Connections,
		RulesRegistry:  registry.String(),
		HistorySummary: req.HistorySummary,
		PlayerAction:   req.LastChoiceText,
		FinalDirective: finalDirective,
	}
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HistorySummary digests the story log for the prompt: concatenated prior
// narrative text, trimmed to roughly the most recent historyLimit bytes at
// a rune boundary.
func HistorySummary(log []models.StoryNode) string {
	var b strings.Builder
	for i, node := range log {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(node.Text)
	}
	s := b.String()
	if len(s) <= historyLimit {
		return s
	}
	cut := len(s) - historyLimit
	for cut < len(s) && !isRuneStart(s[cut]) {
		cut++
	}
	return s[cut:]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// TurnSchema describes the JSON object the model must answer with.
func TurnSchema() *provider.Schema {
	ruleCard := &provider.Schema{
		Type: provider.TypeObject,
		Properties: map[string]*provider.Schema{
			"id":          {Type: provider.TypeString},
			"title":       {Type: provider.TypeString},
			"type":        {Type: provider.TypeString, Enum: []string{"CONSTRAINT", "BONUS", "RISK", "REALITY"}},
			"description": {Type: provider.TypeString},
			"active":      {Type: provider.TypeBoolean},
		},
	}

	return &provider.Schema{
		Type: provider.TypeObject,
		Properties: map[string]*provider.Schema{
			"text": {Type: provider.TypeString, Description: "The narrative segment."},
			"statUpdates": {
				Type: provider.TypeObject,
				Properties: map[string]*provider.Schema{
					"credibility": {Type: provider.TypeInteger, Description: "Change amount, e.g. -1"},
					"stress":      {Type: provider.TypeInteger, Description: "Change amount, e.g. +2"},
					"connections": {Type: provider.TypeInteger, Description: "Change amount, e.g. -1"},
				},
			},
			"ruleUpdates": {
				Type: provider.TypeObject,
				Properties: map[string]*provider.Schema{
					"add":       {Type: provider.TypeArray, Items: ruleCard},
					"removeIds": {Type: provider.TypeArray, Items: &provider.Schema{Type: provider.TypeString}},
				},
			},
			"isGameOver":  {Type: provider.TypeBoolean},
			"gameSummary": {Type: provider.TypeString, Description: "Only if isGameOver is true."},
			"choices": {
				Type: provider.TypeArray,
				Items: &provider.Schema{
					Type: provider.TypeObject,
					Properties: map[string]*provider.Schema{
						"id":          {Type: provider.TypeString},
						"text":        {Type: provider.TypeString},
						"consequence": {Type: provider.TypeString},
						"cost":        {Type: provider.TypeString},
						"risk":        {Type: provider.TypeString},
					},
				},
			},
		},
	}
}
