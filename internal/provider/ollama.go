package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// ollamaAdapter talks to a local Ollama instance over its native API.
// JSON mode maps onto Ollama's format field; the schema rides along in the
// system instruction since the native API takes no schema of its own.
type ollamaAdapter struct {
	cfg OllamaConfig
}

func newOllamaAdapter(cfg OllamaConfig) *ollamaAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOllamaBase
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	return &ollamaAdapter{cfg: cfg}
}

func (a *ollamaAdapter) Complete(ctx context.Context, req Request) (string, error) {
	// api.NewClient wants the bare host URL, without the /v1 suffix an
	// OpenAI-compatible config might carry.
	base := strings.TrimSuffix(a.cfg.BaseURL, "/v1")
	base = strings.TrimSuffix(base, "/")
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: parsing ollama base URL %q: %v", ErrTransport, a.cfg.BaseURL, err)
	}
	client := api.NewClient(parsed, http.DefaultClient)

	system := req.SystemInstruction
	if req.JSONMode && req.Schema != nil {
		system += "\n\nRespond with a single JSON object matching this schema:\n" + req.Schema.JSON()
	}

	stream := false
	chatReq := &api.ChatRequest{
		Model: a.cfg.Model,
		Messages: []api.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: req.Prompt},
		},
		Stream: &stream,
	}
	if req.JSONMode {
		chatReq.Format = json.RawMessage(`"json"`)
	}

	var resp api.ChatResponse
	err = client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		resp = r
		return nil
	})
	if err != nil {
		return "", classifyOllamaError(err)
	}

	if resp.Message.Content == "" {
		return "", fmt.Errorf("%w: empty response from ollama", ErrMalformedResponse)
	}
	return resp.Message.Content, nil
}

func classifyOllamaError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case 401, 403:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
