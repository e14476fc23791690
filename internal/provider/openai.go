package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openAIAdapter talks to any OpenAI-compatible chat completion endpoint.
// These backends have no schema parameter, so the expected shape is appended
// to the system instruction and JSON-object response format is requested.
type openAIAdapter struct {
	cfg OpenAIConfig
}

func newOpenAIAdapter(cfg OpenAIConfig) *openAIAdapter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBase
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	return &openAIAdapter{cfg: cfg}
}

func (a *openAIAdapter) Complete(ctx context.Context, req Request) (string, error) {
	conf := openai.DefaultConfig(a.cfg.APIKey)
	conf.BaseURL = a.cfg.BaseURL
	client := openai.NewClientWithConfig(conf)

	system := req.SystemInstruction
	if req.JSONMode && req.Schema != nil {
		system += "\n\nRespond with a single JSON object matching this schema:\n" + req.Schema.JSON()
	}

	chatReq := openai.ChatCompletionRequest{
		Model: a.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion from %s", ErrMalformedResponse, a.cfg.BaseURL)
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case codeIs(apiErr.Code, "content_filter") || codeIs(apiErr.Code, "content_policy_violation"):
			return fmt.Errorf("%w: %v", ErrContentViolation, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

// codeIs matches the loosely-typed APIError.Code against a string code.
func codeIs(code any, want string) bool {
	s, ok := code.(string)
	return ok && strings.EqualFold(s, want)
}
