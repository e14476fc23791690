package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Gateway selects the configured adapter and dispatches a single completion
// call. Pure dispatch: no retry, no cache. A failed call surfaces to the
// caller immediately.
type Gateway struct {
	timeout time.Duration
	log     zerolog.Logger
}

// NewGateway builds a gateway. timeout bounds each outbound call; zero
// means no bound beyond the caller's context.
func NewGateway(timeout time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{timeout: timeout, log: log}
}

// Generate validates cfg, dispatches req to the adapter cfg selects and
// returns the raw textual payload. cfg is taken by value, so settings
// changed mid-flight never affect a dispatched call. An unknown or
// unconfigured variant yields a *ConfigurationError before any network I/O.
func (g *Gateway) Generate(ctx context.Context, cfg Config, req Request) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	var adapter Adapter
	switch cfg.Kind {
	case KindGemini:
		adapter = newGeminiAdapter(*cfg.Gemini)
	case KindOpenAI:
		adapter = newOpenAIAdapter(*cfg.OpenAI)
	case KindOllama:
		adapter = newOllamaAdapter(*cfg.Ollama)
	default:
		// Validate already rejects unknown kinds; keep the switch total.
		return "", &ConfigurationError{Reason: "unknown provider kind " + string(cfg.Kind)}
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := adapter.Complete(ctx, req)
	if err != nil {
		g.log.Warn().
			Str("provider", string(cfg.Kind)).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Msg("completion failed")
		return "", err
	}

	g.log.Debug().
		Str("provider", string(cfg.Kind)).
		Dur("elapsed", time.Since(start)).
		Int("response_bytes", len(text)).
		Msg("completion ok")
	return text, nil
}
