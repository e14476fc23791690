package provider

import "strings"

// Kind tags the backend variant a Config selects.
type Kind string

const (
	KindGemini Kind = "gemini"
	KindOpenAI Kind = "openai"
	KindOllama Kind = "ollama"
)

// Default endpoints and models per backend.
const (
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultOpenAIBase  = "https://api.openai.com/v1"
	DefaultOpenAIModel = "gpt-4-turbo-preview"
	DefaultOllamaBase  = "http://localhost:11434"
	DefaultOllamaModel = "llama3"
)

// GeminiConfig holds credentials for the Gemini backend.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// OpenAIConfig holds credentials for any OpenAI-compatible backend.
// A custom BaseURL also covers OpenRouter, DeepSeek and the like.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// OllamaConfig holds the endpoint for a local Ollama instance. No key.
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Config is a tagged union selecting exactly one backend plus its options.
// It is passed by value so a dispatched call keeps the snapshot it was
// given, unaffected by later settings changes.
type Config struct {
	Kind   Kind          `yaml:"kind"`
	Gemini *GeminiConfig `yaml:"gemini,omitempty"`
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
	Ollama *OllamaConfig `yaml:"ollama,omitempty"`
}

// Validate reports a ConfigurationError if the selected variant is missing
// its required fields. It never performs I/O.
func (c Config) Validate() error {
	switch c.Kind {
	case KindGemini:
		if c.Gemini == nil || strings.TrimSpace(c.Gemini.APIKey) == "" {
			return &ConfigurationError{Reason: "gemini selected but no API key configured"}
		}
	case KindOpenAI:
		if c.OpenAI == nil || strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return &ConfigurationError{Reason: "openai selected but no API key configured"}
		}
	case KindOllama:
		if c.Ollama == nil || strings.TrimSpace(c.Ollama.BaseURL) == "" {
			return &ConfigurationError{Reason: "ollama selected but no base URL configured"}
		}
	default:
		return &ConfigurationError{Reason: "unknown provider kind " + string(c.Kind)}
	}
	return nil
}
