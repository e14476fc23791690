package provider

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the persisted provider configuration document. It lives in
// its own file, apart from game saves, so clearing one never clears the
// other. All variants are kept so switching backends doesn't lose the
// previous one's credentials.
type Settings struct {
	Provider Kind         `yaml:"provider"`
	Gemini   GeminiConfig `yaml:"gemini"`
	OpenAI   OpenAIConfig `yaml:"openai"`
	Ollama   OllamaConfig `yaml:"ollama"`
}

// DefaultSettings mirrors a fresh install: Gemini selected, endpoints at
// their well-known defaults, no keys.
func DefaultSettings() *Settings {
	return &Settings{
		Provider: KindGemini,
		Gemini:   GeminiConfig{Model: DefaultGeminiModel},
		OpenAI:   OpenAIConfig{BaseURL: DefaultOpenAIBase, Model: DefaultOpenAIModel},
		Ollama:   OllamaConfig{BaseURL: DefaultOllamaBase, Model: DefaultOllamaModel},
	}
}

// LoadSettings reads the settings document, returning defaults when the
// file does not exist yet.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes the settings document.
func (s *Settings) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Config snapshots the active variant as a dispatchable tagged union.
func (s *Settings) Config() Config {
	cfg := Config{Kind: s.Provider}
	switch s.Provider {
	case KindGemini:
		gemini := s.Gemini
		cfg.Gemini = &gemini
	case KindOpenAI:
		openAI := s.OpenAI
		cfg.OpenAI = &openAI
	case KindOllama:
		ollama := s.Ollama
		cfg.Ollama = &ollama
	}
	return cfg
}
