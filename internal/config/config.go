package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/tatianab/persona-chronicles/internal/provider"
)

// Config holds the application configuration.
type Config struct {
	SaveDir        string
	SettingsPath   string
	LogFile        string
	RequestTimeout time.Duration
}

// LoadConfig loads the configuration from the environment, reading a .env
// file first when one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SaveDir:        envOr("PERSONA_SAVE_DIR", ".saves"),
		SettingsPath:   envOr("PERSONA_SETTINGS", "settings.yaml"),
		LogFile:        envOr("PERSONA_LOG_FILE", "persona.log"),
		RequestTimeout: 90 * time.Second,
	}
	if raw := os.Getenv("PERSONA_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	return cfg, nil
}

// ApplyEnv overlays environment credentials on loaded settings, so keys
// can come from the environment without ever touching the settings file.
func ApplyEnv(s *provider.Settings) {
	if v := os.Getenv("PERSONA_PROVIDER"); v != "" {
		s.Provider = provider.Kind(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		s.Gemini.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		s.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		s.OpenAI.Model = v
	}
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		s.Ollama.BaseURL = v
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
