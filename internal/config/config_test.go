package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/persona-chronicles/internal/provider"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PERSONA_SAVE_DIR", "PERSONA_SETTINGS", "PERSONA_LOG_FILE", "PERSONA_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ".saves", cfg.SaveDir)
	assert.Equal(t, "settings.yaml", cfg.SettingsPath)
	assert.Equal(t, "persona.log", cfg.LogFile)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PERSONA_SAVE_DIR", "/tmp/saves")
	t.Setenv("PERSONA_TIMEOUT_SECONDS", "15")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/saves", cfg.SaveDir)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigIgnoresBadTimeout(t *testing.T) {
	t.Setenv("PERSONA_TIMEOUT_SECONDS", "soon")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
}

func TestApplyEnvOverlaysCredentials(t *testing.T) {
	t.Setenv("PERSONA_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OPENAI_BASE_URL", "https://openrouter.ai/api/v1")
	t.Setenv("OPENAI_MODEL", "")

	settings := provider.DefaultSettings()
	ApplyEnv(settings)

	assert.Equal(t, provider.KindOpenAI, settings.Provider)
	assert.Equal(t, "sk-env", settings.OpenAI.APIKey)
	assert.Equal(t, "https://openrouter.ai/api/v1", settings.OpenAI.BaseURL)
	assert.Equal(t, provider.DefaultOpenAIModel, settings.OpenAI.Model, "unset variables leave settings alone")
}

func TestApplyEnvLeavesSettingsWhenUnset(t *testing.T) {
	for _, key := range []string{"PERSONA_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OLLAMA_HOST"} {
		t.Setenv(key, "")
	}

	settings := provider.DefaultSettings()
	settings.Gemini.APIKey = "from-file"

	ApplyEnv(settings)

	assert.Equal(t, provider.KindGemini, settings.Provider)
	assert.Equal(t, "from-file", settings.Gemini.APIKey)
}
