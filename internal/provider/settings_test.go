package provider

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.yaml")

	settings := DefaultSettings()
	settings.Provider = KindOpenAI
	settings.OpenAI.APIKey = "sk-test"
	settings.OpenAI.BaseURL = "https://openrouter.ai/api/v1"
	settings.Ollama.Model = "mistral"
	require.NoError(t, settings.Save(path))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettingsPartialDocumentKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: ollama\n"), 0600))

	loaded, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, KindOllama, loaded.Provider)
	assert.Equal(t, DefaultGeminiModel, loaded.Gemini.Model, "unmentioned variants keep their defaults")
	assert.Equal(t, DefaultOllamaBase, loaded.Ollama.BaseURL)
}

func TestConfigSnapshotsActiveVariant(t *testing.T) {
	settings := DefaultSettings()
	settings.Provider = KindGemini
	settings.Gemini.APIKey = "k1"

	cfg := settings.Config()
	require.NotNil(t, cfg.Gemini)
	assert.Equal(t, "k1", cfg.Gemini.APIKey)
	assert.Nil(t, cfg.OpenAI)
	assert.Nil(t, cfg.Ollama)

	// Later edits must not leak into the snapshot.
	settings.Gemini.APIKey = "k2"
	assert.Equal(t, "k1", cfg.Gemini.APIKey)
}

func TestConfigSnapshotPerVariant(t *testing.T) {
	settings := DefaultSettings()

	settings.Provider = KindOpenAI
	settings.OpenAI.APIKey = "sk"
	cfg := settings.Config()
	assert.Equal(t, KindOpenAI, cfg.Kind)
	require.NotNil(t, cfg.OpenAI)
	assert.Nil(t, cfg.Gemini)

	settings.Provider = KindOllama
	cfg = settings.Config()
	assert.Equal(t, KindOllama, cfg.Kind)
	require.NotNil(t, cfg.Ollama)
	assert.Equal(t, DefaultOllamaBase, cfg.Ollama.BaseURL)
}
