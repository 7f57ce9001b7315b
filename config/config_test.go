package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "CORPUS_DIR", "CHROMA_COLLECTION", "OLLAMA_URL",
		"OLLAMA_EMBED_MODEL", "GEMINI_API_KEY", "GEMINI_MODEL", "MATCH_THRESHOLD", "MATCH_COUNT"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gita_contents", cfg.Collection)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, 0.3, cfg.MatchThreshold)
	assert.Equal(t, 3, cfg.MatchCount)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCH_THRESHOLD", "0.5")
	t.Setenv("MATCH_COUNT", "5")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.MatchThreshold)
	assert.Equal(t, 5, cfg.MatchCount)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCH_THRESHOLD", "not-a-number")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveMatchCount(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCH_COUNT", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestRequireGeminiKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Error(t, cfg.RequireGeminiKey())

	t.Setenv("GEMINI_API_KEY", "test-key")
	cfg, err = Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.RequireGeminiKey())
}
