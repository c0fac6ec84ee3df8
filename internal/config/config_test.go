package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "")
	t.Setenv("BRIEFCAST_MODEL", "")
	t.Setenv("BRIEFCAST_TTS_PROVIDER", "")
	t.Setenv("BRIEFCAST_REQUEST_TIMEOUT", "")
	t.Setenv("BRIEFCAST_MAX_RETRIES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "openai", cfg.TTSProvider)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9090")
	t.Setenv("BRIEFCAST_MODEL", "gpt-4o-mini")
	t.Setenv("BRIEFCAST_TTS_PROVIDER", "elevenlabs")
	t.Setenv("BRIEFCAST_REQUEST_TIMEOUT", "10s")
	t.Setenv("BRIEFCAST_MAX_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "elevenlabs", cfg.TTSProvider)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("BRIEFCAST_REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("BRIEFCAST_MAX_RETRIES", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2, cfg.MaxRetries)
}
