package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", cfg.ServerURL)
	assert.Equal(t, 4096, cfg.MaxContextWindow)
	assert.Equal(t, 200, cfg.SystemMessageReserve)
	assert.Equal(t, 500, cfg.ResponseReserve)
	assert.Equal(t, 100, cfg.MinTokens)
	assert.Equal(t, 4096, cfg.MaxTokens)
	assert.Equal(t, 0.7, cfg.Temperature)
	assert.Equal(t, 0.95, cfg.TopP)
	assert.Equal(t, "mistral", cfg.Provider)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Empty(t, cfg.AuthSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MISTRAL_SERVER_URL", "http://inference:9000")
	t.Setenv("MAX_CONTEXT_WINDOW", "8192")
	t.Setenv("RESPONSE_RESERVE", "1000")
	t.Setenv("TEMPERATURE", "0.2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://inference:9000", cfg.ServerURL)
	assert.Equal(t, 8192, cfg.MaxContextWindow)
	assert.Equal(t, 1000, cfg.ResponseReserve)
	assert.Equal(t, 0.2, cfg.Temperature)
}

func TestLoadRejectsMinAboveMax(t *testing.T) {
	t.Setenv("MIN_TOKENS", "2000")
	t.Setenv("MAX_TOKENS", "1000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIN_TOKENS")
}

func TestLoadRejectsMaxTokensAboveWindow(t *testing.T) {
	t.Setenv("MAX_TOKENS", "9000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_CONTEXT_WINDOW")
}

func TestLoadRejectsReservesFillingWindow(t *testing.T) {
	t.Setenv("MAX_CONTEXT_WINDOW", "1024")
	t.Setenv("SYSTEM_MESSAGE_RESERVE", "600")
	t.Setenv("RESPONSE_RESERVE", "600")
	t.Setenv("MAX_TOKENS", "1024")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESPONSE_RESERVE")
}

func TestLoadRejectsTooLittleMessageSpace(t *testing.T) {
	// Reserves fit below the window but leave under 100 tokens of room.
	t.Setenv("MAX_CONTEXT_WINDOW", "1024")
	t.Setenv("SYSTEM_MESSAGE_RESERVE", "500")
	t.Setenv("RESPONSE_RESERVE", "460")
	t.Setenv("MAX_TOKENS", "1024")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient space")
}

func TestLoadRejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("MIN_TOKENS", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}
