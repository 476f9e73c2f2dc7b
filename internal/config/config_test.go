package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("PORT", "5000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_MODEL", "gpt-5")
	t.Setenv("PROPOSAL_LIMIT", "10")

	cfg := FromEnv()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "https://hub.snapshot.org/graphql", cfg.SnapshotURL)
	assert.Equal(t, 30*time.Second, cfg.SnapshotTimeout)
	assert.Equal(t, 10*time.Second, cfg.AITimeout)
	assert.Equal(t, 100, cfg.AIMaxTokens)
	assert.Equal(t, 10, cfg.ProposalLimit)
	assert.False(t, cfg.AIConfigured())
	assert.Equal(t, "info", cfg.EffectiveLogLevel())
}

func TestDevelopmentForcesDebug(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := FromEnv()
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.EffectiveLogLevel())
}

func TestAPIKeyFallsBackToGenericName(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("AI_MODEL", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AI_API_KEY", "g-key")

	cfg := FromEnv()
	assert.Equal(t, "g-key", cfg.AIApiKey)
	assert.True(t, cfg.AIConfigured())
	assert.Equal(t, ProviderGemini, cfg.AIProvider)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("AI_PROVIDER", "claude")
	t.Setenv("PORT", "eighty")
	t.Setenv("PROPOSAL_LIMIT", "0")

	err := FromEnv().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIProvider")
	assert.Contains(t, err.Error(), "Port")
	assert.Contains(t, err.Error(), "ProposalLimit")
}

func TestInvalidDurationUsesDefault(t *testing.T) {
	t.Setenv("AI_TIMEOUT", "soon")
	assert.Equal(t, 10*time.Second, FromEnv().AITimeout)
}
