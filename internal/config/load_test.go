package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TASKWISE_DATABASE_URL", "postgres://localhost:5432/taskwise_test")
	t.Setenv("TASKWISE_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("TASKWISE_SERVER_PORT", "9090")
	t.Setenv("TASKWISE_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/taskwise_test", cfg.Database.URL)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Auth.JWTSecret)

	// Defaults fill in everything not provided.
	assert.Equal(t, 30, cfg.Server.RequestTimeoutSeconds)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 10080, cfg.Auth.RefreshTokenLifetimeMinutes)
}

func TestLoadMissingRequiredValues(t *testing.T) {
	// No database URL or JWT secret anywhere: validation must fail.
	t.Setenv("TASKWISE_DATABASE_URL", "")
	t.Setenv("TASKWISE_AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("TASKWISE_DATABASE_URL", "postgres://localhost:5432/taskwise_test")
	t.Setenv("TASKWISE_AUTH_JWT_SECRET", "too-short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("TASKWISE_DATABASE_URL", "postgres://localhost:5432/taskwise_test")
	t.Setenv("TASKWISE_AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("TASKWISE_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}
