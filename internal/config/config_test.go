package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/notekeep")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "s3cret", cfg.TokenSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "postgres://localhost:5432/notekeep", cfg.DatabaseURL)
}

func TestLoadUnsetsSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/notekeep")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	_, err := Load()
	require.NoError(t, err)
	_, present := os.LookupEnv("ACCESS_TOKEN_SECRET")
	assert.False(t, present, "secret should be wiped from the environment after loading")
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadMissingTokenSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/notekeep")
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	os.Unsetenv("ACCESS_TOKEN_SECRET")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/notekeep")
	t.Setenv("ACCESS_TOKEN_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
}
