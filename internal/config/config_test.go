package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SESSION_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 60*time.Second, cfg.API.UploadTimeout)
	assert.Equal(t, 3, cfg.API.RetryBudget)
	assert.Equal(t, time.Second, cfg.API.RetryDelay)
	assert.Equal(t, "bolt", cfg.Session.Backend)
	assert.Equal(t, "0.0.0.0:8082", cfg.RelayAddress())
	assert.Equal(t, "/api/v1", cfg.Relay.RewritePrefix)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://wms.example.com/api/v1/")
	t.Setenv("API_RETRY_DELAY", "2")
	t.Setenv("API_RETRY_BUDGET", "5")
	t.Setenv("SESSION_BACKEND", "Memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://wms.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.API.RetryDelay)
	assert.Equal(t, 5, cfg.API.RetryBudget)
	assert.Equal(t, "memory", cfg.Session.Backend)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "sqlite")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("API_BASE_URL", "localhost:8000")
	_, err = Load()
	assert.Error(t, err)
}
