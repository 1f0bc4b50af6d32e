package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "resume-data", cfg.Export.Dir)
	assert.Equal(t, "templates", cfg.Export.TplDir)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("AI_SERVICE_URL", "http://localhost:9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.Equal(t, "http://localhost:9000", cfg.AI.BaseURL)
}
