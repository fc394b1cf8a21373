package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Intranet Empresa", cfg.AppName)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5, cfg.NotifyWorkers)
	assert.Equal(t, 100, cfg.NotifyQueueSize)
	assert.Equal(t, 10*time.Millisecond, cfg.NotifyShowDelay)
	assert.Equal(t, 3*time.Second, cfg.NotifyDisplay)
	assert.Equal(t, 300*time.Millisecond, cfg.NotifyRemoveDelay)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("NOTIFY_DISPLAY", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.NotifyDisplay)
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("NOTIFY_WORKERS", "0")

	_, err := Load()
	assert.ErrorContains(t, err, "NOTIFY_WORKERS")
}

func TestLoad_UnparsableDuration(t *testing.T) {
	t.Setenv("NOTIFY_SHOW_DELAY", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env")
}
