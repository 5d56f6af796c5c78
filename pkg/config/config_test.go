package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/pkg/logger"
)

func mapLookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(mapLookup(nil))
	require.NoError(t, err)
	assert.Equal(t, Config{
		ServiceName:     DefaultServiceName,
		Addr:            DefaultAddr,
		LogLevel:        logger.LevelInfo,
		OtelSampleRate:  1,
		ShutdownTimeout: DefaultShutdownTimeout,
	}, cfg)
}

func TestFromLookup(t *testing.T) {
	cfg, err := FromLookup(mapLookup(map[string]string{
		"SERVICE_NAME":     "tables",
		"ORDERS_ADDR":      "127.0.0.1:9000",
		"LOG_LEVEL":        "debug",
		"OTEL_HOST":        "collector:4317",
		"OTEL_SAMPLE_RATE": "0.25",
		"SHUTDOWN_TIMEOUT": "10s",
	}))
	require.NoError(t, err)
	assert.Equal(t, "tables", cfg.ServiceName)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, logger.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "collector:4317", cfg.OtelHost)
	assert.InDelta(t, 0.25, cfg.OtelSampleRate, 1e-9)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromLookupInvalid(t *testing.T) {
	_, err := FromLookup(mapLookup(map[string]string{
		"LOG_LEVEL":        "loud",
		"OTEL_SAMPLE_RATE": "2",
		"SHUTDOWN_TIMEOUT": "soon",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE")
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ORDERS_ADDR=:9191\n"), 0o600))
	t.Setenv("ORDERS_ADDR", "")
	require.NoError(t, os.Unsetenv("ORDERS_ADDR"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9191", cfg.Addr)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
}
