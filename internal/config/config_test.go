package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OpenWeather.BaseURL)
	assert.Equal(t, "https://api.open-meteo.com", cfg.OpenMeteo.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 5.0, cfg.Outbound.RPS)
	assert.Equal(t, 10, cfg.Outbound.Burst)
	assert.Equal(t, 15*time.Minute, cfg.Refresh.Interval)
	assert.Equal(t, 30*time.Minute, cfg.Refresh.ActiveWithin)
	assert.Equal(t, 4, cfg.Refresh.Concurrency)
	assert.Equal(t, 1000, cfg.Session.MaxCount)
	assert.Equal(t, 2*time.Hour, cfg.Session.MaxIdle)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Timezone.Enabled)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("port: 9090\nrefresh:\n  interval: 0s\nlog:\n  level: DEBUG\n  format: console\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("CLIMA_OUTBOUND_BURST", "3")
	t.Setenv("OPENWEATHER_API_KEY", "secret")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.Refresh.Interval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Outbound.Burst)
	assert.Equal(t, "secret", cfg.OpenWeather.APIKey)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("CLIMA_PORT", "70000")
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadRejectsZeroRefreshConcurrency(t *testing.T) {
	t.Setenv("CLIMA_REFRESH_CONCURRENCY", "0")
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	t.Setenv("CLIMA_LOG_FORMAT", "xml")
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "warn", Format: "json"}}
	logger, err := cfg.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg.Log.Level = "loud"
	_, err = cfg.NewLogger()
	assert.Error(t, err)
}
