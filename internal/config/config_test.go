// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	cfg.resolvePaths()
	require.NoError(t, Validate(cfg))
}

func TestParseStringEnv(t *testing.T) {
	t.Setenv("PADS_TEST_STR", "hello")
	assert.Equal(t, "hello", ParseString("PADS_TEST_STR", "default"))
	assert.Equal(t, "default", ParseString("PADS_TEST_STR_MISSING", "default"))

	t.Setenv("PADS_TEST_EMPTY", "")
	assert.Equal(t, "default", ParseString("PADS_TEST_EMPTY", "default"))
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("PADS_TEST_INT", "42")
	assert.Equal(t, 42, ParseInt("PADS_TEST_INT", 7))

	t.Setenv("PADS_TEST_INT_BAD", "not-a-number")
	assert.Equal(t, 7, ParseInt("PADS_TEST_INT_BAD", 7))
	assert.Equal(t, 7, ParseInt("PADS_TEST_INT_MISSING", 7))
}

func TestParseBoolEnv(t *testing.T) {
	t.Setenv("PADS_TEST_BOOL", "true")
	assert.True(t, ParseBool("PADS_TEST_BOOL", false))

	t.Setenv("PADS_TEST_BOOL_BAD", "maybe")
	assert.True(t, ParseBool("PADS_TEST_BOOL_BAD", true))
}

func TestParseDurationEnv(t *testing.T) {
	t.Setenv("PADS_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, ParseDuration("PADS_TEST_DUR", time.Minute))

	t.Setenv("PADS_TEST_DUR_BAD", "soon")
	assert.Equal(t, time.Minute, ParseDuration("PADS_TEST_DUR_BAD", time.Minute))
}

func TestParseFloatEnv(t *testing.T) {
	t.Setenv("PADS_TEST_FLOAT", "0.25")
	assert.Equal(t, 0.25, ParseFloat("PADS_TEST_FLOAT", 1.0))

	t.Setenv("PADS_TEST_FLOAT_BAD", "fast")
	assert.Equal(t, 1.0, ParseFloat("PADS_TEST_FLOAT_BAD", 1.0))
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
listenAddr: ":9090"
dataDir: ` + dir + `
log:
  level: debug
analysis:
  concurrency: 8
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	// Environment wins over the file.
	t.Setenv("PADS_LOG_LEVEL", "warn")

	cfg, err := NewLoader(path, "test").Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr, "file overrides default")
	assert.Equal(t, "warn", cfg.LogLevel, "environment overrides file")
	assert.Equal(t, 8, cfg.AnalysisConcurrency)
	assert.Equal(t, "badger", cfg.StoreBackend, "default survives")
	assert.Equal(t, filepath.Join(dir, "graphs"), cfg.BadgerPath)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.HistoryPath)
	assert.Equal(t, "test", cfg.Version)
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg, err := NewLoader(path, "test").Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listne: oops\n"), 0o600))

	_, err := NewLoader(path, "test").Load()
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"), "test").Load()
	require.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	base := func() AppConfig {
		cfg := Defaults()
		cfg.resolvePaths()
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"bad listen addr", func(c *AppConfig) { c.ListenAddr = "8080" }},
		{"unknown backend", func(c *AppConfig) { c.StoreBackend = "etcd" }},
		{"zero cache ttl", func(c *AppConfig) { c.CacheTTL = 0 }},
		{"negative interval", func(c *AppConfig) { c.AnalysisInterval = -time.Second }},
		{"zero concurrency", func(c *AppConfig) { c.AnalysisConcurrency = 0 }},
		{"negative rate", func(c *AppConfig) { c.AnalysisRate = -1 }},
		{"zero rate limit", func(c *AppConfig) { c.RateLimitPerMin = 0 }},
		{"zero window", func(c *AppConfig) { c.MaxWindow = 0 }},
		{"sampling above one", func(c *AppConfig) { c.TelemetrySampling = 1.5 }},
		{"telemetry without endpoint", func(c *AppConfig) { c.TelemetryEnabled = true }},
		{"unknown exporter", func(c *AppConfig) {
			c.TelemetryEnabled = true
			c.TelemetryEndpoint = "localhost:4318"
			c.TelemetryExporter = "udp"
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestWatcherSignalsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

	w, err := NewWatcher(path, testLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	select {
	case <-w.Events:
	case <-time.After(3 * time.Second):
		t.Fatal("no change signal received")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o600))

	w, err := NewWatcher(path, testLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

	select {
	case <-w.Events:
		t.Fatal("unexpected signal for unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}
