// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors AppConfig for YAML decoding. Pointer fields
// distinguish "absent" from zero values so the file only overrides what it
// sets.
type fileConfig struct {
	ListenAddr *string `yaml:"listenAddr"`
	APIToken   *string `yaml:"apiToken"`

	DataDir     *string `yaml:"dataDir"`
	BadgerPath  *string `yaml:"badgerPath"`
	HistoryPath *string `yaml:"historyPath"`
	ReportPath  *string `yaml:"reportPath"`

	Log struct {
		Level   *string `yaml:"level"`
		Service *string `yaml:"service"`
	} `yaml:"log"`

	Store struct {
		Backend *string `yaml:"backend"`
	} `yaml:"store"`

	Cache struct {
		RedisAddr     *string        `yaml:"redisAddr"`
		RedisPassword *string        `yaml:"redisPassword"`
		RedisDB       *int           `yaml:"redisDB"`
		TTL           *time.Duration `yaml:"ttl"`
		Cleanup       *time.Duration `yaml:"cleanup"`
	} `yaml:"cache"`

	Analysis struct {
		Interval    *time.Duration `yaml:"interval"`
		Concurrency *int           `yaml:"concurrency"`
		Rate        *float64       `yaml:"rate"`
	} `yaml:"analysis"`

	API struct {
		RateLimitEnabled *bool `yaml:"rateLimitEnabled"`
		RateLimitPerMin  *int  `yaml:"rateLimitPerMin"`
		MaxWindow        *int  `yaml:"maxWindow"`
	} `yaml:"api"`

	Telemetry struct {
		Enabled  *bool    `yaml:"enabled"`
		Exporter *string  `yaml:"exporter"`
		Endpoint *string  `yaml:"endpoint"`
		Sampling *float64 `yaml:"sampling"`
	} `yaml:"telemetry"`
}

// Loader resolves configuration from defaults, an optional YAML file, and
// the environment, in increasing precedence.
type Loader struct {
	path    string
	version string
}

// NewLoader creates a loader. An empty path skips the file layer.
func NewLoader(path, version string) *Loader {
	return &Loader{path: path, version: version}
}

// Load resolves and validates the configuration.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()
	cfg.Version = l.version

	if l.path != "" {
		if err := applyFile(&cfg, l.path); err != nil {
			return AppConfig{}, err
		}
	}
	applyEnv(&cfg)
	cfg.resolvePaths()

	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setIf(&cfg.ListenAddr, fc.ListenAddr)
	setIf(&cfg.APIToken, fc.APIToken)
	setIf(&cfg.DataDir, fc.DataDir)
	setIf(&cfg.BadgerPath, fc.BadgerPath)
	setIf(&cfg.HistoryPath, fc.HistoryPath)
	setIf(&cfg.ReportPath, fc.ReportPath)
	setIf(&cfg.LogLevel, fc.Log.Level)
	setIf(&cfg.LogService, fc.Log.Service)
	setIf(&cfg.StoreBackend, fc.Store.Backend)
	setIf(&cfg.RedisAddr, fc.Cache.RedisAddr)
	setIf(&cfg.RedisPassword, fc.Cache.RedisPassword)
	setIf(&cfg.RedisDB, fc.Cache.RedisDB)
	setIf(&cfg.CacheTTL, fc.Cache.TTL)
	setIf(&cfg.CacheCleanup, fc.Cache.Cleanup)
	setIf(&cfg.AnalysisInterval, fc.Analysis.Interval)
	setIf(&cfg.AnalysisConcurrency, fc.Analysis.Concurrency)
	setIf(&cfg.AnalysisRate, fc.Analysis.Rate)
	setIf(&cfg.RateLimitEnabled, fc.API.RateLimitEnabled)
	setIf(&cfg.RateLimitPerMin, fc.API.RateLimitPerMin)
	setIf(&cfg.MaxWindow, fc.API.MaxWindow)
	setIf(&cfg.TelemetryEnabled, fc.Telemetry.Enabled)
	setIf(&cfg.TelemetryExporter, fc.Telemetry.Exporter)
	setIf(&cfg.TelemetryEndpoint, fc.Telemetry.Endpoint)
	setIf(&cfg.TelemetrySampling, fc.Telemetry.Sampling)
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func applyEnv(cfg *AppConfig) {
	cfg.ListenAddr = ParseString("PADS_LISTEN", cfg.ListenAddr)
	cfg.APIToken = ParseString("PADS_API_TOKEN", cfg.APIToken)
	cfg.DataDir = ParseString("PADS_DATA", cfg.DataDir)
	cfg.BadgerPath = ParseString("PADS_BADGER_PATH", cfg.BadgerPath)
	cfg.HistoryPath = ParseString("PADS_HISTORY_PATH", cfg.HistoryPath)
	cfg.ReportPath = ParseString("PADS_REPORT_PATH", cfg.ReportPath)
	cfg.LogLevel = ParseString("PADS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = ParseString("PADS_LOG_SERVICE", cfg.LogService)
	cfg.StoreBackend = ParseString("PADS_STORE_BACKEND", cfg.StoreBackend)
	cfg.RedisAddr = ParseString("PADS_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = ParseString("PADS_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = ParseInt("PADS_REDIS_DB", cfg.RedisDB)
	cfg.CacheTTL = ParseDuration("PADS_CACHE_TTL", cfg.CacheTTL)
	cfg.CacheCleanup = ParseDuration("PADS_CACHE_CLEANUP", cfg.CacheCleanup)
	cfg.AnalysisInterval = ParseDuration("PADS_ANALYSIS_INTERVAL", cfg.AnalysisInterval)
	cfg.AnalysisConcurrency = ParseInt("PADS_ANALYSIS_CONCURRENCY", cfg.AnalysisConcurrency)
	cfg.AnalysisRate = ParseFloat("PADS_ANALYSIS_RATE", cfg.AnalysisRate)
	cfg.RateLimitEnabled = ParseBool("PADS_RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.RateLimitPerMin = ParseInt("PADS_RATE_LIMIT_PER_MIN", cfg.RateLimitPerMin)
	cfg.MaxWindow = ParseInt("PADS_MAX_WINDOW", cfg.MaxWindow)
	cfg.TelemetryEnabled = ParseBool("PADS_OTEL_ENABLED", cfg.TelemetryEnabled)
	cfg.TelemetryExporter = ParseString("PADS_OTEL_EXPORTER", cfg.TelemetryExporter)
	cfg.TelemetryEndpoint = ParseString("PADS_OTEL_ENDPOINT", cfg.TelemetryEndpoint)
	cfg.TelemetrySampling = ParseFloat("PADS_OTEL_SAMPLING", cfg.TelemetrySampling)
}
