// SPDX-License-Identifier: MIT

// Package config loads daemon configuration with the precedence
// ENV > file > defaults.
package config

import (
	"path/filepath"
	"time"
)

// AppConfig is the resolved daemon configuration.
type AppConfig struct {
	// Server
	ListenAddr string
	APIToken   string

	// Paths
	DataDir     string
	BadgerPath  string
	HistoryPath string
	ReportPath  string

	// Logging
	LogLevel   string
	LogService string

	// Storage
	StoreBackend string // "badger" | "memory"

	// Cache
	RedisAddr     string // empty selects the in-memory cache
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	CacheCleanup  time.Duration

	// Background analysis
	AnalysisInterval    time.Duration // 0 disables the periodic run
	AnalysisConcurrency int
	AnalysisRate        float64 // graphs per second; 0 means unthrottled

	// API limits
	RateLimitEnabled bool
	RateLimitPerMin  int
	MaxWindow        int // offset+limit cap for enumeration pages

	// Telemetry
	TelemetryEnabled  bool
	TelemetryExporter string // "grpc" | "http"
	TelemetryEndpoint string
	TelemetrySampling float64

	// Version is injected by the caller, not loaded.
	Version string
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		ListenAddr:          ":8080",
		DataDir:             "/var/lib/pads",
		LogLevel:            "info",
		LogService:          "pads",
		StoreBackend:        "badger",
		CacheTTL:            15 * time.Minute,
		CacheCleanup:        time.Minute,
		AnalysisInterval:    time.Hour,
		AnalysisConcurrency: 4,
		AnalysisRate:        0,
		RateLimitEnabled:    true,
		RateLimitPerMin:     600,
		MaxWindow:           100000,
		TelemetryExporter:   "http",
		TelemetrySampling:   1.0,
	}
}

// resolvePaths fills the derived paths that default relative to DataDir.
func (c *AppConfig) resolvePaths() {
	if c.BadgerPath == "" {
		c.BadgerPath = filepath.Join(c.DataDir, "graphs")
	}
	if c.HistoryPath == "" {
		c.HistoryPath = filepath.Join(c.DataDir, "history.db")
	}
	if c.ReportPath == "" {
		c.ReportPath = filepath.Join(c.DataDir, "report.json")
	}
}
