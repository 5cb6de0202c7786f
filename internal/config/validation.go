// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the resolved configuration for values the daemon cannot
// start with.
func Validate(cfg AppConfig) error {
	var errs []error

	if !strings.Contains(cfg.ListenAddr, ":") {
		errs = append(errs, fmt.Errorf("listen address %q must be host:port or :port", cfg.ListenAddr))
	}
	switch cfg.StoreBackend {
	case "badger", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q (supported: badger, memory)", cfg.StoreBackend))
	}
	if cfg.CacheTTL <= 0 {
		errs = append(errs, errors.New("cache ttl must be positive"))
	}
	if cfg.AnalysisInterval < 0 {
		errs = append(errs, errors.New("analysis interval must not be negative"))
	}
	if cfg.AnalysisConcurrency < 1 {
		errs = append(errs, errors.New("analysis concurrency must be at least 1"))
	}
	if cfg.AnalysisRate < 0 {
		errs = append(errs, errors.New("analysis rate must not be negative"))
	}
	if cfg.RateLimitEnabled && cfg.RateLimitPerMin < 1 {
		errs = append(errs, errors.New("rate limit per minute must be at least 1 when enabled"))
	}
	if cfg.MaxWindow < 1 {
		errs = append(errs, errors.New("enumeration window must be at least 1"))
	}
	if cfg.TelemetrySampling < 0 || cfg.TelemetrySampling > 1 {
		errs = append(errs, fmt.Errorf("telemetry sampling %v must be within [0,1]", cfg.TelemetrySampling))
	}
	if cfg.TelemetryEnabled {
		if cfg.TelemetryEndpoint == "" {
			errs = append(errs, errors.New("telemetry endpoint required when telemetry is enabled"))
		}
		switch cfg.TelemetryExporter {
		case "grpc", "http":
		default:
			errs = append(errs, fmt.Errorf("unknown telemetry exporter %q (supported: grpc, http)", cfg.TelemetryExporter))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
