// SPDX-License-Identifier: MIT

// Command padsd is the pads daemon: it stores directed graphs, analyzes
// their strong connectivity in the background and serves the enumeration
// and analysis API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/padslib/pads/internal/api"
	"github.com/padslib/pads/internal/cache"
	"github.com/padslib/pads/internal/config"
	"github.com/padslib/pads/internal/health"
	"github.com/padslib/pads/internal/history"
	"github.com/padslib/pads/internal/jobs"
	padslog "github.com/padslib/pads/internal/log"
	"github.com/padslib/pads/internal/store"
	"github.com/padslib/pads/internal/telemetry"
	"github.com/padslib/pads/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("padsd %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.BuildDate)
		os.Exit(0)
	}

	// Safe logging defaults until the config is loaded.
	padslog.Configure(padslog.Config{
		Level:   "info",
		Service: "pads",
		Version: version.Version,
	})
	logger := padslog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config path: explicit via --config, otherwise ${PADS_DATA}/config.yaml
	// when it exists.
	effectivePath := strings.TrimSpace(*configPath)
	if effectivePath == "" {
		dataDir := strings.TrimSpace(config.ParseString("PADS_DATA", ""))
		if dataDir != "" {
			autoPath := filepath.Join(dataDir, "config.yaml")
			if _, err := os.Stat(autoPath); err == nil {
				effectivePath = autoPath
			}
		}
	}

	cfg, err := config.NewLoader(effectivePath, version.Version).Load()
	if err != nil {
		logger.Fatal().Err(err).
			Str("event", "config.load_failed").
			Str(padslog.FieldPath, effectivePath).
			Msg("failed to load configuration")
	}

	padslog.Configure(padslog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	logger = padslog.WithComponent("daemon")
	logger.Info().
		Str("event", "daemon.starting").
		Str("version", version.Version).
		Str(padslog.FieldPath, effectivePath).
		Msg("starting pads daemon")

	if err := run(ctx, cfg, effectivePath); err != nil {
		logger.Fatal().Err(err).
			Str("event", "daemon.failed").
			Msg("daemon exited with error")
	}
	logger.Info().Str("event", "daemon.stopped").Msg("daemon stopped")
}

func run(ctx context.Context, cfg config.AppConfig, configPath string) error {
	logger := padslog.WithComponent("daemon")

	if err := os.MkdirAll(cfg.DataDir, 0o750); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// Tracing
	provider, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.TelemetryEnabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.TelemetryExporter,
		Endpoint:       cfg.TelemetryEndpoint,
		SamplingRate:   cfg.TelemetrySampling,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Str("event", "telemetry.shutdown_failed").Msg("telemetry shutdown failed")
		}
	}()

	// Storage
	st, err := store.Open(cfg.StoreBackend, cfg.BadgerPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	// Run history
	hist, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = hist.Close() }()

	// Cache: Redis when configured, in-memory otherwise.
	var (
		c          cache.Cache
		redisCache *cache.RedisCache
	)
	if cfg.RedisAddr != "" {
		redisCache, err = cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, padslog.WithComponent("cache"))
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer func() { _ = redisCache.Close() }()
		c = redisCache
	} else {
		mc := cache.NewMemory(cfg.CacheCleanup)
		defer mc.Stop()
		c = mc
	}

	// Background analysis
	runner := jobs.New(jobs.Options{
		Store:       st,
		History:     hist,
		Cache:       c,
		Interval:    cfg.AnalysisInterval,
		Concurrency: cfg.AnalysisConcurrency,
		Rate:        cfg.AnalysisRate,
		CacheTTL:    cfg.CacheTTL,
		ReportPath:  cfg.ReportPath,
	})
	runner.Start(ctx)

	// Health
	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewPingChecker("store", st.Ping))
	hm.RegisterChecker(health.NewPingChecker("history", hist.Ping))
	if redisCache != nil {
		hm.RegisterChecker(health.NewPingChecker("redis", redisCache.HealthCheck))
	}
	if cfg.AnalysisInterval > 0 {
		hm.RegisterChecker(health.NewLastRunChecker(3*cfg.AnalysisInterval, runner.LastRun))
	}

	// Config watcher: a changed file requires a restart to take effect;
	// log so operators notice.
	if configPath != "" {
		watcher, err := config.NewWatcher(configPath, padslog.WithComponent("config"))
		if err != nil {
			logger.Warn().Err(err).Str("event", "config.watch_failed").Msg("config watching disabled")
		} else {
			defer func() { _ = watcher.Close() }()
			go func() {
				for range watcher.Events {
					logger.Info().
						Str("event", "config.changed_on_disk").
						Str(padslog.FieldPath, configPath).
						Msg("config file changed, restart to apply")
				}
			}()
		}
	}

	// HTTP
	srv := api.New(cfg, api.Deps{
		Store:   st,
		Cache:   c,
		History: hist,
		Runner:  runner,
		Health:  hm,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	// Drain HTTP before closing the stores underneath it.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Str("event", "daemon.shutdown_timeout").Msg("http shutdown incomplete")
	}
	runner.Wait()
	return nil
}
