// cmd/moviechain/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"moviechain/internal/api"
	"moviechain/internal/catalog"
	"moviechain/internal/common/camunda"
	"moviechain/internal/common/config"
	"moviechain/internal/common/database"
	"moviechain/internal/common/logger"
	"moviechain/internal/common/observability"

	ai "moviechain/internal/workers/recommendation/analyze-intent"
	gc "moviechain/internal/workers/recommendation/generate-candidates"
	rm "moviechain/internal/workers/recommendation/recommend-movies"
	vr "moviechain/internal/workers/recommendation/validate-recommendations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "moviechain: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// console logger until the configured one is built
	boot := logger.New("info", "console")
	defer boot.Sync()

	cfg, err := config.Load()
	if err != nil {
		boot.Error("config load failed", zap.Error(err))
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog, err := logger.Build(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting MovieChain...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	if err != nil {
		return fmt.Errorf("observability init failed: %w", err)
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			zapLog.Error("observability shutdown failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Catalog & lookup cache ---
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	zapLog.Info("Catalog loaded", zap.Int("movies", cat.Len()), zap.String("path", cfg.Catalog.Path))

	checks := map[string]api.ReadinessCheck{}

	var cache catalog.Cache
	switch cfg.Cache.Backend {
	case "redis":
		rdb, err := database.NewRedis(ctx, cfg.Cache.Redis)
		if err != nil {
			return err
		}
		defer rdb.Close()
		cache = catalog.NewRedisCache(rdb.Client, cfg.Cache.KeyPrefix, config.GetDuration(cfg.Cache.TTL), log)
		checks["redis"] = rdb.Ping
		zapLog.Info("Redis lookup cache connected", zap.String("address", cfg.Cache.Redis.Address))
	default:
		cache = catalog.NewMemoryCache(cfg.Cache.MaxEntries)
		zapLog.Info("In-memory lookup cache", zap.Int("maxEntries", cfg.Cache.MaxEntries))
	}
	resolver := catalog.NewResolver(cat, cache, catalog.RandomIDGenerator{})

	// --- Pipeline stages ---
	workerCfg := func(taskType string) config.WorkerConfig {
		return config.GetWorkerConfig(cfg, taskType)
	}
	stageTimeout := func(taskType string) time.Duration {
		return config.GetDuration(workerCfg(taskType).Timeout)
	}

	analyzer := ai.NewHandler(&ai.Config{Timeout: stageTimeout(ai.TaskType)}, log).
		WithObservability(obs).
		WithMaxRetries(workerCfg(ai.TaskType).MaxRetries)
	generator := gc.NewHandler(&gc.Config{Timeout: stageTimeout(gc.TaskType)}, cat, log).
		WithObservability(obs).
		WithMaxRetries(workerCfg(gc.TaskType).MaxRetries)

	vrCfg := vr.LoadConfig()
	vrCfg.Timeout = stageTimeout(vr.TaskType)
	validator := vr.NewHandler(vrCfg, resolver, log).
		WithObservability(obs).
		WithMaxRetries(workerCfg(vr.TaskType).MaxRetries)

	rmCfg := rm.LoadConfig()
	rmCfg.Timeout = stageTimeout(rm.TaskType)
	pipeline := rm.NewHandler(rmCfg, analyzer, generator, validator, log).
		WithObservability(obs).
		WithMaxRetries(workerCfg(rm.TaskType).MaxRetries)

	// --- Zeebe job workers ---
	var jobWorkers []worker.JobWorker
	if cfg.Camunda.Enabled {
		zc, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.Plaintext,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		if err != nil {
			return fmt.Errorf("zeebe client failed: %w", err)
		}
		defer func() {
			if err := zc.Close(); err != nil {
				zapLog.Error("Error closing Zeebe client", zap.Error(err))
			}
		}()
		checks["zeebe"] = zc.HealthCheck
		zapLog.Info("Zeebe client connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

		handlers := []struct {
			taskType string
			handle   worker.JobHandler
		}{
			{ai.TaskType, analyzer.Handle},
			{gc.TaskType, generator.Handle},
			{vr.TaskType, validator.Handle},
			{rm.TaskType, pipeline.Handle},
		}
		for _, h := range handlers {
			if !config.IsWorkerEnabled(cfg, h.taskType) {
				zapLog.Info("Worker disabled", zap.String("taskType", h.taskType))
				continue
			}
			jobWorkers = append(jobWorkers, camunda.StartWorker(zc.GetClient(), h.taskType, workerCfg(h.taskType), h.handle, log))
		}
	}

	// --- HTTP server ---
	srv := api.NewServer(pipeline, api.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RequestTimeout: config.GetDuration(cfg.Server.RequestTimeout),
		Checks:         checks,
	}, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	serverErr := make(chan error, 1)
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		zapLog.Info("Shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	for _, w := range jobWorkers {
		w.Close()
		w.AwaitClose()
	}

	zapLog.Info("MovieChain stopped gracefully")
	return nil
}
