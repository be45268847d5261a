package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/catalog"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/clients"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/compatibility"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/config"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/feeding"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/httpapi"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/logging"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/metrics"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/repository"
	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, cfgErr := config.Load(os.Getenv("AQUASYNC_CONFIG"))

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if cfgErr != nil {
		logger.WithError(cfgErr).Warn("failed to load config file, using defaults")
	}

	// Initialize repository
	dbType, err := repository.ParseDatabaseType(cfg.Database.Type)
	if err != nil {
		logger.WithError(err).Fatal("invalid database type")
	}
	repo, err := repository.NewPlannerRepository(cfg.Database.Path, dbType)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize repository")
	}
	defer repo.Close()

	// External enrichment services are optional. Leave the interfaces nil
	// when no URL is configured so the judge and estimator fall back.
	var classifier compatibility.Classifier
	if cfg.Services.CompatibilityURL != "" {
		classifier = clients.NewCompatibilityClient(cfg.Services.CompatibilityURL, nil)
	}
	var oracle feeding.WeightOracle
	if cfg.Services.WeightOracleURL != "" {
		oracle = clients.NewWeightOracleClient(cfg.Services.WeightOracleURL, nil)
	}

	fallback, ok := compatibility.ParseStatus(cfg.Services.CompatibilityFallback)
	if !ok && cfg.Services.CompatibilityFallback != "" {
		logger.WithField("fallback", cfg.Services.CompatibilityFallback).
			Warn("unknown compatibility fallback, using compatible_with_condition")
	}

	// Initialize planning stack
	cat := catalog.New()
	judge := compatibility.NewJudge(classifier, cfg.Services.Timeout(), fallback)
	estimator := feeding.NewEstimator(service.NewSizeSource(repo, cat), oracle, cfg.Services.Timeout())
	m := metrics.New()
	svc := service.NewPlanningService(repo, cat, judge, estimator, m, logger)

	e := httpapi.BuildServer(svc, m, logger)

	logger.WithField("addr", cfg.ListenAddr).Info("starting aquasync planning server")

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start server in goroutine
	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("HTTP server failed")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("received shutdown signal")
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	logger.Info("shutting down aquasync planning server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}
}
