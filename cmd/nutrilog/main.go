package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"nutrilog/internal/backend"
	"nutrilog/internal/catalog"
	"nutrilog/internal/cli"
	apphttp "nutrilog/internal/http"
	"nutrilog/internal/macro"
	"nutrilog/internal/oracle"
	"nutrilog/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Failed to load timezone", "error", err, "timezone", cfg.Timezone)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", backendCfg.Type)
		os.Exit(1)
	}

	summaries := services.NewSummaryService(result.Store, cfg.DailyBudgetKcal)
	entries := services.NewEntryService(result.Store, result.AMQP)

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, macro estimation requests will fail")
	}
	resolver := macro.NewResolver(
		catalog.NewClient(cfg.CatalogBaseURL),
		oracle.NewGeminiClient(cfg.GeminiAPIKey, cfg.OracleBaseURL),
	)

	srv := apphttp.NewServer(":"+cfg.Port, summaries, entries, resolver, apphttp.Options{
		WindowDays: cfg.WindowDays,
		Location:   loc,
		Logger:     logger,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	logger.Info("Starting nutrilog server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"window_days", cfg.WindowDays)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
