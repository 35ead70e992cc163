package main

//
//  @title           dashboard API
//  @version         1.0
//  @description     Personal portfolio dashboard: file ingestion, liquidity analysis, versioned storage.
//  @termsOfService  https://github.com/JoaoVF25/dashboard
//  @contact.name    API Support
//  @contact.url     https://github.com/JoaoVF25/dashboard
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        portfolio
//  @tag.description Upload, versioning, and history of portfolios
//
//  @tag.name        analysis
//  @tag.description Liquidity analysis over a quote provider
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JoaoVF25/dashboard/config"
	_ "github.com/JoaoVF25/dashboard/docs" // swagger docs
	"github.com/JoaoVF25/dashboard/internal/app"
	"github.com/JoaoVF25/dashboard/internal/cache"
	"github.com/JoaoVF25/dashboard/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until an OS interrupt signal (SIGINT, SIGTERM)
// arrives, then terminates the HTTP server and releases resources.
//
// While waiting it also runs the analysis-cache janitor, so both
// background activities stop together when the signal context ends.
func gracefulShutdown(ctx context.Context, server *http.Server, results *cache.TTLCache, cleanup func()) {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	if results != nil {
		g.Go(func() error { return results.Janitor(gctx, time.Minute) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.L().Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runAnalyze resolves one portfolio file and logs the liquidity report.
func runAnalyze(ctx context.Context, path string) {
	if path == "" {
		logger.L().Fatal().Msg("--file is required in analyze mode")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.L().Fatal().Err(err).Str("file", path).Msg("failed to read file")
	}

	svc, _, err := app.NewAnalysisPipeline(config.AppConfig)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("pipeline init error")
	}

	result, err := svc.ResolveUpload(path, content)
	if err != nil {
		logger.L().Fatal().Err(err).Str("file", path).Msg("failed to parse file")
	}
	logger.L().Info().
		Int("rows", len(result.Rows)).
		Int("skipped", result.Skipped).
		Str("parse_config", result.Config.String()).
		Msg("file resolved")

	report, err := svc.Analyze(ctx, result.Rows)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("analysis aborted")
	}

	for _, pos := range report.Positions {
		logger.L().Info().
			Str("asset", pos.Asset).
			Float64("value", pos.TotalValue).
			Float64("weight_pct", pos.WeightPct).
			Float64("days_to_liquidate", pos.DisplayDays).
			Msg("position")
	}
	if len(report.NotFound) > 0 {
		logger.L().Warn().Strs("assets", report.NotFound).Msg("symbols not found")
	}
	if report.FatalError != "" {
		logger.L().Error().Str("error", report.FatalError).Msg("provider failure during analysis")
	}
	logger.L().Info().
		Str("provider", report.Provider).
		Float64("total_value", report.TotalValue).
		Str("top_asset", report.TopAsset).
		Int("with_history", report.WithHistory).
		Msg("analysis completed")
}

// main is the entry point of the dashboard application.
//
// Modes (selected via --mode flag):
//   - analyze: Resolves a portfolio file and prints the liquidity report.
//   - api:     Starts the REST API.
//
// Flags:
//   - --mode: Execution mode ("analyze" or "api"). Default: "api".
//   - --file: Portfolio file (.csv, .xlsx, .xls) for analyze mode.
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: analyze or api")
	file := flag.String("file", "", "Portfolio file for analyze mode")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "analyze":
		logger.L().Info().Str("file", *file).Msg("running analysis")
		runAnalyze(ctx, *file)

	case "api":
		logger.L().Info().Msg("starting API server")

		router, results, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, results, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
