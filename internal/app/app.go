package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/JoaoVF25/dashboard/config"
	"github.com/JoaoVF25/dashboard/internal/analysis"
	"github.com/JoaoVF25/dashboard/internal/api"
	"github.com/JoaoVF25/dashboard/internal/cache"
	"github.com/JoaoVF25/dashboard/internal/ingestion"
	"github.com/JoaoVF25/dashboard/internal/service"
	"github.com/JoaoVF25/dashboard/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, the analysis result cache (so the caller
// can run its janitor), a cleanup function for graceful shutdown, and any
// error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres() and applies migrations.
//   - Builds the configured quote provider, resolver, and analyzer.
//   - Initializes the service layer (analysis + portfolio).
//   - Creates the HTTP handler layer and configures the Gin router.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, *cache.TTLCache, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if err := migrator(db); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
	}

	// Build the analysis pipeline (provider, resolver, analyzer, cache)
	analysisSvc, results, err := NewAnalysisPipeline(cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	// Initialize the portfolio service over the Postgres-backed store
	portfolioSvc := service.NewPortfolioService(storage.NewPostgresStore(db))

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(analysisSvc, portfolioSvc)

	// Setup Gin router with routes
	router := api.NewRouter(handler)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, results, cleanup, nil
}

// NewAnalysisPipeline builds the upload-and-analyze service from
// configuration: quote provider, file resolver, analyzer, and result
// cache. It needs no database, so the CLI analyze mode can use it alone.
func NewAnalysisPipeline(cfg config.Config) (service.AnalysisService, *cache.TTLCache, error) {
	provider, err := NewProvider(cfg.Provider)
	if err != nil {
		return nil, nil, err
	}

	opts := analysis.DefaultOptions()
	if cfg.Analysis.WindowDays > 0 {
		opts.WindowDays = cfg.Analysis.WindowDays
	}
	if cfg.Analysis.MinDays > 0 {
		opts.MinDays = cfg.Analysis.MinDays
	}
	if cfg.Analysis.RequestDelay > 0 {
		opts.RequestDelay = cfg.Analysis.RequestDelay
	}

	resolver := ingestion.NewResolver()
	analyzer := analysis.New(provider, opts)
	results := cache.New(cfg.Analysis.CacheTTL)

	return service.NewAnalysisService(resolver, analyzer, results, provider.Name()), results, nil
}

// migrator is an indirection for unit testing; defaults to storage.Migrate.
var migrator = storage.Migrate
