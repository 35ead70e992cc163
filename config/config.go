package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a local .env file.
//
// It is composed of smaller structs that represent different concerns of the
// system: HTTP server settings, Postgres connection details, quote-provider
// selection, and the liquidity-analysis tuning knobs.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=dashboard
//	QUOTE_PROVIDER=brapi
//	BRAPI_API_KEY=token
//	ANALYSIS_WINDOW_DAYS=45
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Provider ProviderConfig // Quote provider selection and credentials
	Analysis AnalysisConfig // Liquidity analysis tuning
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL, which backs
// the versioned portfolio store.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN used by database/sql to connect
}

// ProviderConfig selects and configures the market-data source.
//
// Fields:
//   - Name: "brapi" or "yahoo".
//   - BrapiBaseURL / YahooBaseURL: override points, mainly for tests.
//   - BrapiAPIKey: bearer token for brapi.dev (required when Name=="brapi").
type ProviderConfig struct {
	Name         string
	BrapiBaseURL string
	BrapiAPIKey  string
	YahooBaseURL string
}

// AnalysisConfig carries the liquidity-analysis parameters.
//
// Fields:
//   - WindowDays: trailing window for the volume median (calendar days).
//   - MinDays: minimum valid trading days required to trust the median.
//   - RequestDelay: pause between provider requests (remote rate limits).
//   - CacheTTL: how long analysis results are memoized per symbol set.
type AnalysisConfig struct {
	WindowDays   int
	MinDays      int
	RequestDelay time.Duration
	CacheTTL     time.Duration
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Constructs the PostgreSQL connection string (DSN).
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the
//     app with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "dashboard")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("QUOTE_PROVIDER", "brapi")
	viper.SetDefault("BRAPI_BASE_URL", "https://brapi.dev")
	viper.SetDefault("BRAPI_API_KEY", "")
	viper.SetDefault("YAHOO_BASE_URL", "https://query1.finance.yahoo.com")

	viper.SetDefault("ANALYSIS_WINDOW_DAYS", 45)
	viper.SetDefault("ANALYSIS_MIN_DAYS", 10)
	viper.SetDefault("ANALYSIS_REQUEST_DELAY_MS", 250)
	viper.SetDefault("CACHE_TTL_SECONDS", 300)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Provider: ProviderConfig{
			Name:         viper.GetString("QUOTE_PROVIDER"),
			BrapiBaseURL: viper.GetString("BRAPI_BASE_URL"),
			BrapiAPIKey:  viper.GetString("BRAPI_API_KEY"),
			YahooBaseURL: viper.GetString("YAHOO_BASE_URL"),
		},
		Analysis: AnalysisConfig{
			WindowDays:   viper.GetInt("ANALYSIS_WINDOW_DAYS"),
			MinDays:      viper.GetInt("ANALYSIS_MIN_DAYS"),
			RequestDelay: time.Duration(viper.GetInt("ANALYSIS_REQUEST_DELAY_MS")) * time.Millisecond,
			CacheTTL:     time.Duration(viper.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing or inconsistent.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Provider.Name != "brapi" && AppConfig.Provider.Name != "yahoo" {
		missing = append(missing, "QUOTE_PROVIDER (must be brapi or yahoo)")
	}
	if AppConfig.Analysis.WindowDays <= 0 {
		missing = append(missing, "ANALYSIS_WINDOW_DAYS")
	}
	if AppConfig.Analysis.MinDays <= 0 {
		missing = append(missing, "ANALYSIS_MIN_DAYS")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
