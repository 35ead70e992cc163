package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/JoaoVF25/dashboard/config"
)

// TestInitPostgres_InvalidHost expects ping failure.
func TestInitPostgres_InvalidHost(t *testing.T) {
	cfg := config.Config{Postgres: config.PostgresConfig{
		Host:     "127.0.0.1",
		Port:     54329, // unlikely mapped
		User:     "x",
		Password: "y",
		DBName:   "z",
		SSLMode:  "disable",
	}}
	db, err := InitPostgres(cfg)
	if err == nil {
		_ = db.Close()
		t.Fatalf("expected error connecting to invalid DB")
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{
		Postgres: config.PostgresConfig{
			Host:     "127.0.0.1",
			Port:     54329,
			User:     "x",
			Password: "y",
			DBName:   "z",
			SSLMode:  "disable",
		},
		Provider: config.ProviderConfig{Name: "brapi"},
	}

	r, results, cleanup, err := InitializeApp()
	if err == nil || r != nil || results != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	// Override opener to return a sqlmock DB that pings successfully
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	mock.ExpectPing()

	oldOpener := postgresOpener
	oldMigrator := migrator
	oldCfg := config.AppConfig
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(*sql.DB) error { return nil }
	config.AppConfig = config.Config{Provider: config.ProviderConfig{Name: "brapi", BrapiBaseURL: "http://localhost"}}
	t.Cleanup(func() {
		postgresOpener = oldOpener
		migrator = oldMigrator
		config.AppConfig = oldCfg
		_ = db.Close()
	})

	router, results, cleanup, err := InitializeApp()
	if err != nil || router == nil || results == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err=%v", err)
	}

	// Hit health endpoints
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	// Call cleanup and ensure it doesn't panic
	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInitializeApp_UnknownProvider(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}

	oldOpener := postgresOpener
	oldMigrator := migrator
	oldCfg := config.AppConfig
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	migrator = func(*sql.DB) error { return nil }
	config.AppConfig = config.Config{Provider: config.ProviderConfig{Name: "bloomberg"}}
	t.Cleanup(func() {
		postgresOpener = oldOpener
		migrator = oldMigrator
		config.AppConfig = oldCfg
	})

	if _, _, _, err := InitializeApp(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestNewProvider_Selection(t *testing.T) {
	p, err := NewProvider(config.ProviderConfig{Name: "brapi", BrapiBaseURL: "http://localhost"})
	if err != nil || p.Name() != "brapi" {
		t.Fatalf("brapi: p=%v err=%v", p, err)
	}
	p, err = NewProvider(config.ProviderConfig{Name: "yahoo", YahooBaseURL: "http://localhost"})
	if err != nil || p.Name() != "yahoo" {
		t.Fatalf("yahoo: p=%v err=%v", p, err)
	}
	if _, err := NewProvider(config.ProviderConfig{Name: ""}); err == nil {
		t.Fatalf("empty provider name must error")
	}
}
