package app

import (
	"fmt"

	"github.com/JoaoVF25/dashboard/config"
	"github.com/JoaoVF25/dashboard/internal/quotes"
)

// NewProvider builds the quote provider selected by configuration.
//
// Supported names:
//   - "brapi": brapi.dev REST API (bearer token from BRAPI_API_KEY).
//   - "yahoo": Yahoo Finance chart API (B3 tickers get the .SA suffix).
func NewProvider(cfg config.ProviderConfig) (quotes.Provider, error) {
	switch cfg.Name {
	case "brapi":
		return quotes.NewBrapiClient(cfg.BrapiBaseURL, cfg.BrapiAPIKey), nil
	case "yahoo":
		return quotes.NewYahooClient(cfg.YahooBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown quote provider %q", cfg.Name)
	}
}
