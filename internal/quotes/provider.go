// Package quotes defines the market-data capability used by the liquidity
// analyzer and its two interchangeable implementations: the brapi.dev REST
// API (token-keyed) and the Yahoo Finance chart API.
//
// The analyzer is written purely against the Provider interface and never
// branches on which implementation it holds.
package quotes

import (
	"context"
	"time"

	"github.com/JoaoVF25/dashboard/internal/domain/models"
)

// Provider is the abstract quote source.
//
// Error contract, shared by all implementations:
//   - apperr.ErrSymbolNotFound (possibly wrapped) when the ticker does not
//     exist at the source; callers treat this per-symbol, never batch-fatal.
//   - *apperr.ProviderError for HTTP and transport failures; its Fatal()
//     method tells the analyzer whether to stop the remaining batch
//     (anything but a 404 does).
type Provider interface {
	// Name identifies the provider in logs, reports, and cache keys.
	Name() string

	// AdaptSymbol converts a B3 ticker to the provider's required format
	// (e.g., Yahoo wants "PETR4.SA", brapi wants plain "PETR4").
	AdaptSymbol(symbol string) string

	// Quote returns the current price and today's traded share count.
	Quote(ctx context.Context, symbol string) (models.Quote, error)

	// History returns daily bars for [from, to], oldest first. A ticker
	// with a valid quote but no history yields an empty slice, not an
	// error; the analyzer falls back to the no-history path.
	History(ctx context.Context, symbol string, from, to time.Time) ([]models.DailyBar, error)
}
