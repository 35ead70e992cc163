package models

import "time"

// PortfolioRow is one normalized line of an uploaded portfolio file.
//
// Fields:
//   - Asset: B3 ticker, trimmed and uppercased (e.g., "PETR4").
//   - Quantity: number of shares held; always > 0 after normalization.
//
// Rows sharing the same Asset are summed before the portfolio is analyzed
// or persisted; the resolver never mutates rows in place.
type PortfolioRow struct {
	Asset    string `json:"asset" example:"PETR4"`
	Quantity int64  `json:"quantity" example:"100"`
}

// VersionedRow is a PortfolioRow as it lives in the portfolio store:
// the portfolio's own columns plus the version and upload-timestamp
// control columns and optional metadata fields.
type VersionedRow struct {
	PortfolioRow
	Version    int               `json:"version" example:"3"`
	UploadedAt time.Time         `json:"uploaded_at"`
	Meta       map[string]string `json:"meta,omitempty"`
}

// VersionSummary describes one saved snapshot of a named portfolio,
// as reported by the version-history listing.
type VersionSummary struct {
	Version       int       `json:"version" example:"3"`
	UploadedAt    time.Time `json:"uploaded_at"`
	AssetCount    int       `json:"asset_count" example:"12"`
	TotalQuantity int64     `json:"total_quantity" example:"3450"`
}

// QuantityChange records a quantity delta for an asset present in both
// versions of a portfolio comparison.
type QuantityChange struct {
	Asset  string `json:"asset" example:"VALE3"`
	OldQty int64  `json:"old_qty" example:"50"`
	NewQty int64  `json:"new_qty" example:"80"`
	Change int64  `json:"change" example:"30"`
}

// PortfolioDiff is the result of comparing two saved versions.
type PortfolioDiff struct {
	Added    []string         `json:"added"`
	Removed  []string         `json:"removed"`
	Modified []QuantityChange `json:"modified"`
}
