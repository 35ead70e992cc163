package models

// VolumeRecord holds the trailing-window liquidity figures for one asset.
//
// Fields:
//   - CurrentVolume: today's shares traded × current price (financial volume).
//   - MedianVolume: statistical median of the daily financial volumes over
//     the trailing window. When fewer than the minimum number of valid
//     trading days were available, this falls back to CurrentVolume and
//     HasHistory is false.
//   - DaysAnalyzed: count of valid trading days that fed the median
//     (0 when HasHistory is false).
//   - RelationPct: CurrentVolume / MedianVolume × 100; exactly 100 when
//     there is no usable history (neutral, "average day").
type VolumeRecord struct {
	Asset         string  `json:"asset" example:"PETR4"`
	CurrentVolume float64 `json:"current_volume" example:"826030000"`
	MedianVolume  float64 `json:"median_volume" example:"791200000"`
	DaysAnalyzed  int     `json:"days_analyzed" example:"31"`
	HasHistory    bool    `json:"has_history" example:"true"`
	RelationPct   float64 `json:"relation_pct" example:"104.4"`
}

// Position is one analyzed holding: the uploaded row enriched with the
// quote, its share of the portfolio, and the liquidity estimate.
//
// DaysToLiquidate is the uncapped estimate (may be +Inf when the median
// financial volume is zero); DisplayDays is the same value clamped to 999
// for presentation. The uncapped figure is excluded from JSON because
// +Inf is not representable there; API consumers read DisplayDays.
type Position struct {
	Asset           string  `json:"asset" example:"PETR4"`
	Quantity        int64   `json:"quantity" example:"100"`
	Price           float64 `json:"price" example:"38.42"`
	TotalValue      float64 `json:"total_value" example:"3842.00"`
	WeightPct       float64 `json:"weight_pct" example:"12.7"`
	DaysToLiquidate float64 `json:"-"`
	DisplayDays     float64 `json:"display_days" example:"1.2"`
}

// AnalysisReport is the full output of one analysis pass over a portfolio.
//
// NotFound lists every ticker the provider could not resolve, including
// symbols never processed because a fatal provider error stopped the
// batch early; FatalError carries that error's message when it happened.
//
// ExpectedTradingDays is how many B3 trading days the trailing window
// contained; comparing it against a record's DaysAnalyzed tells a thin
// sample apart from a thin calendar.
type AnalysisReport struct {
	Provider            string         `json:"provider" example:"brapi"`
	Positions           []Position     `json:"positions"`
	Volumes             []VolumeRecord `json:"volumes"`
	NotFound            []string       `json:"not_found"`
	FatalError          string         `json:"fatal_error,omitempty"`
	TotalValue          float64        `json:"total_value" example:"30250.10"`
	TopAsset            string         `json:"top_asset" example:"VALE3"`
	WithHistory         int            `json:"with_history" example:"9"`
	DaysAnalyzed        int            `json:"days_analyzed" example:"271"`
	ExpectedTradingDays int            `json:"expected_trading_days" example:"31"`
}
