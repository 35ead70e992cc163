// Package analysis implements the trading-liquidity analyzer: for each
// portfolio position it combines the current quote with a trailing window
// of daily bars into financial-volume metrics and a days-to-liquidate
// estimate.
//
// Symbols are processed strictly one at a time, in input order, with a
// configurable pause between provider requests; the remote rate limit is
// the only reason for the pause. There is no retry: the provider is asked
// exactly once per request.
package analysis

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
	"github.com/JoaoVF25/dashboard/internal/logger"
	"github.com/JoaoVF25/dashboard/internal/marketcal"
	"github.com/JoaoVF25/dashboard/internal/quotes"
)

// Options tunes one analyzer instance. The zero value is not usable; call
// DefaultOptions and override what you need.
type Options struct {
	// WindowDays is the trailing window, in calendar days, over which the
	// volume median is computed.
	WindowDays int

	// MinDays is the minimum count of valid trading days required before
	// the median is trusted; below it the analyzer falls back to the
	// current day's financial volume.
	MinDays int

	// Participation is the fraction of the median daily turnover a
	// position can consume per day without moving the market.
	Participation float64

	// DisplayCap clamps the reported days-to-liquidate for presentation.
	// The uncapped value stays available on each Position.
	DisplayCap float64

	// RequestDelay is the pause inserted between provider requests.
	RequestDelay time.Duration
}

// DefaultOptions returns the standard tuning: 45-day window, 10-day
// minimum sample, 20% participation, 999-day display cap.
func DefaultOptions() Options {
	return Options{
		WindowDays:    45,
		MinDays:       10,
		Participation: 0.20,
		DisplayCap:    999,
		RequestDelay:  250 * time.Millisecond,
	}
}

// Analyzer runs liquidity analysis against one quote provider. It holds
// no mutable state between runs and is safe to reuse.
type Analyzer struct {
	provider quotes.Provider
	opts     Options
	log      zerolog.Logger

	// indirections for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// New builds an Analyzer over the given provider.
func New(provider quotes.Provider, opts Options) *Analyzer {
	return &Analyzer{
		provider: provider,
		opts:     opts,
		log:      logger.With("analysis"),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Analyze processes each portfolio row in order and assembles the full
// report: positions with weights and liquidity estimates, per-asset
// volume records, the not-found set, and portfolio aggregates.
//
// Failure policy:
//   - a symbol the provider cannot resolve (404-class) joins NotFound and
//     processing continues;
//   - a fatal provider failure (any other HTTP status, or a transport
//     error) sends every not-yet-processed symbol to NotFound, records
//     the failure on the report, and stops early;
//   - context cancellation behaves like a fatal failure and additionally
//     returns ctx.Err().
//
// The error return is non-nil only for context cancellation; provider
// trouble is always reported in the result so partial work survives.
func (a *Analyzer) Analyze(ctx context.Context, rows []models.PortfolioRow) (*models.AnalysisReport, error) {
	report := &models.AnalysisReport{Provider: a.provider.Name()}

	to := a.now()
	from := to.AddDate(0, 0, -a.opts.WindowDays)
	report.ExpectedTradingDays = marketcal.TradingDaysBetween(from, to)

	type found struct {
		row   models.PortfolioRow
		quote models.Quote
		vol   models.VolumeRecord
	}
	var processed []found

	a.log.Info().
		Int("symbols", len(rows)).
		Int("window_days", a.opts.WindowDays).
		Int("expected_trading_days", report.ExpectedTradingDays).
		Msg("analysis start")

	var retErr error

loop:
	for i, row := range rows {
		select {
		case <-ctx.Done():
			a.abortRemaining(report, rows[i:], "canceled")
			retErr = ctx.Err()
			break loop
		default:
		}

		if i > 0 {
			a.sleep(a.opts.RequestDelay)
		}

		adapted := a.provider.AdaptSymbol(row.Asset)

		quote, err := a.provider.Quote(ctx, adapted)
		if err != nil {
			if apperr.IsFatalProvider(err) {
				a.log.Error().Str("asset", row.Asset).Err(err).Msg("fatal provider failure, stopping batch")
				report.FatalError = err.Error()
				a.abortRemaining(report, rows[i:], "provider failure")
				break loop
			}
			a.log.Warn().Str("asset", row.Asset).Err(err).Msg("symbol not found")
			report.NotFound = append(report.NotFound, row.Asset)
			continue
		}

		vol, err := a.volumeRecord(ctx, row.Asset, adapted, quote, from, to)
		if err != nil {
			// Only a fatal-class history failure lands here; the current
			// symbol keeps its quote and the no-history fallback.
			a.log.Error().Str("asset", row.Asset).Err(err).Msg("fatal provider failure on history, stopping batch")
			report.FatalError = err.Error()
			processed = append(processed, found{row: row, quote: quote, vol: fallbackRecord(row.Asset, quote)})
			if i+1 < len(rows) {
				a.abortRemaining(report, rows[i+1:], "provider failure")
			}
			break loop
		}

		processed = append(processed, found{row: row, quote: quote, vol: vol})
	}

	// Aggregate pass over everything that resolved.
	for _, f := range processed {
		report.TotalValue += float64(f.row.Quantity) * f.quote.Price
	}

	var topValue float64
	for _, f := range processed {
		value := float64(f.row.Quantity) * f.quote.Price

		pos := models.Position{
			Asset:      f.row.Asset,
			Quantity:   f.row.Quantity,
			Price:      f.quote.Price,
			TotalValue: value,
		}
		if report.TotalValue > 0 {
			pos.WeightPct = value / report.TotalValue * 100
		}
		pos.DaysToLiquidate = a.daysToLiquidate(value, f.vol.MedianVolume)
		pos.DisplayDays = math.Min(pos.DaysToLiquidate, a.opts.DisplayCap)

		if value > topValue {
			topValue = value
			report.TopAsset = f.row.Asset
		}

		report.Positions = append(report.Positions, pos)
		report.Volumes = append(report.Volumes, f.vol)
		if f.vol.HasHistory {
			report.WithHistory++
		}
		report.DaysAnalyzed += f.vol.DaysAnalyzed
	}

	a.log.Info().
		Int("found", len(processed)).
		Int("not_found", len(report.NotFound)).
		Int("with_history", report.WithHistory).
		Msg("analysis done")

	return report, retErr
}

// volumeRecord fetches the trailing-window history for one symbol and
// derives its VolumeRecord. Non-fatal history failures (and empty
// histories) degrade to the no-history fallback; a fatal provider failure
// is returned to the caller to stop the batch.
func (a *Analyzer) volumeRecord(ctx context.Context, asset, adapted string, quote models.Quote, from, to time.Time) (models.VolumeRecord, error) {
	a.sleep(a.opts.RequestDelay)

	bars, err := a.provider.History(ctx, adapted, from, to)
	if err != nil {
		if apperr.IsFatalProvider(err) {
			return models.VolumeRecord{}, err
		}
		a.log.Warn().Str("asset", asset).Err(err).Msg("history unavailable, using current volume")
		return fallbackRecord(asset, quote), nil
	}

	// Financial volume per day, discarding unusable bars.
	financial := make([]float64, 0, len(bars))
	for _, bar := range bars {
		if bar.Volume <= 0 || bar.Close <= 0 {
			continue
		}
		financial = append(financial, float64(bar.Volume)*bar.Close)
	}

	if len(financial) < a.opts.MinDays {
		return fallbackRecord(asset, quote), nil
	}

	current := float64(quote.Volume) * quote.Price
	med := median(financial)

	rec := models.VolumeRecord{
		Asset:         asset,
		CurrentVolume: current,
		MedianVolume:  med,
		DaysAnalyzed:  len(financial),
		HasHistory:    true,
		RelationPct:   100,
	}
	if med > 0 {
		rec.RelationPct = current / med * 100
	}
	return rec, nil
}

// fallbackRecord is the neutral record used when a symbol has no usable
// history: the median defaults to today's financial volume and the
// relation to exactly 100.
func fallbackRecord(asset string, quote models.Quote) models.VolumeRecord {
	current := float64(quote.Volume) * quote.Price
	return models.VolumeRecord{
		Asset:         asset,
		CurrentVolume: current,
		MedianVolume:  current,
		DaysAnalyzed:  0,
		HasHistory:    false,
		RelationPct:   100,
	}
}

// daysToLiquidate estimates the trading days needed to exit a position
// worth value without exceeding the participation fraction of the median
// daily turnover. A zero denominator yields +Inf.
func (a *Analyzer) daysToLiquidate(value, medianVolume float64) float64 {
	denom := medianVolume * a.opts.Participation
	if denom <= 0 {
		return math.Inf(1)
	}
	return value / denom
}

// abortRemaining sends every remaining symbol to the not-found set.
func (a *Analyzer) abortRemaining(report *models.AnalysisReport, remaining []models.PortfolioRow, reason string) {
	for _, row := range remaining {
		report.NotFound = append(report.NotFound, row.Asset)
	}
	if len(remaining) > 0 {
		a.log.Warn().Int("skipped", len(remaining)).Str("reason", reason).Msg("remaining symbols marked not found")
	}
}

// median returns the statistical median of values. The input slice is not
// modified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
