package analysis

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
)

// scriptedProvider serves canned quotes and histories per symbol; absent
// symbols behave like the given error (not-found by default).
type scriptedProvider struct {
	quotes    map[string]models.Quote
	histories map[string][]models.DailyBar
	quoteErr  map[string]error
	histErr   map[string]error
	calls     []string
}

func (p *scriptedProvider) Name() string { return "scripted" }
func (p *scriptedProvider) AdaptSymbol(s string) string { return s }
func (p *scriptedProvider) Quote(_ context.Context, s string) (models.Quote, error) {
	p.calls = append(p.calls, "quote:"+s)
	if err, ok := p.quoteErr[s]; ok {
		return models.Quote{}, err
	}
	q, ok := p.quotes[s]
	if !ok {
		return models.Quote{}, fmt.Errorf("%w: %s", apperr.ErrSymbolNotFound, s)
	}
	return q, nil
}
func (p *scriptedProvider) History(_ context.Context, s string, _, _ time.Time) ([]models.DailyBar, error) {
	p.calls = append(p.calls, "history:"+s)
	if err, ok := p.histErr[s]; ok {
		return nil, err
	}
	return p.histories[s], nil
}

func testAnalyzer(p *scriptedProvider) *Analyzer {
	opts := DefaultOptions()
	opts.RequestDelay = 0
	a := New(p, opts)
	a.sleep = func(time.Duration) {}
	return a
}

// bars builds n daily bars with the given per-day financial volume split
// as volume=fv/close shares at close=1.0 for easy arithmetic.
func bars(fvs ...float64) []models.DailyBar {
	out := make([]models.DailyBar, 0, len(fvs))
	day := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for i, fv := range fvs {
		out = append(out, models.DailyBar{Date: day.AddDate(0, 0, i), Close: 1.0, Volume: int64(fv)})
	}
	return out
}

func rows(assets ...string) []models.PortfolioRow {
	out := make([]models.PortfolioRow, 0, len(assets))
	for _, a := range assets {
		out = append(out, models.PortfolioRow{Asset: a, Quantity: 100})
	}
	return out
}

func TestAnalyze_MedianWithHistory(t *testing.T) {
	// Ten valid days 10..100: median = (50+60)/2 = 55.
	p := &scriptedProvider{
		quotes:    map[string]models.Quote{"PETR4": {Symbol: "PETR4", Price: 1.0, Volume: 120}},
		histories: map[string][]models.DailyBar{"PETR4": bars(10, 20, 30, 40, 50, 60, 70, 80, 90, 100)},
	}
	report, err := testAnalyzer(p).Analyze(context.Background(), rows("PETR4"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	v := report.Volumes[0]
	if !v.HasHistory || v.DaysAnalyzed != 10 {
		t.Fatalf("unexpected record %+v", v)
	}
	if v.MedianVolume != 55 {
		t.Fatalf("median: want 55 got %v", v.MedianVolume)
	}
	if v.CurrentVolume != 120 {
		t.Fatalf("current: want 120 got %v", v.CurrentVolume)
	}
}

func TestAnalyze_InsufficientHistoryFallsBack(t *testing.T) {
	// Only 5 valid days (< MinDays 10): median falls back to current.
	p := &scriptedProvider{
		quotes:    map[string]models.Quote{"VALE3": {Symbol: "VALE3", Price: 2.0, Volume: 60}},
		histories: map[string][]models.DailyBar{"VALE3": bars(10, 20, 30, 40, 50)},
	}
	report, _ := testAnalyzer(p).Analyze(context.Background(), rows("VALE3"))
	v := report.Volumes[0]
	if v.HasHistory {
		t.Fatal("expected HasHistory=false")
	}
	if v.DaysAnalyzed != 0 {
		t.Fatalf("days analyzed: want 0 got %d", v.DaysAnalyzed)
	}
	if v.MedianVolume != v.CurrentVolume || v.CurrentVolume != 120 {
		t.Fatalf("fallback median: %+v", v)
	}
	if v.RelationPct != 100 {
		t.Fatalf("neutral relation: want 100 got %v", v.RelationPct)
	}
}

func TestAnalyze_RelationPct(t *testing.T) {
	// Current financial volume 120, median 100 => 120%.
	fvs := make([]float64, 11)
	for i := range fvs {
		fvs[i] = 100
	}
	p := &scriptedProvider{
		quotes:    map[string]models.Quote{"ITUB4": {Symbol: "ITUB4", Price: 1.0, Volume: 120}},
		histories: map[string][]models.DailyBar{"ITUB4": bars(fvs...)},
	}
	report, _ := testAnalyzer(p).Analyze(context.Background(), rows("ITUB4"))
	if got := report.Volumes[0].RelationPct; got != 120.0 {
		t.Fatalf("relation: want 120 got %v", got)
	}
}

func TestAnalyze_DaysToLiquidate(t *testing.T) {
	// Position value 1,000,000; median 500,000 => 1,000,000/(500,000*0.20) = 10.
	fvs := make([]float64, 11)
	for i := range fvs {
		fvs[i] = 500_000
	}
	p := &scriptedProvider{
		quotes:    map[string]models.Quote{"BBAS3": {Symbol: "BBAS3", Price: 10_000, Volume: 40}},
		histories: map[string][]models.DailyBar{"BBAS3": bars(fvs...)},
	}
	report, _ := testAnalyzer(p).Analyze(context.Background(), rows("BBAS3"))
	pos := report.Positions[0]
	if pos.TotalValue != 1_000_000 {
		t.Fatalf("value: want 1e6 got %v", pos.TotalValue)
	}
	if pos.DaysToLiquidate != 10.0 || pos.DisplayDays != 10.0 {
		t.Fatalf("days: want 10 got %v/%v", pos.DaysToLiquidate, pos.DisplayDays)
	}
}

func TestAnalyze_ZeroMedianIsInfiniteButCapped(t *testing.T) {
	// Zero current volume with no history: median 0 => infinite days,
	// display clamped to exactly 999.
	p := &scriptedProvider{
		quotes: map[string]models.Quote{"XPTO3": {Symbol: "XPTO3", Price: 10, Volume: 0}},
	}
	report, _ := testAnalyzer(p).Analyze(context.Background(), rows("XPTO3"))
	pos := report.Positions[0]
	if !math.IsInf(pos.DaysToLiquidate, 1) {
		t.Fatalf("want +Inf got %v", pos.DaysToLiquidate)
	}
	if pos.DisplayDays != 999 {
		t.Fatalf("display cap: want 999 got %v", pos.DisplayDays)
	}
}

func TestAnalyze_PartialFailure_NotFoundContinues(t *testing.T) {
	// Batch of 5: #3 not found (404-class), everything else resolves.
	p := &scriptedProvider{
		quotes: map[string]models.Quote{
			"A1": {Price: 1, Volume: 1}, "A2": {Price: 1, Volume: 1},
			"A4": {Price: 1, Volume: 1}, "A5": {Price: 1, Volume: 1},
		},
		quoteErr: map[string]error{
			"A3": &apperr.ProviderError{Symbol: "A3", StatusCode: 404, Err: fmt.Errorf("not found")},
		},
	}
	report, err := testAnalyzer(p).Analyze(context.Background(), rows("A1", "A2", "A3", "A4", "A5"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(report.Positions) != 4 {
		t.Fatalf("want 4 positions got %d", len(report.Positions))
	}
	if len(report.NotFound) != 1 || report.NotFound[0] != "A3" {
		t.Fatalf("not found: %v", report.NotFound)
	}
	if report.FatalError != "" {
		t.Fatalf("404 must not be fatal: %q", report.FatalError)
	}
}

func TestAnalyze_FatalErrorAbortsRemaining(t *testing.T) {
	// Batch of 5: #4 returns a 500. #1-#3 are processed; #4 and #5 land
	// in not-found and processing halts.
	p := &scriptedProvider{
		quotes: map[string]models.Quote{
			"A1": {Price: 1, Volume: 1}, "A2": {Price: 1, Volume: 1},
			"A3": {Price: 1, Volume: 1}, "A5": {Price: 1, Volume: 1},
		},
		quoteErr: map[string]error{
			"A4": &apperr.ProviderError{Symbol: "A4", StatusCode: 500, Err: fmt.Errorf("server error")},
		},
	}
	report, err := testAnalyzer(p).Analyze(context.Background(), rows("A1", "A2", "A3", "A4", "A5"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(report.Positions) != 3 {
		t.Fatalf("want 3 positions got %d", len(report.Positions))
	}
	if len(report.NotFound) != 2 || report.NotFound[0] != "A4" || report.NotFound[1] != "A5" {
		t.Fatalf("not found: %v", report.NotFound)
	}
	if report.FatalError == "" {
		t.Fatal("fatal error must be reported")
	}
	// A5 must never have been asked for.
	for _, call := range p.calls {
		if call == "quote:A5" {
			t.Fatal("batch did not stop early")
		}
	}
}

func TestAnalyze_FatalHistoryErrorKeepsCurrentSymbol(t *testing.T) {
	p := &scriptedProvider{
		quotes: map[string]models.Quote{
			"A1": {Price: 2, Volume: 10}, "A2": {Price: 1, Volume: 1},
		},
		histErr: map[string]error{
			"A1": &apperr.ProviderError{Symbol: "A1", StatusCode: 429, Err: fmt.Errorf("rate limited")},
		},
	}
	report, _ := testAnalyzer(p).Analyze(context.Background(), rows("A1", "A2"))
	// A1 keeps its quote with the no-history fallback; A2 is skipped.
	if len(report.Positions) != 1 || report.Positions[0].Asset != "A1" {
		t.Fatalf("positions: %+v", report.Positions)
	}
	if report.Volumes[0].HasHistory {
		t.Fatal("fallback record expected")
	}
	if len(report.NotFound) != 1 || report.NotFound[0] != "A2" {
		t.Fatalf("not found: %v", report.NotFound)
	}
}

func TestAnalyze_HistoryNotFoundFallsBack(t *testing.T) {
	// History 404s after a good quote: the symbol keeps a fallback record
	// and the batch carries on.
	p := &scriptedProvider{
		quotes: map[string]models.Quote{
			"A1": {Price: 3, Volume: 40}, "A2": {Price: 1, Volume: 1},
		},
		histErr: map[string]error{
			"A1": &apperr.ProviderError{Symbol: "A1", StatusCode: 404, Err: fmt.Errorf("no chart data")},
		},
	}
	report, err := testAnalyzer(p).Analyze(context.Background(), rows("A1", "A2"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.FatalError != "" {
		t.Fatalf("404 history must not be fatal: %q", report.FatalError)
	}
	if len(report.Positions) != 2 {
		t.Fatalf("want 2 positions got %d", len(report.Positions))
	}
	v := report.Volumes[0]
	if v.Asset != "A1" || v.HasHistory || v.DaysAnalyzed != 0 {
		t.Fatalf("fallback record expected, got %+v", v)
	}
	if v.MedianVolume != v.CurrentVolume || v.CurrentVolume != 120 {
		t.Fatalf("fallback median: %+v", v)
	}
	if v.RelationPct != 100 {
		t.Fatalf("neutral relation: want 100 got %v", v.RelationPct)
	}
}

func TestAnalyze_ExpectedTradingDays(t *testing.T) {
	// Window 2025-07-01..2025-08-15: 34 weekdays, no B3 holidays.
	p := &scriptedProvider{quotes: map[string]models.Quote{"A1": {Price: 1, Volume: 1}}}
	a := testAnalyzer(p)
	a.now = func() time.Time { return time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC) }
	report, err := a.Analyze(context.Background(), rows("A1"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if report.ExpectedTradingDays != 34 {
		t.Fatalf("expected trading days: want 34 got %d", report.ExpectedTradingDays)
	}
}

func TestAnalyze_AggregatesAndWeights(t *testing.T) {
	p := &scriptedProvider{
		quotes: map[string]models.Quote{
			"A1": {Price: 30, Volume: 1}, // value 3000
			"A2": {Price: 10, Volume: 1}, // value 1000
		},
	}
	report, _ := testAnalyzer(p).Analyze(context.Background(), []models.PortfolioRow{
		{Asset: "A1", Quantity: 100},
		{Asset: "A2", Quantity: 100},
	})
	if report.TotalValue != 4000 {
		t.Fatalf("total: want 4000 got %v", report.TotalValue)
	}
	if report.TopAsset != "A1" {
		t.Fatalf("top asset: %s", report.TopAsset)
	}
	if report.Positions[0].WeightPct != 75 || report.Positions[1].WeightPct != 25 {
		t.Fatalf("weights: %v / %v", report.Positions[0].WeightPct, report.Positions[1].WeightPct)
	}
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	p := &scriptedProvider{quotes: map[string]models.Quote{"A1": {Price: 1, Volume: 1}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := testAnalyzer(p).Analyze(ctx, rows("A1", "A2"))
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(report.NotFound) != 2 {
		t.Fatalf("all symbols should be reported not found, got %v", report.NotFound)
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		in   []float64
		want float64
	}{
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
		{[]float64{7}, 7},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := median(tc.in); got != tc.want {
			t.Fatalf("median(%v)=%v want %v", tc.in, got, tc.want)
		}
	}
}
