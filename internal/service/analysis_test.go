package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JoaoVF25/dashboard/internal/cache"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
	"github.com/JoaoVF25/dashboard/internal/ingestion"
)

type stubResolver struct {
	result *ingestion.Result
	err    error
}

func (s *stubResolver) Resolve(string, []byte) (*ingestion.Result, error) {
	return s.result, s.err
}

type countingRunner struct {
	report *models.AnalysisReport
	err    error
	calls  int
}

func (r *countingRunner) Analyze(_ context.Context, _ []models.PortfolioRow) (*models.AnalysisReport, error) {
	r.calls++
	return r.report, r.err
}

func TestResolveUpload_Delegates(t *testing.T) {
	want := &ingestion.Result{Rows: []models.PortfolioRow{{Asset: "PETR4", Quantity: 100}}}
	svc := NewAnalysisService(&stubResolver{result: want}, &countingRunner{}, nil, "brapi")

	got, err := svc.ResolveUpload("carteira.csv", []byte("x"))
	if err != nil || got != want {
		t.Fatalf("got=%+v err=%v", got, err)
	}

	boom := errors.New("boom")
	svc = NewAnalysisService(&stubResolver{err: boom}, &countingRunner{}, nil, "brapi")
	if _, err := svc.ResolveUpload("carteira.csv", nil); !errors.Is(err, boom) {
		t.Fatalf("want resolver error, got %v", err)
	}
}

func TestAnalyze_CachesResult(t *testing.T) {
	runner := &countingRunner{report: &models.AnalysisReport{Provider: "brapi", TotalValue: 1000}}
	svc := NewAnalysisService(&stubResolver{}, runner, cache.New(time.Minute), "brapi")
	rows := []models.PortfolioRow{{Asset: "PETR4", Quantity: 100}}

	first, err := svc.Analyze(context.Background(), rows)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.Analyze(context.Background(), rows)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if runner.calls != 1 {
		t.Fatalf("runner called %d times, want 1", runner.calls)
	}
	if first != second {
		t.Fatal("cached report must be the same instance")
	}
}

func TestAnalyze_CacheKeyOrderInsensitive(t *testing.T) {
	runner := &countingRunner{report: &models.AnalysisReport{Provider: "brapi"}}
	svc := NewAnalysisService(&stubResolver{}, runner, cache.New(time.Minute), "brapi")

	a := []models.PortfolioRow{{Asset: "PETR4", Quantity: 100}, {Asset: "VALE3", Quantity: 50}}
	b := []models.PortfolioRow{{Asset: "VALE3", Quantity: 50}, {Asset: "PETR4", Quantity: 100}}

	if _, err := svc.Analyze(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Analyze(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if runner.calls != 1 {
		t.Fatalf("reordered rows missed the cache: %d calls", runner.calls)
	}
}

func TestAnalyze_DifferentQuantityMissesCache(t *testing.T) {
	runner := &countingRunner{report: &models.AnalysisReport{Provider: "brapi"}}
	svc := NewAnalysisService(&stubResolver{}, runner, cache.New(time.Minute), "brapi")

	if _, err := svc.Analyze(context.Background(), []models.PortfolioRow{{Asset: "PETR4", Quantity: 100}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Analyze(context.Background(), []models.PortfolioRow{{Asset: "PETR4", Quantity: 200}}); err != nil {
		t.Fatal(err)
	}
	if runner.calls != 2 {
		t.Fatalf("quantity change must miss the cache: %d calls", runner.calls)
	}
}

func TestAnalyze_FatalReportNotCached(t *testing.T) {
	runner := &countingRunner{report: &models.AnalysisReport{Provider: "brapi", FatalError: "status 500"}}
	svc := NewAnalysisService(&stubResolver{}, runner, cache.New(time.Minute), "brapi")
	rows := []models.PortfolioRow{{Asset: "PETR4", Quantity: 100}}

	if _, err := svc.Analyze(context.Background(), rows); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Analyze(context.Background(), rows); err != nil {
		t.Fatal(err)
	}
	if runner.calls != 2 {
		t.Fatalf("fatal report must not be cached: %d calls", runner.calls)
	}
}

func TestAnalyze_NilCacheAlwaysRuns(t *testing.T) {
	runner := &countingRunner{report: &models.AnalysisReport{Provider: "brapi"}}
	svc := NewAnalysisService(&stubResolver{}, runner, nil, "brapi")
	rows := []models.PortfolioRow{{Asset: "PETR4", Quantity: 100}}

	for i := 0; i < 3; i++ {
		if _, err := svc.Analyze(context.Background(), rows); err != nil {
			t.Fatal(err)
		}
	}
	if runner.calls != 3 {
		t.Fatalf("nil cache must never memoize: %d calls", runner.calls)
	}
}
