package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/JoaoVF25/dashboard/internal/cache"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
	"github.com/JoaoVF25/dashboard/internal/ingestion"
	"github.com/JoaoVF25/dashboard/internal/logger"
)

// Runner is the slice of the liquidity analyzer the service depends on.
type Runner interface {
	Analyze(ctx context.Context, rows []models.PortfolioRow) (*models.AnalysisReport, error)
}

// FileResolver is the slice of the ingestion resolver the service depends on.
type FileResolver interface {
	Resolve(filename string, content []byte) (*ingestion.Result, error)
}

// AnalysisService exposes the upload-and-analyze pipeline: file resolution
// to normalized rows, and liquidity analysis with TTL memoization.
type AnalysisService interface {
	ResolveUpload(filename string, content []byte) (*ingestion.Result, error)
	Analyze(ctx context.Context, rows []models.PortfolioRow) (*models.AnalysisReport, error)
}

type analysisService struct {
	resolver FileResolver
	runner   Runner
	results  *cache.TTLCache
	provider string
}

// NewAnalysisService wires the resolver and analyzer behind one service.
// results may be nil to disable memoization. provider names the quote
// provider and keys the cache so a provider switch never serves stale data.
func NewAnalysisService(resolver FileResolver, runner Runner, results *cache.TTLCache, provider string) AnalysisService {
	return &analysisService{resolver: resolver, runner: runner, results: results, provider: provider}
}

func (s *analysisService) ResolveUpload(filename string, content []byte) (*ingestion.Result, error) {
	return s.resolver.Resolve(filename, content)
}

// Analyze returns the memoized report for this row set when fresh,
// otherwise runs the analyzer. Reports carrying a fatal provider failure
// are never cached.
func (s *analysisService) Analyze(ctx context.Context, rows []models.PortfolioRow) (*models.AnalysisReport, error) {
	key := cacheKey(s.provider, rows)

	if s.results != nil {
		if hit, ok := s.results.Get(key); ok {
			logger.L().Debug().Str("key", key).Msg("analysis cache hit")
			return hit.(*models.AnalysisReport), nil
		}
	}

	report, err := s.runner.Analyze(ctx, rows)
	if err != nil {
		return report, err
	}

	if s.results != nil && report.FatalError == "" {
		s.results.Set(key, report)
	}
	return report, nil
}

// cacheKey is order-insensitive over the row set: the same positions in a
// different file order hit the same entry.
func cacheKey(provider string, rows []models.PortfolioRow) string {
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, fmt.Sprintf("%s:%d", row.Asset, row.Quantity))
	}
	sort.Strings(parts)
	return provider + "|" + strings.Join(parts, ",")
}
