package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
	"github.com/JoaoVF25/dashboard/internal/storage"
)

// PortfolioService defines business logic for the versioned portfolio store.
//
// A portfolio is append-only: every save creates a new version, and loads
// default to the latest one. Store failures are reported as
// apperr.ErrStoreUnavailable so handlers can answer 503 uniformly.
type PortfolioService interface {
	ListPortfolios(ctx context.Context) ([]string, error)
	SaveVersion(ctx context.Context, name string, rows []models.PortfolioRow, meta map[string]string) (int, error)

	// Load returns the rows of one version; version 0 means latest.
	Load(ctx context.Context, name string, version int) ([]models.PortfolioRow, error)

	History(ctx context.Context, name string) ([]models.VersionSummary, error)
	Compare(ctx context.Context, name string, from, to int) (*models.PortfolioDiff, error)
	Delete(ctx context.Context, name string) error
}

type portfolioService struct {
	store storage.TableStore

	now func() time.Time // test indirection
}

func NewPortfolioService(store storage.TableStore) PortfolioService {
	return &portfolioService{store: store, now: time.Now}
}

func (s *portfolioService) ListPortfolios(ctx context.Context) ([]string, error) {
	names, err := s.store.ListTables()
	if err != nil {
		return nil, storeErr(err)
	}
	return names, nil
}

// SaveVersion appends rows as the next version of the named portfolio and
// returns the version number it was assigned.
func (s *portfolioService) SaveVersion(ctx context.Context, name string, rows []models.PortfolioRow, meta map[string]string) (int, error) {
	existing, err := s.store.ReadAllRows(name)
	if err != nil {
		return 0, storeErr(err)
	}

	version := maxVersion(existing) + 1
	uploadedAt := s.now().UTC()

	var totalQty int64
	for _, row := range rows {
		totalQty += row.Quantity
	}
	stamped := make(map[string]string, len(meta)+2)
	for k, v := range meta {
		stamped[k] = v
	}
	stamped["total_assets"] = strconv.Itoa(len(rows))
	stamped["total_quantity"] = strconv.FormatInt(totalQty, 10)

	out := make([]models.VersionedRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.VersionedRow{
			PortfolioRow: row,
			Version:      version,
			UploadedAt:   uploadedAt,
			Meta:         stamped,
		})
	}

	if err := s.store.AppendRows(name, out); err != nil {
		return 0, storeErr(err)
	}
	return version, nil
}

func (s *portfolioService) Load(ctx context.Context, name string, version int) ([]models.PortfolioRow, error) {
	all, err := s.store.ReadAllRows(name)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: portfolio %q is empty", apperr.ErrVersionNotFound, name)
	}

	if version == 0 {
		version = maxVersion(all)
	}

	var rows []models.PortfolioRow
	for _, row := range all {
		if row.Version == version {
			rows = append(rows, row.PortfolioRow)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: portfolio %q has no version %d", apperr.ErrVersionNotFound, name, version)
	}
	return rows, nil
}

// History summarizes every saved version, newest first.
func (s *portfolioService) History(ctx context.Context, name string) ([]models.VersionSummary, error) {
	all, err := s.store.ReadAllRows(name)
	if err != nil {
		return nil, storeErr(err)
	}

	byVersion := make(map[int]*models.VersionSummary)
	for _, row := range all {
		sum, ok := byVersion[row.Version]
		if !ok {
			sum = &models.VersionSummary{Version: row.Version, UploadedAt: row.UploadedAt}
			byVersion[row.Version] = sum
		}
		sum.AssetCount++
		sum.TotalQuantity += row.Quantity
	}

	out := make([]models.VersionSummary, 0, len(byVersion))
	for _, sum := range byVersion {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}

// Compare diffs two saved versions of the same portfolio.
func (s *portfolioService) Compare(ctx context.Context, name string, from, to int) (*models.PortfolioDiff, error) {
	fromRows, err := s.Load(ctx, name, from)
	if err != nil {
		return nil, err
	}
	toRows, err := s.Load(ctx, name, to)
	if err != nil {
		return nil, err
	}

	oldQty := make(map[string]int64, len(fromRows))
	for _, row := range fromRows {
		oldQty[row.Asset] = row.Quantity
	}
	newQty := make(map[string]int64, len(toRows))
	for _, row := range toRows {
		newQty[row.Asset] = row.Quantity
	}

	diff := &models.PortfolioDiff{Added: []string{}, Removed: []string{}, Modified: []models.QuantityChange{}}
	for asset, qty := range newQty {
		old, ok := oldQty[asset]
		switch {
		case !ok:
			diff.Added = append(diff.Added, asset)
		case old != qty:
			diff.Modified = append(diff.Modified, models.QuantityChange{
				Asset:  asset,
				OldQty: old,
				NewQty: qty,
				Change: qty - old,
			})
		}
	}
	for asset := range oldQty {
		if _, ok := newQty[asset]; !ok {
			diff.Removed = append(diff.Removed, asset)
		}
	}

	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)
	sort.Slice(diff.Modified, func(i, j int) bool { return diff.Modified[i].Asset < diff.Modified[j].Asset })
	return diff, nil
}

func (s *portfolioService) Delete(ctx context.Context, name string) error {
	if err := s.store.DeleteTable(name); err != nil {
		return storeErr(err)
	}
	return nil
}

func maxVersion(rows []models.VersionedRow) int {
	max := 0
	for _, row := range rows {
		if row.Version > max {
			max = row.Version
		}
	}
	return max
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
}
