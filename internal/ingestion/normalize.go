package ingestion

import (
	"strconv"
	"strings"

	"github.com/JoaoVF25/dashboard/internal/domain/models"
)

// Normalize turns a raw resolved table into clean portfolio rows.
//
// Per row:
//   - the asset cell is trimmed and uppercased; empty assets are dropped.
//   - the quantity cell is parsed as a number, accepting both comma and
//     dot decimal separators (B3 exports use commas); unparseable or
//     non-positive quantities drop the row.
//   - surviving quantities are truncated to integers.
//
// Rows sharing the same asset are then summed, preserving first-appearance
// order. The second return value counts dropped input rows.
func Normalize(table *Table) ([]models.PortfolioRow, int) {
	skipped := 0
	order := make([]string, 0, len(table.Records))
	byAsset := make(map[string]int64, len(table.Records))

	for _, rec := range table.Records {
		if len(rec) < 2 {
			skipped++
			continue
		}
		asset := strings.ToUpper(strings.TrimSpace(rec[0]))
		qty, ok := parseQuantity(rec[1])
		if asset == "" || !ok || qty <= 0 {
			skipped++
			continue
		}
		if _, seen := byAsset[asset]; !seen {
			order = append(order, asset)
		}
		byAsset[asset] += qty
	}

	rows := make([]models.PortfolioRow, 0, len(order))
	for _, asset := range order {
		rows = append(rows, models.PortfolioRow{Asset: asset, Quantity: byAsset[asset]})
	}
	return rows, skipped
}

// parseQuantity coerces a quantity cell to an integer share count.
// Decimal values are truncated, matching how the upload flow has always
// treated fractional quantities.
func parseQuantity(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(v), true
}
