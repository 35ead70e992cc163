package ingestion

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
)

// workbookEngines is the fixed, ordered set of sheet-selection strategies
// tried for .xlsx/.xls files. "first-sheet" reads only the workbook's
// first sheet; "scan-sheets" walks every sheet in workbook order.
var workbookEngines = []string{"first-sheet", "scan-sheets"}

// resolveWorkbook walks the skip-rows × engine space in fixed order and
// returns the first table containing every target column. The workbook is
// opened once; each attempt only re-reads the cached rows.
func (r *Resolver) resolveWorkbook(content []byte) (*Table, ParseConfig, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, ParseConfig{}, fmt.Errorf("%w: not a readable workbook: %v", apperr.ErrNoReadableTable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ParseConfig{}, fmt.Errorf("%w: workbook has no sheets", apperr.ErrNoReadableTable)
	}

	attempts := 0
	for skip := 0; skip < maxSkipRows; skip++ {
		for _, engine := range workbookEngines {
			attempts++

			candidates := sheets[:1]
			if engine == "scan-sheets" {
				candidates = sheets
			}

			for _, sheet := range candidates {
				rows, err := f.GetRows(sheet)
				if err != nil || len(rows) <= skip {
					continue
				}
				if table := r.trySheet(rows, skip); table != nil {
					return table, ParseConfig{Engine: engine, SkipRows: skip}, nil
				}
			}
		}
	}
	return nil, ParseConfig{}, fmt.Errorf("%w: columns %v not found after %d attempts",
		apperr.ErrNoReadableTable, r.targets, attempts)
}

// trySheet treats rows[skip] as the header row and selects the target
// columns from everything below it, or returns nil when the targets are
// not all present.
func (r *Resolver) trySheet(rows [][]string, skip int) *Table {
	idx := matchTargets(rows[skip], r.targets)
	if idx == nil {
		return nil
	}

	table := &Table{Headers: append([]string(nil), r.targets...)}
	for _, rec := range rows[skip+1:] {
		table.Records = append(table.Records, selectCells(rec, idx))
	}
	return table
}
