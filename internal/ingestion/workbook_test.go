package ingestion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetFixture is one sheet of an in-memory test workbook.
type sheetFixture struct {
	name string
	rows [][]interface{}
}

// buildWorkbook writes an in-memory xlsx with the given sheets, in order.
func buildWorkbook(t *testing.T, sheets []sheetFixture) []byte {
	t.Helper()
	f := excelize.NewFile()
	for si, sheet := range sheets {
		if si == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for i, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheet.name, cell, &row))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestResolve_Workbook_FirstSheet(t *testing.T) {
	content := buildWorkbook(t, []sheetFixture{
		{name: "Carteira", rows: [][]interface{}{
			{"Ativo", "Quantidade"},
			{"PETR4", 100},
			{"VALE3", 50},
		}},
	})

	res, err := NewResolver().Resolve("carteira.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, "first-sheet", res.Config.Engine)
	assert.Equal(t, 0, res.Config.SkipRows)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "PETR4", res.Rows[0].Asset)
	assert.EqualValues(t, 100, res.Rows[0].Quantity)
}

func TestResolve_Workbook_BannerRows(t *testing.T) {
	content := buildWorkbook(t, []sheetFixture{
		{name: "Export", rows: [][]interface{}{
			{"Minha Carteira"},
			{"Gerado em 2025-09-12"},
			{"ativo", "QUANTIDADE"},
			{"ITUB4", 200},
		}},
	})

	res, err := NewResolver().Resolve("export.xlsx", content)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Config.SkipRows)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "ITUB4", res.Rows[0].Asset)
}

func TestResolve_Workbook_DataOnSecondSheet(t *testing.T) {
	// The first sheet has no matching columns, so only the scan-sheets
	// engine can find the table.
	content := buildWorkbook(t, []sheetFixture{
		{name: "Resumo", rows: [][]interface{}{
			{"Resumo da carteira"},
		}},
		{name: "Posições", rows: [][]interface{}{
			{"Ativo", "Quantidade"},
			{"BBAS3", 75},
		}},
	})

	res, err := NewResolver().Resolve("pos.xlsx", content)
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "BBAS3", res.Rows[0].Asset)
}

func TestResolve_Workbook_NoMatch(t *testing.T) {
	content := buildWorkbook(t, []sheetFixture{
		{name: "Dados", rows: [][]interface{}{
			{"Nome", "Valor"},
			{"PETR4", 100},
		}},
	})

	_, err := NewResolver().Resolve("dados.xlsx", content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no readable table")
}

func TestResolve_Workbook_Corrupt(t *testing.T) {
	_, err := NewResolver().Resolve("broken.xlsx", []byte("this is not a zip archive"))
	require.Error(t, err)
}
