package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "panel.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadPanelWorkbook(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"year", "sector", "emissions", "intensity", "activity"},
		{2000, "industry", 6, 2, 3},
		{2000, "transport", 12, 4, 3},
		{2001, "industry", 10, 2, 5},
		{2001, "transport", 18, 6, 3},
	})

	panel, err := LoadPanelWorkbook(path, "", testSchema())
	require.NoError(t, err)
	require.Len(t, panel.Observations, 4)
	assert.Equal(t, []int{2000, 2001}, panel.Years())
}

func TestLoadPanelWorkbookNamedSheet(t *testing.T) {
	path := writeTempWorkbook(t, "panel", [][]interface{}{
		{"year", "sector", "emissions", "intensity", "activity"},
		{2000, "industry", 6, 2, 3},
		{2001, "industry", 10, 2, 5},
	})

	panel, err := LoadPanelWorkbook(path, "panel", testSchema())
	require.NoError(t, err)
	assert.Len(t, panel.Observations, 2)
}

func TestLoadPanelWorkbookHeaderBelowTitle(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"National emissions decomposition panel"},
		{},
		{"year", "sector", "emissions", "intensity", "activity"},
		{2000, "industry", 6, 2, 3},
		{2001, "industry", 10, 2, 5},
	})

	panel, err := LoadPanelWorkbook(path, "", testSchema())
	require.NoError(t, err)
	assert.Len(t, panel.Observations, 2)
}

func TestLoadPanelWorkbookSkipsTotalsRow(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"year", "sector", "emissions", "intensity", "activity"},
		{2000, "industry", 6, 2, 3},
		{2001, "industry", 10, 2, 5},
		{"Total", "", 16, "", ""},
	})

	panel, err := LoadPanelWorkbook(path, "", testSchema())
	require.NoError(t, err)
	assert.Len(t, panel.Observations, 2)
}

func TestLoadPanelWorkbookNoMatchingSheet(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"completely", "different", "columns"},
		{1, 2, 3},
	})

	_, err := LoadPanelWorkbook(path, "", testSchema())
	assert.Error(t, err)
}

func TestLoadPanelWorkbookMissingFile(t *testing.T) {
	_, err := LoadPanelWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"), "", testSchema())
	assert.Error(t, err)
}
