package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"lmdicli/internal/lmdi"
)

// LoadPanelWorkbook reads a panel from an XLSX workbook. When sheet is
// empty the reader scans the workbook for the first sheet whose header
// row resolves every schema column.
func LoadPanelWorkbook(path, sheet string, schema PanelSchema) (lmdi.Panel, error) {
	if err := schema.Validate(); err != nil {
		return lmdi.Panel{}, fmt.Errorf("validate schema: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return lmdi.Panel{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet != "" {
		sheets = []string{sheet}
	}

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			if sheet != "" {
				return lmdi.Panel{}, fmt.Errorf("read sheet %q: %w", name, err)
			}
			continue
		}

		headerRow, index := findHeaderRow(schema, rows)
		if headerRow < 0 {
			if sheet != "" {
				return lmdi.Panel{}, fmt.Errorf("sheet %q has no header row matching the schema", name)
			}
			continue
		}

		panel, err := parseSheet(schema, index, rows, headerRow)
		if err != nil {
			return lmdi.Panel{}, fmt.Errorf("sheet %q: %w", name, err)
		}

		slog.Info("loaded panel workbook",
			slog.String("path", path),
			slog.String("sheet", name),
			slog.Int("observations", len(panel.Observations)),
		)
		return panel, nil
	}

	return lmdi.Panel{}, fmt.Errorf("no sheet in %s matches the panel schema", path)
}

// findHeaderRow scans the first rows of a sheet for one that resolves
// every schema column.
func findHeaderRow(schema PanelSchema, rows [][]string) (int, columnIndex) {
	limit := len(rows)
	if limit > 10 {
		limit = 10
	}
	for i := 0; i < limit; i++ {
		if index, err := mapColumns(schema, rows[i]); err == nil {
			return i, index
		}
	}
	return -1, nil
}

func parseSheet(schema PanelSchema, index columnIndex, rows [][]string, headerRow int) (lmdi.Panel, error) {
	panel := lmdi.Panel{}
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) || isTotalsRow(row) {
			continue
		}
		obs, err := parseRow(schema, index, row, i+1)
		if err != nil {
			return lmdi.Panel{}, err
		}
		panel.Observations = append(panel.Observations, obs)
	}
	if len(panel.Observations) == 0 {
		return lmdi.Panel{}, fmt.Errorf("no data rows below header row %d", headerRow+1)
	}
	return panel, nil
}

// isTotalsRow skips summary rows that workbooks commonly append below
// the data.
func isTotalsRow(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(row[0]))
	return first == "total" || first == "sum"
}
