// Package exporter writes decomposition results to files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"lmdicli/internal/lmdi"
)

// WriteOptions configures result export.
type WriteOptions struct {
	// YearHeader overrides the index column name, "year" by default.
	YearHeader string
	// Precision is the number of decimal places, full precision when 0.
	Precision int
	// BOMPrefix prepends a UTF-8 BOM for spreadsheet compatibility.
	BOMPrefix bool
}

// WriteResultCSV writes a result table as CSV: one row per transition
// year, one column per driver, drivers in table order.
func WriteResultCSV(path string, table *lmdi.ResultTable, opts WriteOptions) error {
	if table == nil || table.Len() == 0 {
		return fmt.Errorf("no result rows to write")
	}

	yearHeader := opts.YearHeader
	if yearHeader == "" {
		yearHeader = "year"
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if opts.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	header := append([]string{yearHeader}, table.Drivers...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, year := range table.Years {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(year))
		for _, driver := range table.Drivers {
			record = append(record, formatValue(table.Value(year, driver), opts.Precision))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row for year %d: %w", year, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result csv: %w", err)
	}

	slog.Info("wrote result table",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("drivers", len(table.Drivers)),
	)
	return nil
}

// WriteSectorTotalsCSV writes the collapsed per-sector totals of a
// by-sector analysis: one row per sector, one column per driver.
func WriteSectorTotalsCSV(path string, totals map[string]map[string]float64, drivers []string, opts WriteOptions) error {
	if len(totals) == 0 {
		return fmt.Errorf("no sector totals to write")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if opts.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	header := append([]string{"sector"}, drivers...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	sectors := make([]string, 0, len(totals))
	for sector := range totals {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	for _, sector := range sectors {
		record := make([]string, 0, len(header))
		record = append(record, sector)
		for _, driver := range drivers {
			record = append(record, formatValue(totals[sector][driver], opts.Precision))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row for sector %s: %w", sector, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatValue(v float64, precision int) string {
	if precision > 0 {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
