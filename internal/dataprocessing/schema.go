package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"

	"lmdicli/internal/lmdi"
)

// PanelSchema names the columns of a panel table.
type PanelSchema struct {
	YearColumn      string   `json:"year_column" yaml:"year_column"`
	SectorColumn    string   `json:"sector_column" yaml:"sector_column"`
	AggregateColumn string   `json:"aggregate_column" yaml:"aggregate_column"`
	Drivers         []string `json:"drivers" yaml:"drivers"`
}

// Validate checks that the schema names every required column once.
func (s PanelSchema) Validate() error {
	if s.YearColumn == "" {
		return fmt.Errorf("year column not specified")
	}
	if s.SectorColumn == "" {
		return fmt.Errorf("sector column not specified")
	}
	if s.AggregateColumn == "" {
		return fmt.Errorf("aggregate column not specified")
	}
	if len(s.Drivers) == 0 {
		return fmt.Errorf("no driver columns specified")
	}

	seen := map[string]bool{
		s.YearColumn:      true,
		s.SectorColumn:    true,
		s.AggregateColumn: true,
	}
	if len(seen) != 3 {
		return fmt.Errorf("year, sector and aggregate columns must be distinct")
	}
	for _, d := range s.Drivers {
		if d == "" {
			return fmt.Errorf("empty driver column name")
		}
		if seen[d] {
			return fmt.Errorf("duplicate column %q in schema", d)
		}
		seen[d] = true
	}
	return nil
}

// columnIndex maps header names to their positions for one file.
type columnIndex map[string]int

// mapColumns resolves the schema's columns against a header row.
// Header matching is case-insensitive and ignores surrounding
// whitespace.
func mapColumns(schema PanelSchema, header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}
		if _, dup := positions[name]; dup {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		positions[name] = i
	}

	index := make(columnIndex)
	required := append([]string{schema.YearColumn, schema.SectorColumn, schema.AggregateColumn}, schema.Drivers...)
	for _, col := range required {
		pos, ok := positions[strings.ToLower(col)]
		if !ok {
			return nil, fmt.Errorf("column %q not found in header", col)
		}
		index[col] = pos
	}
	return index, nil
}

// parseRow converts one data row into an observation.
func parseRow(schema PanelSchema, index columnIndex, row []string, line int) (lmdi.Observation, error) {
	cell := func(col string) string {
		pos := index[col]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	year, err := strconv.Atoi(cell(schema.YearColumn))
	if err != nil {
		return lmdi.Observation{}, fmt.Errorf("parse %s (line %d): %w", schema.YearColumn, line, err)
	}

	sector := cell(schema.SectorColumn)
	if sector == "" {
		return lmdi.Observation{}, fmt.Errorf("empty %s (line %d)", schema.SectorColumn, line)
	}

	aggregate, err := parseValue(cell(schema.AggregateColumn), schema.AggregateColumn, line)
	if err != nil {
		return lmdi.Observation{}, err
	}

	drivers := make(map[string]float64, len(schema.Drivers))
	for _, name := range schema.Drivers {
		v, err := parseValue(cell(name), name, line)
		if err != nil {
			return lmdi.Observation{}, err
		}
		drivers[name] = v
	}

	return lmdi.Observation{
		Year:      year,
		Sector:    sector,
		Aggregate: aggregate,
		Drivers:   drivers,
	}, nil
}

// parseValue parses a numeric cell, tolerating thousands separators.
func parseValue(raw, column string, line int) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("empty %s (line %d)", column, line)
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s (line %d): %w", column, line, err)
	}
	return value, nil
}
