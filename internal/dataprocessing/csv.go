package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"

	"lmdicli/internal/lmdi"
)

// LoadPanelCSV reads a panel from a CSV file whose first row is the
// header named by the schema.
func LoadPanelCSV(path string, schema PanelSchema) (lmdi.Panel, error) {
	if err := schema.Validate(); err != nil {
		return lmdi.Panel{}, fmt.Errorf("validate schema: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return lmdi.Panel{}, fmt.Errorf("open panel file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return lmdi.Panel{}, fmt.Errorf("read panel records: %w", err)
	}
	if len(records) < 2 {
		return lmdi.Panel{}, fmt.Errorf("panel file %s has no data rows", path)
	}

	index, err := mapColumns(schema, records[0])
	if err != nil {
		return lmdi.Panel{}, fmt.Errorf("map columns in %s: %w", path, err)
	}

	panel := lmdi.Panel{Observations: make([]lmdi.Observation, 0, len(records)-1)}
	for i, row := range records[1:] {
		line := i + 2
		if isEmptyRow(row) {
			continue
		}
		obs, err := parseRow(schema, index, row, line)
		if err != nil {
			return lmdi.Panel{}, fmt.Errorf("%s: %w", path, err)
		}
		panel.Observations = append(panel.Observations, obs)
	}

	if len(panel.Observations) == 0 {
		return lmdi.Panel{}, fmt.Errorf("panel file %s contains only a header", path)
	}

	slog.Info("loaded panel",
		slog.String("path", path),
		slog.Int("observations", len(panel.Observations)),
		slog.Int("years", len(panel.Years())),
		slog.Int("sectors", len(panel.Sectors())),
	)

	return panel, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
