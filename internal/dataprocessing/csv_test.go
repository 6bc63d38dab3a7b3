package dataprocessing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() PanelSchema {
	return PanelSchema{
		YearColumn:      "year",
		SectorColumn:    "sector",
		AggregateColumn: "emissions",
		Drivers:         []string{"intensity", "activity"},
	}
}

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPanelCSV(t *testing.T) {
	path := writeTempCSV(t, `year,sector,emissions,intensity,activity
2000,industry,6,2,3
2000,transport,12,4,3
2001,industry,10,2,5
2001,transport,18,6,3
`)

	panel, err := LoadPanelCSV(path, testSchema())
	require.NoError(t, err)
	require.Len(t, panel.Observations, 4)

	first := panel.Observations[0]
	assert.Equal(t, 2000, first.Year)
	assert.Equal(t, "industry", first.Sector)
	assert.InDelta(t, 6.0, first.Aggregate, 1e-12)
	assert.InDelta(t, 2.0, first.Drivers["intensity"], 1e-12)
	assert.InDelta(t, 3.0, first.Drivers["activity"], 1e-12)

	assert.Equal(t, []int{2000, 2001}, panel.Years())
	assert.Equal(t, []string{"industry", "transport"}, panel.Sectors())
}

func TestLoadPanelCSVHeaderCaseInsensitive(t *testing.T) {
	path := writeTempCSV(t, `Year,Sector,Emissions,Intensity,Activity
2000,industry,6,2,3
2001,industry,10,2,5
`)

	panel, err := LoadPanelCSV(path, testSchema())
	require.NoError(t, err)
	assert.Len(t, panel.Observations, 2)
}

func TestLoadPanelCSVThousandsSeparators(t *testing.T) {
	path := writeTempCSV(t, `year,sector,emissions,intensity,activity
2000,industry,"1,200",2,600
`)

	panel, err := LoadPanelCSV(path, testSchema())
	require.NoError(t, err)
	assert.InDelta(t, 1200.0, panel.Observations[0].Aggregate, 1e-12)
}

func TestLoadPanelCSVSkipsBlankRows(t *testing.T) {
	path := writeTempCSV(t, `year,sector,emissions,intensity,activity
2000,industry,6,2,3

2001,industry,10,2,5
`)

	panel, err := LoadPanelCSV(path, testSchema())
	require.NoError(t, err)
	assert.Len(t, panel.Observations, 2)
}

func TestLoadPanelCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing column", "year,sector,emissions,intensity\n2000,industry,6,2\n"},
		{"bad year", "year,sector,emissions,intensity,activity\nabc,industry,6,2,3\n"},
		{"bad value", "year,sector,emissions,intensity,activity\n2000,industry,six,2,3\n"},
		{"empty sector", "year,sector,emissions,intensity,activity\n2000,,6,2,3\n"},
		{"header only", "year,sector,emissions,intensity,activity\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, tt.content)
			_, err := LoadPanelCSV(path, testSchema())
			assert.Error(t, err)
		})
	}
}

func TestLoadPanelCSVMissingFile(t *testing.T) {
	_, err := LoadPanelCSV(filepath.Join(t.TempDir(), "absent.csv"), testSchema())
	assert.Error(t, err)
}

func TestPanelSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PanelSchema)
		wantErr bool
	}{
		{"valid", func(s *PanelSchema) {}, false},
		{"no year", func(s *PanelSchema) { s.YearColumn = "" }, true},
		{"no sector", func(s *PanelSchema) { s.SectorColumn = "" }, true},
		{"no aggregate", func(s *PanelSchema) { s.AggregateColumn = "" }, true},
		{"no drivers", func(s *PanelSchema) { s.Drivers = nil }, true},
		{"duplicate driver", func(s *PanelSchema) { s.Drivers = []string{"intensity", "intensity"} }, true},
		{"driver collides with aggregate", func(s *PanelSchema) { s.Drivers = []string{"emissions"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := testSchema()
			tt.mutate(&schema)
			err := schema.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
