package lmdi

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyzerRun(t *testing.T) {
	panel := twoSectorPanel()
	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity", "activity"}, testLogger())

	table, err := analyzer.Run(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)

	// A 3-year panel scanned with start=2000, stop=2002 yields exactly
	// two transition rows, indexed 2000 and 2001.
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []int{2000, 2001}, table.Years)

	// Each row closes against its own total change.
	row2000, ok := table.Row(2000)
	require.True(t, ok)
	assert.InDelta(t, 10.0, row2000["intensity"]+row2000["activity"], DefaultClosureTolerance)

	row2001, ok := table.Row(2001)
	require.True(t, ok)
	assert.InDelta(t, -5.0, row2001["intensity"]+row2001["activity"], DefaultClosureTolerance)
}

func TestAnalyzerRunMultiplicative(t *testing.T) {
	panel := twoSectorPanel()
	analyzer := NewAnalyzer(ModeMultiplicative, []string{"intensity", "activity"}, testLogger())

	table, err := analyzer.Run(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)

	row, ok := table.Row(2000)
	require.True(t, ok)
	assert.InDelta(t, 28.0/18.0, row["intensity"]*row["activity"], DefaultClosureTolerance)
}

func TestAnalyzerRunDoesNotMutateInput(t *testing.T) {
	panel := twoSectorPanel()
	original := panel.Clone()

	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity", "activity"}, testLogger())
	_, err := analyzer.Run(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)

	assert.Equal(t, original, panel)
}

func TestAnalyzerParallelMatchesSequential(t *testing.T) {
	panel := twoSectorPanel()
	drivers := []string{"intensity", "activity"}

	sequential := NewAnalyzer(ModeAdditive, drivers, testLogger())
	sequential.SetMaxConcurrency(1)
	wantTable, err := sequential.Run(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)

	parallel := NewAnalyzer(ModeAdditive, drivers, testLogger())
	parallel.SetMaxConcurrency(8)
	gotTable, err := parallel.Run(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)

	assert.Equal(t, wantTable, gotTable)
}

func TestAnalyzerAbortsOnFailedTransition(t *testing.T) {
	panel := twoSectorPanel()
	// Remove year 2001 entirely so the first transition fails.
	var obs []Observation
	for _, o := range panel.Observations {
		if o.Year != 2001 {
			obs = append(obs, o)
		}
	}

	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity", "activity"}, testLogger())
	_, err := analyzer.Run(context.Background(), Panel{Observations: obs}, 2000, 2002)

	var missing *MissingYearError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, 2001, missing.Year)
}

func TestAnalyzerSkipFailedYears(t *testing.T) {
	panel := twoSectorPanel()
	var obs []Observation
	for _, o := range panel.Observations {
		if o.Year != 2001 {
			obs = append(obs, o)
		}
	}

	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity", "activity"}, testLogger())
	analyzer.SetSkipFailedYears(true)

	// Both transitions touch the removed year, so nothing survives and
	// the run reports an empty result.
	_, err := analyzer.Run(context.Background(), Panel{Observations: obs}, 2000, 2002)
	assert.Error(t, err)
}

func TestAnalyzerRejectsEmptyRange(t *testing.T) {
	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity"}, testLogger())
	_, err := analyzer.Run(context.Background(), twoSectorPanel(), 2002, 2000)
	assert.Error(t, err)
}

func TestAnalyzerRunBySector(t *testing.T) {
	panel := twoSectorPanel()
	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity", "activity"}, testLogger())

	tables, err := analyzer.RunBySector(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	for sector, table := range tables {
		assert.Equal(t, []int{2000, 2001}, table.Years, "sector %s", sector)
	}

	// Single-sector additive closure: industry moves 6 -> 10 -> 8.
	industry := tables["industry"]
	row, ok := industry.Row(2000)
	require.True(t, ok)
	assert.InDelta(t, 4.0, row["intensity"]+row["activity"], DefaultClosureTolerance)
}

func TestResultTableShiftYears(t *testing.T) {
	table := NewResultTable(ModeAdditive, []string{"intensity"})
	table.SetRow(1990, map[string]float64{"intensity": 1.5})
	table.SetRow(1991, map[string]float64{"intensity": -0.5})

	shifted := table.ShiftYears(1)
	assert.Equal(t, []int{1991, 1992}, shifted.Years)
	assert.InDelta(t, 1.5, shifted.Value(1991, "intensity"), 1e-12)
	assert.InDelta(t, -0.5, shifted.Value(1992, "intensity"), 1e-12)

	// The source table is untouched.
	assert.Equal(t, []int{1990, 1991}, table.Years)
}

func TestResultTableSumByDriver(t *testing.T) {
	panel := twoSectorPanel()
	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity", "activity"}, testLogger())

	table, err := analyzer.Run(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)

	totals := table.SumByDriver()

	// The cross-year sums telescope to the aggregate's total change:
	// 18 in 2000 to 23 in 2002.
	grand := totals["intensity"] + totals["activity"]
	assert.InDelta(t, 5.0, grand, DefaultClosureTolerance)
}

func TestSectorTotals(t *testing.T) {
	panel := twoSectorPanel()
	analyzer := NewAnalyzer(ModeAdditive, []string{"intensity", "activity"}, testLogger())

	tables, err := analyzer.RunBySector(context.Background(), panel, 2000, 2002)
	require.NoError(t, err)

	totals := SectorTotals(tables)
	require.Len(t, totals, 2)

	// industry: 6 -> 8, transport: 12 -> 15 across the whole span.
	assert.InDelta(t, 2.0, totals["industry"]["intensity"]+totals["industry"]["activity"], DefaultClosureTolerance)
	assert.InDelta(t, 3.0, totals["transport"]["intensity"]+totals["transport"]["activity"], DefaultClosureTolerance)
}

func TestVerifyIdentity(t *testing.T) {
	drivers := []string{"intensity", "activity"}

	t.Run("consistent panel", func(t *testing.T) {
		assert.NoError(t, VerifyIdentity(twoSectorPanel(), drivers, DefaultIdentityTolerance))
	})

	t.Run("inconsistent panel", func(t *testing.T) {
		panel := twoSectorPanel()
		panel.Observations[0].Aggregate = 7 // drivers multiply to 6

		err := VerifyIdentity(panel, drivers, DefaultIdentityTolerance)
		var identity *IdentityError
		require.ErrorAs(t, err, &identity)
		assert.Equal(t, "industry", identity.Sector)
		assert.Equal(t, 2000, identity.Year)
		assert.InDelta(t, 1.0, identity.Residual, 1e-9)
	})

	t.Run("missing driver", func(t *testing.T) {
		err := VerifyIdentity(twoSectorPanel(), []string{"intensity", "fuel_mix"}, DefaultIdentityTolerance)
		var unknown *UnknownDriverError
		assert.ErrorAs(t, err, &unknown)
	})
}
