package lmdi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Analyzer orchestrates LMDI decomposition over a contiguous year range.
type Analyzer struct {
	mode    Mode
	drivers []string
	logger  *slog.Logger

	maxConcurrency  int
	skipFailedYears bool
}

// NewAnalyzer creates an analyzer for the given mode and ordered driver
// list.
func NewAnalyzer(mode Mode, drivers []string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		mode:           mode,
		drivers:        append([]string(nil), drivers...),
		logger:         logger,
		maxConcurrency: 4,
	}
}

// SetMaxConcurrency bounds the number of per-year transitions computed
// in parallel. Values below 1 force sequential execution.
func (a *Analyzer) SetMaxConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	a.maxConcurrency = n
}

// SetSkipFailedYears switches the propagation policy from aborting the
// whole run on the first failed transition (the default) to logging the
// failure and omitting that year's row.
func (a *Analyzer) SetSkipFailedYears(skip bool) {
	a.skipFailedYears = skip
}

// Run decomposes every transition y -> y+1 for y in [start, stop) and
// assembles the per-year contributions into a ResultTable indexed by
// the starting year of each transition.
//
// The panel is deep-copied before the scan; the caller's data is never
// mutated.
// Transitions are computed concurrently up to the configured limit and
// merged by year key, so the table does not depend on scheduling order.
func (a *Analyzer) Run(ctx context.Context, panel Panel, start, stop int) (*ResultTable, error) {
	began := time.Now()

	if !a.mode.Valid() {
		return nil, &InvalidModeError{Mode: a.mode.String()}
	}
	if err := validateDrivers(a.drivers); err != nil {
		return nil, err
	}
	if stop <= start {
		return nil, fmt.Errorf("empty year range: start %d, stop %d", start, stop)
	}

	working := panel.Clone()

	a.logger.InfoContext(ctx, "starting decomposition analysis",
		"mode", a.mode.String(),
		"start_year", start,
		"stop_year", stop,
		"drivers", len(a.drivers),
		"observations", len(working.Observations),
	)

	years := stop - start
	rows := make([]map[string]float64, years)
	failures := make([]error, years)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)

	for offset := 0; offset < years; offset++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			year := start + offset
			row, err := DecomposeStep(working, year, a.mode, a.drivers)
			if err != nil {
				if a.skipFailedYears {
					failures[offset] = err
					return nil
				}
				return fmt.Errorf("decompose transition %d -> %d: %w", year, year+1, err)
			}
			rows[offset] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := NewResultTable(a.mode, a.drivers)
	for offset, row := range rows {
		year := start + offset
		if row == nil {
			a.logger.WarnContext(ctx, "skipped failed transition",
				"year", year,
				"error", failures[offset],
			)
			continue
		}
		table.SetRow(year, row)
	}

	if table.Len() == 0 {
		return nil, fmt.Errorf("no transitions decomposed in range [%d, %d)", start, stop)
	}

	a.logger.InfoContext(ctx, "decomposition analysis completed",
		"duration", time.Since(began),
		"rows", table.Len(),
	)

	return table, nil
}

// RunBySector decomposes each sector's sub-panel independently over the
// same year range, mirroring an analysis where every sector forms its
// own aggregate. The result is one table per sector key.
func (a *Analyzer) RunBySector(ctx context.Context, panel Panel, start, stop int) (map[string]*ResultTable, error) {
	sectors := panel.Sectors()
	if len(sectors) == 0 {
		return nil, fmt.Errorf("panel has no sectors")
	}

	results := make(map[string]*ResultTable, len(sectors))
	for _, sector := range sectors {
		table, err := a.Run(ctx, panel.SelectSector(sector), start, stop)
		if err != nil {
			return nil, fmt.Errorf("sector %q: %w", sector, err)
		}
		results[sector] = table
	}
	return results, nil
}
