package lmdi

// ShiftYears returns a copy of the table with every row relabeled by
// the offset. A table keyed by the starting year of each transition can
// be relabeled with offset 1 so that each row reports the change ending
// at its index year (the row labeled 1991 then covers 1990 -> 1991).
func (t *ResultTable) ShiftYears(offset int) *ResultTable {
	shifted := NewResultTable(t.Mode, t.Drivers)
	for _, year := range t.Years {
		row := t.Rows[year]
		copied := make(map[string]float64, len(row))
		for k, v := range row {
			copied[k] = v
		}
		shifted.SetRow(year+offset, copied)
	}
	return shifted
}

// SumByDriver sums each driver's contribution across all years. For an
// additive table this telescopes to the driver's share of the
// aggregate's total change over the whole span.
func (t *ResultTable) SumByDriver() map[string]float64 {
	totals := make(map[string]float64, len(t.Drivers))
	for _, driver := range t.Drivers {
		for _, year := range t.Years {
			totals[driver] += t.Rows[year][driver]
		}
	}
	return totals
}

// SectorTotals collapses a per-sector analysis into one row per sector,
// each holding the cross-year sum of every driver's contribution.
func SectorTotals(tables map[string]*ResultTable) map[string]map[string]float64 {
	totals := make(map[string]map[string]float64, len(tables))
	for sector, table := range tables {
		totals[sector] = table.SumByDriver()
	}
	return totals
}
