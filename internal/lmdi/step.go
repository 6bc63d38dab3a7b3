package lmdi

import "sort"

// DecomposeStep computes one row of per-driver contributions for the
// transition year -> year+1.
//
// Rows for the two periods are aligned by sector key: both years must
// cover exactly the same sector set, and the aggregate and driver
// vectors are built in sorted-sector order so the result is
// deterministic. The total element of the underlying decomposition is
// dropped; only per-driver contributions are returned.
func DecomposeStep(p Panel, year int, mode Mode, drivers []string) (map[string]float64, error) {
	if !mode.Valid() {
		return nil, &InvalidModeError{Mode: mode.String()}
	}
	if err := validateDrivers(drivers); err != nil {
		return nil, err
	}

	rows0, err := p.SelectYear(year)
	if err != nil {
		return nil, err
	}
	if len(rows0) == 0 {
		return nil, &MissingYearError{Year: year}
	}
	rowsT, err := p.SelectYear(year + 1)
	if err != nil {
		return nil, err
	}
	if len(rowsT) == 0 {
		return nil, &MissingYearError{Year: year + 1}
	}

	sectors, err := alignSectors(rows0, rowsT, year, year+1)
	if err != nil {
		return nil, err
	}

	v0 := make([]float64, len(sectors))
	vt := make([]float64, len(sectors))
	x0 := make([][]float64, len(drivers))
	xt := make([][]float64, len(drivers))
	for d := range drivers {
		x0[d] = make([]float64, len(sectors))
		xt[d] = make([]float64, len(sectors))
	}

	for i, sector := range sectors {
		o0 := rows0[sector]
		oT := rowsT[sector]
		v0[i] = o0.Aggregate
		vt[i] = oT.Aggregate

		for d, name := range drivers {
			val0, ok := o0.Driver(name)
			if !ok {
				return nil, &UnknownDriverError{Driver: name, Sector: sector, Year: year}
			}
			valT, ok := oT.Driver(name)
			if !ok {
				return nil, &UnknownDriverError{Driver: name, Sector: sector, Year: year + 1}
			}
			x0[d][i] = val0
			xt[d][i] = valT
		}
	}

	values, err := Decompose(mode, vt, v0, xt, x0)
	if err != nil {
		return nil, err
	}

	// values[0] is the total, a closure check rather than a driver.
	result := make(map[string]float64, len(drivers))
	for d, name := range drivers {
		result[name] = values[d+1]
	}
	return result, nil
}

// alignSectors checks that both periods cover the same sector set and
// returns it sorted.
func alignSectors(rows0, rowsT map[string]Observation, yearFrom, yearTo int) ([]string, error) {
	var missing, extra []string
	for sector := range rows0 {
		if _, ok := rowsT[sector]; !ok {
			missing = append(missing, sector)
		}
	}
	for sector := range rowsT {
		if _, ok := rows0[sector]; !ok {
			extra = append(extra, sector)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return nil, &MisalignedRowsError{YearFrom: yearFrom, YearTo: yearTo, Missing: missing, Extra: extra}
	}

	sectors := make([]string, 0, len(rows0))
	for sector := range rows0 {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)
	return sectors, nil
}
