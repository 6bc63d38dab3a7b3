package lmdi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDegenerateAggregate reports a multiplicative run whose aggregate
// total is unchanged between the two periods, leaving the log-mean
// weight denominator undefined.
var ErrDegenerateAggregate = errors.New("aggregate total unchanged between periods: multiplicative weights are undefined")

// InvalidModeError reports a mode string outside the two recognized
// values.
type InvalidModeError struct {
	Mode string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid decomposition mode %q: must be %q or %q", e.Mode, ModeAdditive, ModeMultiplicative)
}

// MissingYearError reports a transition whose starting or ending year
// has no observations in the panel.
type MissingYearError struct {
	Year int
}

func (e *MissingYearError) Error() string {
	return fmt.Sprintf("panel has no observations for year %d", e.Year)
}

// MisalignedRowsError reports a transition whose two periods do not
// cover the same sector set.
type MisalignedRowsError struct {
	YearFrom int
	YearTo   int
	Missing  []string // sectors present in YearFrom but absent in YearTo
	Extra    []string // sectors present in YearTo but absent in YearFrom
}

func (e *MisalignedRowsError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing in %d: %s", e.YearTo, strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("absent in %d: %s", e.YearFrom, strings.Join(e.Extra, ", ")))
	}
	return fmt.Sprintf("sector sets differ between years %d and %d (%s)", e.YearFrom, e.YearTo, strings.Join(parts, "; "))
}

// UnknownDriverError reports an observation lacking a requested driver
// column.
type UnknownDriverError struct {
	Driver string
	Sector string
	Year   int
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("driver %q not present for sector %q in year %d", e.Driver, e.Sector, e.Year)
}

// IdentityError reports an observation whose drivers do not multiply
// out to its aggregate within tolerance.
type IdentityError struct {
	Sector   string
	Year     int
	Residual float64
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("factors are not equal to aggregate for sector %q in year %d (residual %g)", e.Sector, e.Year, e.Residual)
}

// validateDrivers checks that the driver list is non-empty and free of
// duplicates.
func validateDrivers(drivers []string) error {
	if len(drivers) == 0 {
		return errors.New("no drivers specified")
	}
	seen := make(map[string]bool, len(drivers))
	for _, d := range drivers {
		if d == "" {
			return errors.New("empty driver name")
		}
		if seen[d] {
			return fmt.Errorf("duplicate driver %q", d)
		}
		seen[d] = true
	}
	return nil
}

// validateVectors checks the dimensional preconditions of one
// decomposition pair.
func validateVectors(vt, v0 []float64, xt, x0 [][]float64) error {
	if len(v0) == 0 {
		return errors.New("no rows to decompose")
	}
	if len(vt) != len(v0) {
		return fmt.Errorf("aggregate vectors differ in length: final %d, initial %d", len(vt), len(v0))
	}
	if len(xt) != len(x0) {
		return fmt.Errorf("driver vector counts differ: final %d, initial %d", len(xt), len(x0))
	}
	for d := range x0 {
		if len(x0[d]) != len(v0) || len(xt[d]) != len(v0) {
			return fmt.Errorf("driver %d rows misaligned with aggregate rows: initial %d, final %d, want %d",
				d, len(x0[d]), len(xt[d]), len(v0))
		}
	}
	return nil
}
