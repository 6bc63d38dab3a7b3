package lmdi

import (
	"fmt"
	"sort"
)

// Mode selects the decomposition form.
type Mode string

const (
	// ModeAdditive produces per-driver contributions in the aggregate's
	// unit, summing to the total change.
	ModeAdditive Mode = "add"
	// ModeMultiplicative produces per-driver ratio factors, multiplying
	// to the total ratio.
	ModeMultiplicative Mode = "mul"
)

// ParseMode converts a mode string into a Mode. Anything other than the
// two recognized values is rejected.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAdditive:
		return ModeAdditive, nil
	case ModeMultiplicative:
		return ModeMultiplicative, nil
	default:
		return "", &InvalidModeError{Mode: s}
	}
}

// Valid reports whether the mode is one of the two recognized values.
func (m Mode) Valid() bool {
	return m == ModeAdditive || m == ModeMultiplicative
}

// String returns the wire representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Observation is a single sector-year row of a panel: the aggregate
// quantity being decomposed plus the driver values whose product equals
// the aggregate.
type Observation struct {
	Year      int                `json:"year"`
	Sector    string             `json:"sector"`
	Aggregate float64            `json:"aggregate"`
	Drivers   map[string]float64 `json:"drivers"`
}

// IsValid checks if the observation carries usable data.
func (o Observation) IsValid() bool {
	return o.Sector != "" && o.Aggregate > 0 && len(o.Drivers) > 0
}

// Driver returns the named driver value and whether it is present.
func (o Observation) Driver(name string) (float64, bool) {
	v, ok := o.Drivers[name]
	return v, ok
}

// Panel is an ordered collection of observations supplied by the
// caller. The analysis never mutates it except through Clone at the top
// level.
type Panel struct {
	Observations []Observation `json:"observations"`
}

// Clone returns a deep copy of the panel, including driver maps.
func (p Panel) Clone() Panel {
	obs := make([]Observation, len(p.Observations))
	for i, o := range p.Observations {
		drivers := make(map[string]float64, len(o.Drivers))
		for k, v := range o.Drivers {
			drivers[k] = v
		}
		o.Drivers = drivers
		obs[i] = o
	}
	return Panel{Observations: obs}
}

// HasYear reports whether at least one observation carries the year.
func (p Panel) HasYear(year int) bool {
	for _, o := range p.Observations {
		if o.Year == year {
			return true
		}
	}
	return false
}

// SelectYear returns the observations for one year, keyed by sector.
// A duplicate sector within the year is an error since alignment would
// be ambiguous.
func (p Panel) SelectYear(year int) (map[string]Observation, error) {
	rows := make(map[string]Observation)
	for _, o := range p.Observations {
		if o.Year != year {
			continue
		}
		if _, dup := rows[o.Sector]; dup {
			return nil, fmt.Errorf("duplicate sector %q in year %d", o.Sector, year)
		}
		rows[o.Sector] = o
	}
	return rows, nil
}

// SelectSector returns the sub-panel for one sector, preserving row order.
func (p Panel) SelectSector(sector string) Panel {
	var obs []Observation
	for _, o := range p.Observations {
		if o.Sector == sector {
			obs = append(obs, o)
		}
	}
	return Panel{Observations: obs}
}

// Sectors returns the distinct sector keys in sorted order.
func (p Panel) Sectors() []string {
	seen := make(map[string]bool)
	var sectors []string
	for _, o := range p.Observations {
		if !seen[o.Sector] {
			seen[o.Sector] = true
			sectors = append(sectors, o.Sector)
		}
	}
	sort.Strings(sectors)
	return sectors
}

// Years returns the distinct years in ascending order.
func (p Panel) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, o := range p.Observations {
		if !seen[o.Year] {
			seen[o.Year] = true
			years = append(years, o.Year)
		}
	}
	sort.Ints(years)
	return years
}

// ResultTable is the durable output of a multi-year analysis: one row
// per one-step transition, indexed by the transition's starting year,
// one column per driver.
type ResultTable struct {
	Mode    Mode                       `json:"mode"`
	Drivers []string                   `json:"drivers"`
	Years   []int                      `json:"years"`
	Rows    map[int]map[string]float64 `json:"rows"`
}

// NewResultTable creates an empty table for the given mode and drivers.
func NewResultTable(mode Mode, drivers []string) *ResultTable {
	return &ResultTable{
		Mode:    mode,
		Drivers: append([]string(nil), drivers...),
		Rows:    make(map[int]map[string]float64),
	}
}

// SetRow records one transition's per-driver contributions and keeps
// the year index sorted.
func (t *ResultTable) SetRow(year int, contributions map[string]float64) {
	if _, exists := t.Rows[year]; !exists {
		t.Years = append(t.Years, year)
		sort.Ints(t.Years)
	}
	t.Rows[year] = contributions
}

// Row returns the contributions for one transition year.
func (t *ResultTable) Row(year int) (map[string]float64, bool) {
	row, ok := t.Rows[year]
	return row, ok
}

// Value returns a single contribution, or zero when absent.
func (t *ResultTable) Value(year int, driver string) float64 {
	if row, ok := t.Rows[year]; ok {
		return row[driver]
	}
	return 0
}

// Len returns the number of transition rows.
func (t *ResultTable) Len() int {
	return len(t.Rows)
}

// Numeric tolerances.
const (
	// DefaultClosureTolerance bounds the rounding error accepted when
	// checking that contributions reconstitute the total change.
	DefaultClosureTolerance = 1e-6

	// DefaultIdentityTolerance bounds the residual accepted between an
	// observation's aggregate and the product of its drivers.
	DefaultIdentityTolerance = 0.005
)
