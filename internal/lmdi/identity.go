package lmdi

import "math"

// VerifyIdentity checks that every observation's aggregate equals the
// product of its drivers within tolerance. The decomposition's closure
// properties depend on this identity holding; run it before analysis
// when the panel comes from an external source.
func VerifyIdentity(p Panel, drivers []string, tolerance float64) error {
	if err := validateDrivers(drivers); err != nil {
		return err
	}
	if tolerance <= 0 {
		tolerance = DefaultIdentityTolerance
	}

	for _, o := range p.Observations {
		product := 1.0
		for _, name := range drivers {
			v, ok := o.Driver(name)
			if !ok {
				return &UnknownDriverError{Driver: name, Sector: o.Sector, Year: o.Year}
			}
			product *= v
		}

		residual := o.Aggregate - product
		if math.Abs(residual) > tolerance {
			return &IdentityError{Sector: o.Sector, Year: o.Year, Residual: residual}
		}
	}
	return nil
}
