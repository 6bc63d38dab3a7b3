package lmdi

import "math"

// LogMean returns the logarithmic-mean weight of two values,
// (final-initial)/(ln final - ln initial). Two equal values return 0,
// which zeroes that row's contribution weight downstream; this is the
// calling convention of the decomposer, not the mathematical limit of
// the log-mean. Both inputs must be strictly positive in the non-equal
// branch.
func LogMean(final, initial float64) float64 {
	if final == initial {
		return 0
	}
	return (final - initial) / (math.Log(final) - math.Log(initial))
}

// LogRatio returns ln(final/initial). A zero in either operand returns
// 1, a neutral sentinel that keeps near-zero factors from injecting
// unbounded magnitude into a contribution.
func LogRatio(final, initial float64) float64 {
	if initial == 0 || final == 0 {
		return 1
	}
	return math.Log(final / initial)
}
