package lmdi

import "math"

// Decompose attributes the change in an aggregate between two periods
// to the supplied driving factors.
//
// vt and v0 hold the final and initial aggregate values per row (for
// example one row per sector contributing to the same aggregate). xt
// and x0 hold, for each driver, the final and initial factor values
// aligned to the same rows.
//
// The returned slice is [total, contribution_1, ..., contribution_k],
// drivers in input order. In additive mode the total is sum(vt)-sum(v0)
// and the contributions sum to it; in multiplicative mode the total is
// sum(vt)/sum(v0) and the contributions multiply to it.
func Decompose(mode Mode, vt, v0 []float64, xt, x0 [][]float64) ([]float64, error) {
	if !mode.Valid() {
		return nil, &InvalidModeError{Mode: mode.String()}
	}
	if err := validateVectors(vt, v0, xt, x0); err != nil {
		return nil, err
	}

	var sum0, sumT float64
	for i := range v0 {
		sum0 += v0[i]
		sumT += vt[i]
	}

	switch mode {
	case ModeAdditive:
		return decomposeAdditive(sumT, sum0, vt, v0, xt, x0), nil
	default:
		return decomposeMultiplicative(sumT, sum0, vt, v0, xt, x0)
	}
}

func decomposeAdditive(sumT, sum0 float64, vt, v0 []float64, xt, x0 [][]float64) []float64 {
	out := make([]float64, 0, len(x0)+1)
	out = append(out, sumT-sum0)

	for d := range x0 {
		var contribution float64
		for i := range v0 {
			contribution += LogMean(vt[i], v0[i]) * LogRatio(xt[d][i], x0[d][i])
		}
		out = append(out, contribution)
	}
	return out
}

func decomposeMultiplicative(sumT, sum0 float64, vt, v0 []float64, xt, x0 [][]float64) ([]float64, error) {
	denom := LogMean(sumT, sum0)
	if denom == 0 {
		return nil, ErrDegenerateAggregate
	}

	out := make([]float64, 0, len(x0)+1)
	out = append(out, sumT/sum0)

	for d := range x0 {
		var exponent float64
		for i := range v0 {
			exponent += LogMean(vt[i], v0[i]) / denom * LogRatio(xt[d][i], x0[d][i])
		}
		out = append(out, math.Exp(exponent))
	}
	return out, nil
}
