// Package lmdi implements Log-Mean Divisia Index (LMDI-I) decomposition
// analysis for time-indexed panels.
//
// Given a panel of observations, each carrying a year, a sector key, an
// aggregate quantity (for example total emissions) and a set of driving
// factors whose product equals the aggregate, the package attributes the
// change in the aggregate between consecutive years to each factor's
// contribution.
//
// # Core Components
//
//   - logmean.go: the elementary log-mean and log-ratio functions
//   - decompose.go: the single-pair additive/multiplicative decomposer
//   - step.go: per-timestep driver extraction and sector alignment
//   - analysis.go: the Analyzer orchestrating a multi-year scan
//   - identity.go: the aggregate-equals-product-of-drivers check
//   - reshape.go: year relabeling and cross-year contribution totals
//   - validate.go: error taxonomy and input validation
//
// # Usage Example
//
//	panel := lmdi.Panel{Observations: obs}
//	if err := lmdi.VerifyIdentity(panel, drivers, lmdi.DefaultIdentityTolerance); err != nil {
//	    log.Fatal(err)
//	}
//
//	analyzer := lmdi.NewAnalyzer(lmdi.ModeAdditive, drivers, slog.Default())
//	table, err := analyzer.Run(ctx, panel, 1990, 2019)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	totals := table.SumByDriver()
//
// # Decomposition Identity
//
// In additive mode the per-driver contributions are expressed in the
// aggregate's own unit and sum to the observed total change:
//
//	ΔV = Σ_d Σ_i L(Vt[i], V0[i]) · ln(Xt[d][i] / X0[d][i])
//
// where L is the logarithmic mean. In multiplicative mode contributions
// are ratios whose product equals the total ratio sum(Vt)/sum(V0). Both
// closures hold up to floating-point rounding for any panel that
// satisfies the product identity.
//
// # Degenerate Cases
//
// The log-mean of two equal values is defined here as zero, which zeroes
// that row's contribution weight. The log-ratio of a pair with a zero
// operand is defined as one, a neutral sentinel that keeps near-zero
// factors from injecting unbounded magnitude. A multiplicative run whose
// aggregate total is unchanged between the two periods has no defined
// weight denominator and is reported as ErrDegenerateAggregate.
//
// # Alignment
//
// Sectors are aligned across the two periods of a transition by their
// explicit sector key, never by row order. A transition whose two
// periods cover different sector sets fails with a MisalignedRowsError.
//
// Execution is purely computational. Per-year transitions are mutually
// independent and the Analyzer can compute them concurrently; results
// are merged by year key so the output does not depend on scheduling.
package lmdi
