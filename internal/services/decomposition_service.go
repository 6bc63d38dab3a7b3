package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"lmdicli/internal/config"
	apierrors "lmdicli/internal/errors"
	"lmdicli/internal/infrastructure"
	"lmdicli/internal/lmdi"
	api "lmdicli/pkg/contracts/api/v1"
)

// DecompositionService turns API decomposition requests into core
// analysis runs and maps core failures onto API errors.
type DecompositionService struct {
	cfg      config.AnalysisConfig
	validate *validator.Validate
	metrics  *infrastructure.Metrics
	logger   *slog.Logger
}

// NewDecompositionService creates the service with injected dependencies.
func NewDecompositionService(cfg config.AnalysisConfig, metrics *infrastructure.Metrics, logger *slog.Logger) *DecompositionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecompositionService{
		cfg:      cfg,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger,
	}
}

// Decompose validates the request, runs the analysis and assembles the
// response. Failures are returned as API errors carrying the proper
// HTTP status.
func (s *DecompositionService) Decompose(ctx context.Context, req *api.DecompositionRequest) (*api.DecompositionResponse, *apierrors.APIError) {
	began := time.Now()

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	mode, err := lmdi.ParseMode(req.Mode)
	if err != nil {
		return nil, apierrors.NewWithDetails(
			apierrors.ErrInvalidMode.StatusCode,
			apierrors.ErrInvalidMode.ErrorCode,
			apierrors.ErrInvalidMode.Message,
			err.Error(),
		)
	}

	panel := buildPanel(req.Observations)

	if req.VerifyIdentity {
		if err := lmdi.VerifyIdentity(panel, req.Drivers, s.cfg.IdentityTolerance); err != nil {
			return nil, classifyAnalysisError(err)
		}
	}

	analyzer := lmdi.NewAnalyzer(mode, req.Drivers, s.logger)
	analyzer.SetMaxConcurrency(s.cfg.MaxConcurrency)
	skip := req.SkipFailedYears || s.cfg.SkipFailedYears
	analyzer.SetSkipFailedYears(skip)

	resp := &api.DecompositionResponse{Success: true}

	if req.BySector {
		tables, err := analyzer.RunBySector(ctx, panel, req.StartYear, req.StopYear)
		if err != nil {
			s.metrics.RecordDecomposition(req.Mode, err, time.Since(began))
			return nil, classifyAnalysisError(err)
		}
		resp.SectorTotals = lmdi.SectorTotals(tables)
		resp.Sectors = make(map[string]*api.ResultTablePayload, len(tables))
		for sector, table := range tables {
			if req.ShiftYears != 0 {
				table = table.ShiftYears(req.ShiftYears)
			}
			resp.Sectors[sector] = tablePayload(table)
		}
	} else {
		table, err := analyzer.Run(ctx, panel, req.StartYear, req.StopYear)
		if err != nil {
			s.metrics.RecordDecomposition(req.Mode, err, time.Since(began))
			return nil, classifyAnalysisError(err)
		}
		if skip {
			resp.SkippedYears = missingYears(table, req.StartYear, req.StopYear)
		}
		if req.ShiftYears != 0 {
			table = table.ShiftYears(req.ShiftYears)
		}
		resp.Table = tablePayload(table)
	}

	s.metrics.RecordDecomposition(req.Mode, nil, time.Since(began))
	s.logger.InfoContext(ctx, "decomposition request completed",
		"mode", req.Mode,
		"by_sector", req.BySector,
		"duration", time.Since(began).String(),
	)

	return resp, nil
}

// buildPanel maps request observations onto the core panel type.
func buildPanel(observations []api.ObservationPayload) lmdi.Panel {
	obs := make([]lmdi.Observation, len(observations))
	for i, o := range observations {
		drivers := make(map[string]float64, len(o.Drivers))
		for name, value := range o.Drivers {
			drivers[name] = value
		}
		obs[i] = lmdi.Observation{
			Year:      o.Year,
			Sector:    o.Sector,
			Aggregate: o.Aggregate,
			Drivers:   drivers,
		}
	}
	return lmdi.Panel{Observations: obs}
}

// tablePayload converts a result table to its API shape. Row totals are
// recovered from the closure property: contributions sum to the total in
// additive mode and multiply to it in multiplicative mode.
func tablePayload(table *lmdi.ResultTable) *api.ResultTablePayload {
	payload := &api.ResultTablePayload{
		Mode:    table.Mode.String(),
		Drivers: append([]string(nil), table.Drivers...),
		Rows:    make([]api.ResultRow, 0, table.Len()),
	}
	for _, year := range table.Years {
		row := table.Rows[year]
		contributions := make(map[string]float64, len(row))
		total := 1.0
		if table.Mode == lmdi.ModeAdditive {
			total = 0.0
		}
		for _, driver := range table.Drivers {
			contributions[driver] = row[driver]
			if table.Mode == lmdi.ModeAdditive {
				total += row[driver]
			} else {
				total *= row[driver]
			}
		}
		payload.Rows = append(payload.Rows, api.ResultRow{
			Year:          year,
			Total:         total,
			Contributions: contributions,
		})
	}
	return payload
}

// missingYears lists transition years in [start, stop) absent from the
// table, which under the skip policy are exactly the failed ones.
func missingYears(table *lmdi.ResultTable, start, stop int) []int {
	var missing []int
	for year := start; year < stop; year++ {
		if _, ok := table.Row(year); !ok {
			missing = append(missing, year)
		}
	}
	return missing
}

// validationError flattens validator errors into field-level details.
func validationError(err error) *apierrors.APIError {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		details := make([]apierrors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, apierrors.ValidationError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed %q validation", fe.Tag()),
			})
		}
		return apierrors.NewValidationErrors(details)
	}
	return apierrors.InvalidRequestWithError(err)
}

// classifyAnalysisError maps core analysis errors onto API errors.
func classifyAnalysisError(err error) *apierrors.APIError {
	var invalidMode *lmdi.InvalidModeError
	if stderrors.As(err, &invalidMode) {
		return apierrors.NewWithDetails(
			apierrors.ErrInvalidMode.StatusCode,
			apierrors.ErrInvalidMode.ErrorCode,
			apierrors.ErrInvalidMode.Message,
			err.Error(),
		)
	}

	var missingYear *lmdi.MissingYearError
	if stderrors.As(err, &missingYear) {
		return apierrors.UnprocessableError("MISSING_YEAR", err)
	}

	var misaligned *lmdi.MisalignedRowsError
	if stderrors.As(err, &misaligned) {
		return apierrors.UnprocessableError("MISALIGNED_PANEL", err)
	}

	var unknownDriver *lmdi.UnknownDriverError
	if stderrors.As(err, &unknownDriver) {
		return apierrors.UnprocessableError("UNKNOWN_DRIVER", err)
	}

	var identity *lmdi.IdentityError
	if stderrors.As(err, &identity) {
		return apierrors.UnprocessableError("IDENTITY_VIOLATION", err)
	}

	if stderrors.Is(err, lmdi.ErrDegenerateAggregate) {
		return apierrors.UnprocessableError("DEGENERATE_AGGREGATE", err)
	}

	return apierrors.AnalysisError(err)
}
