// Package api contains API contract definitions for the LMDI decomposition service.
// Version v1 represents the current stable API version.
package api

// ObservationPayload is one sector-year row of the input panel.
// Drivers maps driver names to their observed values; the product of
// driver values is expected to reproduce the aggregate.
type ObservationPayload struct {
	Year      int                `json:"year" validate:"required,min=1,max=9999"`
	Sector    string             `json:"sector" validate:"required"`
	Aggregate float64            `json:"aggregate" validate:"required,gt=0"`
	Drivers   map[string]float64 `json:"drivers" validate:"required,min=1"`
}

// DecompositionRequest represents a request to decompose an aggregate's
// change over consecutive years into per-driver contributions.
type DecompositionRequest struct {
	Mode         string               `json:"mode" validate:"required,oneof=add mul"`
	Drivers      []string             `json:"drivers" validate:"required,min=1,dive,required"`
	StartYear    int                  `json:"start_year" validate:"required,min=1,max=9999"`
	StopYear     int                  `json:"stop_year" validate:"required,min=1,max=9999,gtfield=StartYear"`
	Observations []ObservationPayload `json:"observations" validate:"required,min=2,dive"`

	// BySector requests separate single-sector tables instead of one
	// panel-wide table.
	BySector bool `json:"by_sector,omitempty"`

	// ShiftYears relabels result years by the given offset.
	ShiftYears int `json:"shift_years,omitempty"`

	// SkipFailedYears continues past year transitions that fail instead
	// of aborting the whole scan.
	SkipFailedYears bool `json:"skip_failed_years,omitempty"`

	// VerifyIdentity checks that driver products reproduce aggregates
	// before decomposing.
	VerifyIdentity bool `json:"verify_identity,omitempty"`
}
