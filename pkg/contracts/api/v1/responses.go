package api

// ResultRow is one year transition of a decomposition table. Total is
// the overall effect; Contributions maps driver names to their share.
type ResultRow struct {
	Year          int                `json:"year"`
	Total         float64            `json:"total"`
	Contributions map[string]float64 `json:"contributions"`
}

// ResultTablePayload is a complete decomposition table for one panel
// or one sector.
type ResultTablePayload struct {
	Mode    string      `json:"mode"`
	Drivers []string    `json:"drivers"`
	Rows    []ResultRow `json:"rows"`
}

// DecompositionResponse represents the result of a decomposition request.
// Exactly one of Table or Sectors is populated depending on by_sector.
type DecompositionResponse struct {
	Success bool                `json:"success"`
	Table   *ResultTablePayload `json:"table,omitempty"`

	Sectors      map[string]*ResultTablePayload `json:"sectors,omitempty"`
	SectorTotals map[string]map[string]float64  `json:"sector_totals,omitempty"`

	// SkippedYears lists year transitions dropped under skip_failed_years.
	SkippedYears []int `json:"skipped_years,omitempty"`
}

// HealthResponse represents the service health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
