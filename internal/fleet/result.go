package fleet

import (
	"fleet_status/internal/components"
	"fleet_status/internal/models"
	"fleet_status/internal/planning"
)

// Result is everything one load of one date produces. Every field is plain
// data so results can be copied and served concurrently.
type Result struct {
	Date        string                         `json:"date"`
	Requested   string                         `json:"requested,omitempty"`
	Exact       bool                           `json:"exact"` // False when Date fell back to the latest snapshot
	Previous    string                         `json:"previous,omitempty"`
	Aircraft    []models.AircraftRecord        `json:"aircraft"`
	Summary     planning.Summary               `json:"summary"`
	Alerts      []planning.Alert               `json:"alerts"`
	Components  []*models.ComponentGroup       `json:"components"`
	Ledger      *components.Ledger             `json:"ledger"`
	Rates       planning.RateTable             `json:"rates"`
	Horizon     []int                          `json:"horizon"`
	Projections []models.MaintenanceProjection `json:"projections"`
	Months      []planning.Month               `json:"months"`
	Estimates   []planning.Estimate            `json:"estimates"`
}

// Empty is the result served when nothing could be loaded.
func Empty(date string) *Result {
	return &Result{
		Requested:   date,
		Aircraft:    []models.AircraftRecord{},
		Summary:     planning.Summary{Date: date, Diffs: []planning.HoursDiff{}},
		Alerts:      []planning.Alert{},
		Components:  []*models.ComponentGroup{},
		Ledger:      &components.Ledger{Engines: []*components.Entry{}, Propellers: []*components.Entry{}},
		Rates:       planning.RateTable{Year: map[string]float64{}, Month: map[string]float64{}},
		Horizon:     []int{},
		Projections: []models.MaintenanceProjection{},
		Months:      []planning.Month{},
		Estimates:   []planning.Estimate{},
	}
}

// ProjectionsDueIn filters the projections to one Gregorian year.
func (r *Result) ProjectionsDueIn(year int) []models.MaintenanceProjection {
	out := []models.MaintenanceProjection{}
	for _, p := range r.Projections {
		if planning.DueIn(p, year) {
			out = append(out, p)
		}
	}
	return out
}
