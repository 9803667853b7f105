package models

import "fleet_status/internal/hours"

// Category separates the two sheet schemas.
type Category string

const (
	FixedWing  Category = "fixed_wing"
	RotaryWing Category = "rotary_wing"
)

// Status is the operational state reported in the daily status sheet.
type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

// Remaining-hours buckets used by the rotary-wing check regime.
const (
	Bucket100 = 100
	Bucket150 = 150
	Bucket300 = 300
)

// Buckets lists the rotary-wing check regimes in ascending order.
var Buckets = []int{Bucket100, Bucket150, Bucket300}

// AircraftRecord is one snapshot of one tail number on one date.
// All hour fields are canonical decimal hours; nil means the sheet had no value.
type AircraftRecord struct {
	TailNumber          string           `json:"tail_number"`                     // Registration used as identity key across sources
	DisplayName         string           `json:"display_name"`                    // Model designation
	Category            Category         `json:"category"`                        // Fixed-wing or rotary-wing schema
	BaseProvince        string           `json:"base_province"`                   // Gazetteer entry
	BaseLabel           string           `json:"base_label"`                      // Free-text base when no gazetteer entry matched
	Mission             string           `json:"mission"`                         // Mission text as written
	Latitude            float64          `json:"latitude"`                        // From the row or the gazetteer
	Longitude           float64          `json:"longitude"`                       // From the row or the gazetteer
	Status              Status           `json:"status"`                          // Active or Inactive
	StatusRecognized    bool             `json:"status_recognized"`               // False when the status text was not in the vocabulary
	Family              hours.Family     `json:"family"`                          // Decimal encoding used by this tail's sheets
	FlightHours         *float64         `json:"flight_hours,omitempty"`          // Airframe total
	CheckDueHours       *float64         `json:"check_due_hours,omitempty"`       // A-check target, fixed-wing only
	RemainingCheckHours *float64         `json:"remaining_check_hours,omitempty"` // A-check balance, fixed-wing only
	EngineHours         []float64        `json:"engine_hours,omitempty"`          // One or two engines
	RemainingBuckets    map[int]*float64 `json:"remaining_buckets,omitempty"`     // 100/150/300 balances, rotary-wing only
	Mechanic            string           `json:"mechanic"`                        // Mechanic of record
	Remark              string           `json:"remark"`                          // Free-text remark
	AsOf                string           `json:"as_of"`                           // ISO date of the snapshot
}

// IsHelicopter reports whether the record came from the rotary-wing schema.
func (a *AircraftRecord) IsHelicopter() bool {
	return a.Category == RotaryWing
}

// HoursOrZero dereferences an optional hours value.
func HoursOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// HoursPtr returns a pointer to v.
func HoursPtr(v float64) *float64 {
	return &v
}
