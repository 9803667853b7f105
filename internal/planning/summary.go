package planning

import "fleet_status/internal/models"

// HoursDiff compares one tail's flight hours with the previous snapshot.
type HoursDiff struct {
	Tail     string   `json:"tail"`
	Name     string   `json:"name"`
	Today    *float64 `json:"today,omitempty"`
	Previous *float64 `json:"previous,omitempty"`
	Delta    *float64 `json:"delta,omitempty"`
}

// Summary is the fleet roll-up for one date.
type Summary struct {
	Date          string      `json:"date"`
	Total         int         `json:"total"`
	Active        int         `json:"active"`
	Inactive      int         `json:"inactive"`
	FixedWing     int         `json:"fixed_wing"`
	RotaryWing    int         `json:"rotary_wing"`
	TotalHours    float64     `json:"total_hours"`
	PreviousHours *float64    `json:"previous_hours,omitempty"`
	HoursDelta    *float64    `json:"hours_delta,omitempty"`
	Diffs         []HoursDiff `json:"diffs"`
}

// Summarize rolls up today's records and compares them with the previous
// snapshot, which may be empty.
func Summarize(date string, today, previous []models.AircraftRecord) Summary {
	s := Summary{Date: date, Total: len(today), Diffs: make([]HoursDiff, 0, len(today))}

	prev := make(map[string]*float64, len(previous))
	var prevTotal float64
	for _, rec := range previous {
		prev[rec.TailNumber] = rec.FlightHours
		prevTotal += models.HoursOrZero(rec.FlightHours)
	}

	for _, rec := range today {
		if rec.Status == models.Inactive {
			s.Inactive++
		} else {
			s.Active++
		}
		if rec.IsHelicopter() {
			s.RotaryWing++
		} else {
			s.FixedWing++
		}
		s.TotalHours += models.HoursOrZero(rec.FlightHours)

		d := HoursDiff{Tail: rec.TailNumber, Name: rec.DisplayName, Today: rec.FlightHours, Previous: prev[rec.TailNumber]}
		if d.Today != nil && d.Previous != nil {
			delta := *d.Today - *d.Previous
			d.Delta = &delta
		}
		s.Diffs = append(s.Diffs, d)
	}

	if len(previous) > 0 {
		delta := s.TotalHours - prevTotal
		s.PreviousHours = &prevTotal
		s.HoursDelta = &delta
	}
	return s
}
