package planning

import (
	"log/slog"
	"math"

	"fleet_status/internal/dates"
	"fleet_status/internal/models"
)

// Reading is a flight-hours counter observed on a date.
type Reading struct {
	Date  string // ISO
	Hours float64
}

// DailyRate returns hours flown per day between two readings. Readings on
// the same day, out of order, or with a counter that went backwards yield no
// rate.
func DailyRate(later, earlier Reading) (float64, bool) {
	days, err := span(later.Date, earlier.Date)
	if err != nil {
		return 0, false
	}
	return rateOver(later.Hours, earlier.Hours, days)
}

// span is the signed number of days from earlier to later.
func span(later, earlier string) (int, error) {
	tl, err := dates.Parse(later)
	if err != nil {
		return 0, err
	}
	te, err := dates.Parse(earlier)
	if err != nil {
		return 0, err
	}
	return int(math.Round(tl.Sub(te).Hours() / 24)), nil
}

func rateOver(later, earlier float64, days int) (float64, bool) {
	diff := later - earlier
	if diff < 0 || days < 1 {
		return 0, false
	}
	return diff / float64(days), true
}

// Rates computes per-tail utilization between two snapshots. days is used
// only when the snapshots do not carry usable dates; pairs less than a day
// apart or out of order are skipped.
func Rates(today, past []models.AircraftRecord, days int) map[string]float64 {
	earlier := make(map[string]models.AircraftRecord, len(past))
	for _, rec := range past {
		if rec.FlightHours != nil {
			earlier[rec.TailNumber] = rec
		}
	}

	rates := make(map[string]float64, len(today))
	for _, rec := range today {
		prev, ok := earlier[rec.TailNumber]
		if !ok || rec.FlightHours == nil {
			continue
		}
		elapsed := days
		if d, err := span(rec.AsOf, prev.AsOf); err == nil {
			elapsed = d
		}
		rate, ok := rateOver(*rec.FlightHours, *prev.FlightHours, elapsed)
		if !ok {
			slog.Debug("Discarding utilization", "tail", rec.TailNumber, "from", prev.AsOf, "to", rec.AsOf, "days", elapsed)
			continue
		}
		rates[rec.TailNumber] = rate
	}
	return rates
}

// RateTable holds the long and short lookback utilization per tail.
type RateTable struct {
	Year  map[string]float64 `json:"year"`  // Long lookback, used for the year projections
	Month map[string]float64 `json:"month"` // Short lookback, used for the monthly estimates
}

// Yearly returns the long lookback rate for tail, 0 when unknown.
func (t RateTable) Yearly(tail string) float64 {
	if tail == "" {
		return 0
	}
	return t.Year[tail]
}

// Monthly returns the short lookback rate, falling back to the long one.
func (t RateTable) Monthly(tail string) float64 {
	if r, ok := t.Month[tail]; ok {
		return r
	}
	return t.Yearly(tail)
}
