package planning

import (
	"sort"
	"strconv"
	"time"

	"fleet_status/internal/dates"
	"fleet_status/internal/hours"
	"fleet_status/internal/models"
)

// estimateMonths is the length of the monthly estimate window.
const estimateMonths = 12

// Month is one column of the monthly estimate.
type Month struct {
	Year  int    `json:"year"`
	Month int    `json:"month"` // 1-12
	Label string `json:"label"`
}

// Estimate tracks one tail's check balance across the coming months.
type Estimate struct {
	Tail      string          `json:"tail"`
	Name      string          `json:"name"`
	Category  models.Category `json:"category"`
	CheckType string          `json:"check_type"`
	Remaining float64         `json:"remaining"`
	Display   string          `json:"display"`
	DailyRate float64         `json:"daily_rate"`
	DueMonth  int             `json:"due_month"` // Index into the month window, -1 when not due within it
}

// Months returns the estimate window starting with the month containing now.
func Months(now time.Time) []Month {
	out := make([]Month, estimateMonths)
	for i := range out {
		t := time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, now.Location())
		out[i] = Month{Year: t.Year(), Month: int(t.Month()), Label: dates.ThaiMonthYear(t)}
	}
	return out
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DueMonth walks the balance through the window, deducting rate hours per
// day, and returns the index of the month in which it reaches zero. The first
// month only counts the days left in it. It returns -1 when the balance lasts
// past the window.
func DueMonth(now time.Time, remaining, rate float64) int {
	if remaining <= 0 {
		return 0
	}
	balance := remaining
	for i, m := range Months(now) {
		days := daysIn(m.Year, m.Month)
		if i == 0 {
			days = days - now.Day() + 1
		}
		balance -= float64(days) * rate
		if balance <= 0 {
			return i
		}
	}
	return -1
}

// MonthlyEstimates builds the twelve-month check outlook for every record
// with a known check balance. Fixed-wing aircraft come first, then tails in
// natural order.
func MonthlyEstimates(now time.Time, aircraft []models.AircraftRecord, rates RateTable) []Estimate {
	out := make([]Estimate, 0, len(aircraft))
	for i := range aircraft {
		rec := &aircraft[i]
		remaining, check := CheckRemaining(rec)
		if remaining == nil {
			continue
		}
		rate := rates.Monthly(rec.TailNumber)
		out = append(out, Estimate{
			Tail:      rec.TailNumber,
			Name:      rec.DisplayName,
			Category:  rec.Category,
			CheckType: check,
			Remaining: *remaining,
			Display:   hours.Format(*remaining, rec.Family),
			DailyRate: rate,
			DueMonth:  DueMonth(now, *remaining, rate),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category == models.FixedWing
		}
		return naturalLess(out[i].Tail, out[j].Tail)
	})
	return out
}

// naturalLess orders numeric tails by value and everything else as text.
func naturalLess(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
