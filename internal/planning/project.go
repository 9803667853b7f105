// Package planning projects when airframe checks and component overhauls fall
// due, from remaining hours and observed utilization.
package planning

import (
	"time"

	"fleet_status/internal/dates"
)

const (
	// dueSoonHours is the balance below which an item with no known
	// utilization is still treated as due this year.
	dueSoonHours = 50
	// maxProjectionDays caps projections so date arithmetic stays in range.
	maxProjectionDays = 1e6
)

// ProjectDueYear estimates the year in which remaining hours run out at rate
// hours per day. It returns nil when the rate is unknown and the balance is
// not nearly exhausted.
func ProjectDueYear(remaining, rate float64, now time.Time) *int {
	year := now.Year()
	if remaining <= 0 {
		return &year
	}
	if rate <= 0 {
		if remaining < dueSoonHours {
			return &year
		}
		return nil
	}
	days := remaining / rate
	if days > maxProjectionDays {
		days = maxProjectionDays
	}
	due := now.AddDate(0, 0, int(days)).Year()
	return &due
}

// ClampYear raises a projected year to current. Overdue items are shown as
// due this year.
func ClampYear(y *int, current int) *int {
	if y == nil {
		return nil
	}
	if *y < current {
		c := current
		return &c
	}
	return y
}

// Horizon lists the calendar years shown by the planning table.
func Horizon(now time.Time, years int) []int {
	if years <= 0 {
		return nil
	}
	out := make([]int, years)
	for i := range out {
		out[i] = now.Year() + i
	}
	return out
}

// BuddhistYear converts a Gregorian year for display.
func BuddhistYear(y int) int {
	return y + dates.BuddhistOffset
}
