package hours

import (
	"math"
	"strconv"
	"strings"
)

// Threshold is an overhaul interval expressed in flight hours or in calendar
// years. Hours always carries the comparable hours balance.
type Threshold struct {
	Hours float64 `json:"hours"`
	Years int     `json:"years,omitempty"`
}

// IsYears reports whether the interval is calendar based.
func (t Threshold) IsYears() bool {
	return t.Years > 0
}

// ParseThreshold reads an overhaul interval such as "3600FH", "12Y" or "3,600".
func ParseThreshold(raw string, f Family) (Threshold, bool) {
	s := clean(raw)
	if m := yearsPattern.FindStringSubmatch(s); m != nil {
		y, err := strconv.Atoi(m[1])
		if err != nil || y <= 0 {
			return Threshold{}, false
		}
		return Threshold{Hours: float64(y * HoursPerYear), Years: y}, true
	}
	v, ok := Parse(s, f)
	if !ok {
		return Threshold{}, false
	}
	return Threshold{Hours: v}, true
}

// FormatThreshold renders an interval. Propeller intervals that are a whole
// number of years in [1,12] print as "N Y".
func FormatThreshold(t Threshold, f Family, propeller bool) string {
	if t.IsYears() {
		return strconv.Itoa(t.Years) + " Y"
	}
	if propeller && t.Hours >= 1 && t.Hours <= 12 && t.Hours == math.Trunc(t.Hours) {
		return strconv.Itoa(int(t.Hours)) + " Y"
	}
	return Format(t.Hours, f)
}

// IsClock reports whether raw is an H:MM flight-hour string.
func IsClock(raw string) bool {
	return clockPattern.MatchString(strings.TrimSpace(raw))
}
