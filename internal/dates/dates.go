// Package dates normalizes the date encodings found in fleet sheets into ISO
// calendar dates.
package dates

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISO is the canonical calendar date layout.
const ISO = "2006-01-02"

// BuddhistOffset is the difference between Buddhist-era and Gregorian years.
const BuddhistOffset = 543

var (
	ctorPattern  = regexp.MustCompile(`^Date\((\d+),\s*(\d+),\s*(\d+)`)
	namedPattern = regexp.MustCompile(`^(\d{1,2})[\s-]+([A-Za-z]{3})[A-Za-z]*\.?[\s-]+(\d{2,4})$`)
	isoPattern   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})`)
	fourDigits   = regexp.MustCompile(`\d{4}`)
	twoDigits    = regexp.MustCompile(`\d{2}`)
	leadDigits   = regexp.MustCompile(`^\d+`)
)

var monthAbbr = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Normalize converts a sheet date into "YYYY-MM-DD". Input that cannot be
// read is returned trimmed and otherwise unchanged.
func Normalize(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(ISO)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(ISO)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return normalizeString(v)
	default:
		return normalizeString(fmt.Sprint(v))
	}
}

func normalizeString(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	if m := ctorPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		if out, ok := build(y, mo+1, d); ok {
			return out
		}
		return s
	}

	if strings.Contains(s, "/") {
		if parts, ok := numericParts(s, "/"); ok {
			if out, ok := build(expandShortYear(parts[2]), parts[1], parts[0]); ok {
				return out
			}
		}
		return s
	}

	if strings.Contains(s, "-") {
		fields := strings.Split(s, "-")
		if parts, ok := numericParts(s, "-"); ok {
			if len(fields[0]) == 4 {
				if out, ok := build(parts[0], parts[1], parts[2]); ok {
					return out
				}
			} else if out, ok := build(expandShortYear(parts[2]), parts[1], parts[0]); ok {
				return out
			}
		}
	}

	if m := namedPattern.FindStringSubmatch(s); m != nil {
		d, _ := strconv.Atoi(m[1])
		mo := monthAbbr[strings.ToLower(m[2])]
		y, _ := strconv.Atoi(m[3])
		if out, ok := build(expandShortYear(y), mo, d); ok {
			return out
		}
	}

	return s
}

func numericParts(s, sep string) ([3]int, bool) {
	var out [3]int
	fields := strings.Split(s, sep)
	if len(fields) != 3 {
		return out, false
	}
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return out, false
		}
		out[i] = n
	}
	return out, true
}

func expandShortYear(y int) int {
	if y < 100 {
		return 2000 + y
	}
	return y
}

// build rejects calendar days that do not exist, such as 31 February.
func build(y, m, d int) (string, bool) {
	if m < 1 || m > 12 || d < 1 || y < 1 {
		return "", false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return "", false
	}
	return t.Format(ISO), true
}

// NormalizeYear expands two-digit years and converts Buddhist-era years to
// Gregorian.
func NormalizeYear(y int) int {
	if y < 100 {
		if y > 50 {
			y += 1900
		} else {
			y += 2000
		}
	}
	if y > 2400 {
		y -= BuddhistOffset
	}
	return y
}

// IsDateLike reports whether raw looks like a calendar date rather than an
// hours value.
func IsDateLike(raw string) bool {
	s := strings.TrimSpace(raw)
	if len(strings.Split(s, "/")) == 3 || isoPattern.MatchString(s) {
		return true
	}
	if strings.Contains(s, "-") && !strings.HasPrefix(s, "-") {
		return Normalize(s) != s
	}
	return false
}

// DueYear extracts a Gregorian due year from a due-date cell.
func DueYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0, false
	}
	if parts := strings.Split(s, "/"); len(parts) == 3 {
		if lead := leadDigits.FindString(strings.TrimSpace(parts[2])); lead != "" {
			y, _ := strconv.Atoi(lead)
			return NormalizeYear(y), true
		}
	}
	if m := isoPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return NormalizeYear(y), true
	}
	if m := fourDigits.FindString(s); m != "" {
		y, _ := strconv.Atoi(m)
		return NormalizeYear(y), true
	}
	if m := twoDigits.FindString(s); m != "" {
		y, _ := strconv.Atoi(m)
		return NormalizeYear(y), true
	}
	return 0, false
}

// ParseDate reads a ledger date cell. Missing or expired markers yield "".
func ParseDate(raw string) string {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	if s == "" || s == "-" || lower == "nil" || strings.Contains(lower, "expired") || strings.Contains(s, "ไม่มีข้อมูล") {
		return ""
	}
	return Normalize(s)
}

// Parse reads an ISO date.
func Parse(iso string) (time.Time, error) {
	return time.Parse(ISO, strings.TrimSpace(iso))
}

// DaysBetween returns the absolute number of whole days between two ISO dates.
func DaysBetween(a, b string) (int, error) {
	ta, err := Parse(a)
	if err != nil {
		return 0, fmt.Errorf("failed to parse date %q: %w", a, err)
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, fmt.Errorf("failed to parse date %q: %w", b, err)
	}
	return int(math.Ceil(math.Abs(ta.Sub(tb).Hours()) / 24)), nil
}
