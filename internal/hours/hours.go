// Package hours converts between the time encodings found in fleet sheets and
// canonical decimal hours.
package hours

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Family selects how a bare decimal value is read.
type Family int

const (
	// Standard treats the fraction as a fraction of an hour (751.20 = 751.2h).
	Standard Family = iota
	// DecimalMinutes treats the fraction as minutes (4628.24 = 4628h 24m).
	DecimalMinutes
)

func (f Family) String() string {
	if f == DecimalMinutes {
		return "decimal_minutes"
	}
	return "standard"
}

// MarshalText encodes the family by name.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (f *Family) UnmarshalText(b []byte) error {
	switch string(b) {
	case "decimal_minutes":
		*f = DecimalMinutes
	case "standard", "":
		*f = Standard
	default:
		return fmt.Errorf("unknown hours family %q", string(b))
	}
	return nil
}

// HoursPerYear converts a calendar-years threshold into an hours balance.
const HoursPerYear = 365 * 24

// decimalMinuteMarkers are upper-cased substrings of airframe, engine or
// propeller model names whose sheets write minutes after the decimal point.
var decimalMinuteMarkers = []string{
	"SUPER KING AIR 350",
	"KING AIR",
	"SKA",
	"PT6A-60A",
	"HARTZELL HC-E4N-5",
}

// FamilyFor resolves the encoding family from any number of model names.
func FamilyFor(names ...string) Family {
	for _, name := range names {
		upper := strings.ToUpper(name)
		for _, marker := range decimalMinuteMarkers {
			if strings.Contains(upper, marker) {
				return DecimalMinutes
			}
		}
	}
	return Standard
}

var (
	clockPattern   = regexp.MustCompile(`^(-?)(\d+):(\d{1,2})$`)
	decimalPattern = regexp.MustCompile(`^(-?)(\d+)(?:\.(\d+))?$`)
	flightPattern  = regexp.MustCompile(`(?i)^(-?\d+(?:\.\d+)?)\s*FH$`)
	yearsPattern   = regexp.MustCompile(`(?i)^(\d+)\s*Y$`)
	embedded       = regexp.MustCompile(`(?i)-?\d+:\d{1,2}|-?\d+(?:\.\d+)?\s*(?:FH|Y\b)?`)
)

var nullTokens = map[string]bool{
	"":        true,
	"-":       true,
	"nil":     true,
	"null":    true,
	"expired": true,
}

func clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Trim(s, `'"`)
	return strings.TrimSpace(s)
}

// Parse converts raw text into canonical hours. ok is false for empty,
// placeholder or unparseable input.
func Parse(raw string, f Family) (float64, bool) {
	s := clean(raw)
	if nullTokens[strings.ToLower(s)] {
		return 0, false
	}
	if v, ok := parseToken(s, f); ok {
		return v, true
	}
	// Values wrapped in Thai text, e.g. "คงเหลือ 120:30 ชม."
	if tok := embedded.FindString(s); tok != "" {
		return parseToken(strings.TrimSpace(tok), f)
	}
	return 0, false
}

func parseToken(s string, f Family) (float64, bool) {
	if m := clockPattern.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[2])
		mm, _ := strconv.Atoi(m[3])
		return signed(m[1], float64(h)+float64(mm)/60), true
	}
	if m := flightPattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		return v, err == nil
	}
	if m := yearsPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return float64(y * HoursPerYear), true
	}
	if m := decimalPattern.FindStringSubmatch(s); m != nil {
		return parseDecimal(m[1], m[2], m[3], f), true
	}
	return 0, false
}

func parseDecimal(sign, whole, frac string, f Family) float64 {
	h, _ := strconv.ParseFloat(whole, 64)
	if frac == "" {
		return signed(sign, h)
	}
	if f == DecimalMinutes {
		digits := frac
		if len(digits) > 2 {
			digits = digits[:2]
		}
		for len(digits) < 2 {
			digits += "0"
		}
		mm, _ := strconv.Atoi(digits)
		return signed(sign, h+float64(mm)/60)
	}
	v, _ := strconv.ParseFloat(whole+"."+frac, 64)
	return signed(sign, v)
}

func signed(sign string, v float64) float64 {
	if sign == "-" {
		return -v
	}
	return v
}

// FromNumber reinterprets a numeric sheet cell according to the family.
func FromNumber(v float64, f Family) float64 {
	if f == Standard || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	parsed, ok := Parse(strconv.FormatFloat(v, 'f', 2, 64), f)
	if !ok {
		return v
	}
	return parsed
}

// Format renders canonical hours as H:MM, or H.MM for the DecimalMinutes
// family. Minutes are always two digits.
func Format(v float64, f Family) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	h := math.Floor(v)
	mm := int(math.Round((v - h) * 60))
	if mm == 60 {
		h++
		mm = 0
	}
	sep := ":"
	if f == DecimalMinutes {
		sep = "."
	}
	if h == 0 && mm == 0 {
		sign = ""
	}
	return sign + strconv.FormatFloat(h, 'f', 0, 64) + sep + pad2(mm)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
