package components

import (
	"regexp"
	"strconv"

	"fleet_status/internal/hours"
	"fleet_status/internal/models"
)

// propellerSpec is the propeller normally fitted behind an engine model.
type propellerSpec struct {
	Model  string
	Serial string // Base serial; its last two digits are replaced per tail
}

const fallbackEngine = "PT6A-60A"

var propellerByEngine = map[string]propellerSpec{
	"PT6A-114":          {Model: "3GFR34C703/106GA-0", Serial: "42156"},
	"PT6A-114A":         {Model: "3GFR34C703-B", Serial: "43201"},
	"PT6A-60A":          {Model: "HC-E4N-5N/E10173NK-0", Serial: "EU2156"},
	"TPE 331-10R-513C":  {Model: "HC-E4N-5N/E10173NK-0", Serial: "TN1234"},
	"TPE 331-12JR-701C": {Model: "HC-E5N-5/E10281K-0", Serial: "TJ5678"},
	"CT7-9C":            {Model: "14RF-37/6001", Serial: "CT9001"},
}

var trailingDigits = regexp.MustCompile(`\d{2}$`)

// defaultPropellerThreshold is the calendar overhaul interval given to
// synthesized propellers.
var defaultPropellerThreshold = hours.Threshold{Hours: 6 * hours.HoursPerYear, Years: 6}

// DefaultPropeller builds the placeholder propeller shown for an engine whose
// propeller is missing from the ledger. The result is flagged Synthetic and
// depends only on the engine model, side and tail.
func DefaultPropeller(engine *models.ComponentRecord, side models.Position, tail string) *models.ComponentRecord {
	spec, ok := propellerByEngine[engine.Model]
	if !ok {
		spec = propellerByEngine[fallbackEngine]
	}

	suffix := lastTwo(tail)
	if suffix < 0 {
		suffix = 1
	}
	if side == models.Right {
		suffix++
	}
	serial := trailingDigits.ReplaceAllString(spec.Serial, pad2(suffix))

	label := "Propeller"
	if side != models.NoPosition {
		label += " " + string(side)
	}
	return &models.ComponentRecord{
		Kind:              models.Propeller,
		Position:          side,
		Type:              label,
		Model:             spec.Model,
		Serial:            serial,
		OverhaulThreshold: defaultPropellerThreshold,
		Progress:          -1,
		Synthetic:         true,
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
