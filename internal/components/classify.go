package components

import (
	"regexp"
	"strings"

	"fleet_status/internal/models"
)

// RowKind tags a detail-ledger row with the action the extractor takes for it.
type RowKind int

const (
	Unrecognized      RowKind = iota
	TailHeader                // Starts a tail group and carries the airframe
	FlightHoursMarker         // "FH" row carrying an engine
	ComponentRow              // Column 3 names an engine or propeller
	HoursUpdate               // Flight hours only, no component
)

func (k RowKind) String() string {
	switch k {
	case TailHeader:
		return "tail_header"
	case FlightHoursMarker:
		return "flight_hours_marker"
	case ComponentRow:
		return "component_row"
	case HoursUpdate:
		return "hours_update"
	default:
		return "unrecognized"
	}
}

const flightHoursMarker = "FH"

var (
	tailPattern  = regexp.MustCompile(`^\d{4}$`)
	clockPattern = regexp.MustCompile(`^\d+:\d+$`)
)

// typeTokens are the recognized column-3 component labels.
var typeTokens = map[string]bool{
	"A/C":          true,
	"Engine":       true,
	"Engine LH":    true,
	"Engine RH":    true,
	"Propeller":    true,
	"Propeller LH": true,
	"Propeller RH": true,
}

// IsTypeToken reports whether s is a recognized component label.
func IsTypeToken(s string) bool {
	return typeTokens[strings.TrimSpace(s)]
}

// Classify decides what a row means. Rows other than tail headers are only
// meaningful once a tail has been seen.
func Classify(row []string, hasTail bool) RowKind {
	first := strings.TrimSpace(cell(row, DetailLayout.First))
	if tailPattern.MatchString(first) {
		return TailHeader
	}
	if !hasTail {
		return Unrecognized
	}
	if first == flightHoursMarker {
		return FlightHoursMarker
	}
	if IsTypeToken(cell(row, DetailLayout.Type)) {
		return ComponentRow
	}
	if clockPattern.MatchString(first) {
		return HoursUpdate
	}
	return Unrecognized
}

// kindOf maps a type label to a component kind and side.
func kindOf(label string) (models.ComponentKind, models.Position) {
	label = strings.TrimSpace(label)
	var kind models.ComponentKind
	switch {
	case strings.Contains(label, "Propeller"):
		kind = models.Propeller
	case strings.Contains(label, "Engine"):
		kind = models.Engine
	default:
		kind = models.Airframe
	}
	return kind, positionOf(label)
}

func positionOf(label string) models.Position {
	switch {
	case strings.Contains(label, string(models.Left)):
		return models.Left
	case strings.Contains(label, string(models.Right)):
		return models.Right
	default:
		return models.NoPosition
	}
}
