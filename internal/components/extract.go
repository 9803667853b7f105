package components

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fleet_status/internal/dates"
	"fleet_status/internal/hours"
	"fleet_status/internal/models"
)

// placeholderBase is the flight-hours value shown for tails with no reading.
const placeholderBase = 8000

// Fleet is the component ledger grouped by tail number.
type Fleet struct {
	Groups map[string]*models.ComponentGroup `json:"groups"`
	Tails  []string                          `json:"tails"` // In ledger order
}

// Group returns the components for tail, or nil.
func (f *Fleet) Group(tail string) *models.ComponentGroup {
	if f == nil {
		return nil
	}
	return f.Groups[tail]
}

// Ordered returns the groups in ledger order.
func (f *Fleet) Ordered() []*models.ComponentGroup {
	if f == nil {
		return nil
	}
	out := make([]*models.ComponentGroup, 0, len(f.Tails))
	for _, tail := range f.Tails {
		out = append(out, f.Groups[tail])
	}
	return out
}

var (
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	decimalPattern = regexp.MustCompile(`^\d+\.\d+$`)
)

// Extract walks the detail ledger rows and groups components by tail. now
// dates the airframe progress estimate.
func Extract(rows [][]string, now time.Time) *Fleet {
	fleet := &Fleet{Groups: make(map[string]*models.ComponentGroup)}
	var current *models.ComponentGroup

	for i, row := range rows {
		kind := Classify(row, current != nil)
		switch kind {
		case TailHeader:
			tail := strings.TrimSpace(cell(row, DetailLayout.First))
			group, ok := fleet.Groups[tail]
			if !ok {
				group = &models.ComponentGroup{Tail: tail}
				fleet.Groups[tail] = group
				fleet.Tails = append(fleet.Tails, tail)
			}
			current = group

			airframe := readComponent(row, "A/C", hours.FamilyFor(cell(row, DetailLayout.Model)), now)
			group.Airframe = airframe
			group.Family = hours.FamilyFor(airframe.Model)
			if group.FlightHours == nil {
				if v, ok := scanFlightHours(row, 1, group.Family); ok {
					group.FlightHours = &v
				} else if v, ok := scanDecimalHours(row, 1, group.Family); ok {
					group.FlightHours = &v
				} else if airframe.TSN != nil {
					v := *airframe.TSN
					group.FlightHours = &v
				}
			}

		case FlightHoursMarker:
			if current.FlightHours == nil {
				if v, ok := scanFlightHours(row, 1, current.Family); ok {
					current.FlightHours = &v
				}
			}
			label := strings.TrimSpace(cell(row, DetailLayout.Type))
			if label == "" {
				label = "Engine"
			}
			addComponent(current, readComponent(row, label, rowFamily(current, row), now))

		case ComponentRow:
			updateHours(current, row)
			label := strings.TrimSpace(cell(row, DetailLayout.Type))
			if label == "A/C" {
				if current.Airframe == nil {
					current.Airframe = readComponent(row, label, rowFamily(current, row), now)
				}
				continue
			}
			addComponent(current, readComponent(row, label, rowFamily(current, row), now))

		case HoursUpdate:
			updateHours(current, row)

		default:
			if !isBlankRow(row) {
				slog.Debug("Skipping unrecognized ledger row", "row", i, "first", cell(row, 0))
			}
		}
	}

	for _, tail := range fleet.Tails {
		finish(fleet.Groups[tail])
	}
	return fleet
}

func rowFamily(group *models.ComponentGroup, row []string) hours.Family {
	model := ""
	if group.Airframe != nil {
		model = group.Airframe.Model
	}
	return hours.FamilyFor(model, cell(row, DetailLayout.Model))
}

func updateHours(group *models.ComponentGroup, row []string) {
	if group.FlightHours != nil {
		return
	}
	first := strings.TrimSpace(cell(row, DetailLayout.First))
	if !clockPattern.MatchString(first) {
		return
	}
	if v, ok := hours.Parse(first, group.Family); ok {
		group.FlightHours = &v
	}
}

// scanFlightHours returns the first H:MM cell from column start onwards.
func scanFlightHours(row []string, start int, f hours.Family) (float64, bool) {
	for i := start; i < len(row); i++ {
		if clockPattern.MatchString(strings.TrimSpace(row[i])) {
			return hours.Parse(row[i], f)
		}
	}
	return 0, false
}

// minDecimalHours keeps small counts and percentages out of the decimal scan.
const minDecimalHours = 100

// scanDecimalHours returns the first decimal cell above minDecimalHours from
// column start onwards, skipping the serial column.
func scanDecimalHours(row []string, start int, f hours.Family) (float64, bool) {
	for i := start; i < len(row); i++ {
		if i == DetailLayout.Serial {
			continue
		}
		s := strings.TrimSpace(row[i])
		if !decimalPattern.MatchString(s) {
			continue
		}
		if v, ok := hours.Parse(s, f); ok && v > minDecimalHours {
			return v, true
		}
	}
	return 0, false
}

func addComponent(group *models.ComponentGroup, c *models.ComponentRecord) {
	c.InstalledOn = group.Tail
	switch c.Kind {
	case models.Engine:
		group.Engines = append(group.Engines, c)
	case models.Propeller:
		group.Propellers = append(group.Propellers, c)
	}
}

func readComponent(row []string, label string, f hours.Family, now time.Time) *models.ComponentRecord {
	l := DetailLayout
	kind, position := kindOf(label)

	c := &models.ComponentRecord{
		Kind:     kind,
		Position: position,
		Type:     label,
		Model:    cell(row, l.Model),
		Serial:   cell(row, l.Serial),
		DueLabel: cell(row, l.DueLabel),
		Note:     cell(row, l.Notes),
		Progress: -1,
	}
	if n, err := strconv.Atoi(cell(row, l.OverhaulCount)); err == nil {
		c.OverhaulCount = n
	}
	if t, ok := hours.ParseThreshold(cell(row, l.Threshold), f); ok {
		c.OverhaulThreshold = t
	}
	c.NextOverhaul = parseHours(cell(row, l.NextOverhaul), f)
	c.TBORemaining = parseHours(cell(row, l.TBORemaining), f)
	c.NextHSI = parseHours(cell(row, l.NextHSI), f)
	c.HSIRemaining = parseHours(cell(row, l.HSIRemaining), f)
	c.TSO = parseHours(cell(row, l.TSO), f)
	c.TSN = parseHours(cell(row, l.TSN), f)
	c.InstallDate = isoDate(cell(row, l.InstallDate))

	due := dates.ParseDate(cell(row, l.RepairDue))
	c.RepairDueRaw = due
	c.RepairDue = isoDate(due)

	bar := strings.TrimSpace(cell(row, l.ProgressBar))
	c.Expired = strings.EqualFold(bar, "expired")
	c.Progress = Progress(c, bar, now)
	return c
}

func parseHours(raw string, f hours.Family) *float64 {
	if v, ok := hours.Parse(raw, f); ok {
		return &v
	}
	return nil
}

// isoDate returns the ISO form of a ledger date cell, or "" when the cell
// holds something other than a date.
func isoDate(raw string) string {
	raw = dates.ParseDate(raw)
	if raw == "" {
		return ""
	}
	iso := dates.Normalize(raw)
	if _, err := dates.Parse(iso); err != nil {
		return ""
	}
	return iso
}

// Progress estimates used life in percent. It prefers the sheet's own
// progress bar, then the TBO balance, then the HSI balance, then the span
// between install and repair dates. It returns -1 when nothing applies.
func Progress(c *models.ComponentRecord, bar string, now time.Time) int {
	if m := percentPattern.FindStringSubmatch(bar); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return clampPercent(v)
		}
	}
	if total := c.OverhaulThreshold.Hours; total > 0 && c.TBORemaining != nil {
		return clampPercent((total - *c.TBORemaining) / total * 100)
	}
	if c.NextHSI != nil && *c.NextHSI > 0 && c.HSIRemaining != nil {
		return clampPercent((*c.NextHSI - *c.HSIRemaining) / *c.NextHSI * 100)
	}
	if c.InstallDate != "" && c.RepairDue != "" {
		start, err1 := dates.Parse(c.InstallDate)
		end, err2 := dates.Parse(c.RepairDue)
		if err1 == nil && err2 == nil && end.After(start) {
			used := now.Sub(start).Hours() / end.Sub(start).Hours() * 100
			return clampPercent(used)
		}
	}
	return -1
}

func clampPercent(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v + 0.5)
	}
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// finish applies the per-tail post-pass: default propellers, side labels,
// placeholder hours and the group family.
func finish(group *models.ComponentGroup) {
	engines, props := len(group.Engines), len(group.Propellers)
	switch {
	case engines == 2 && props == 0:
		for i, e := range group.Engines {
			side := e.Position
			if side == models.NoPosition {
				side = models.Left
				if i == 1 {
					side = models.Right
				}
			}
			addComponent(group, DefaultPropeller(e, side, group.Tail))
		}
	case engines == 1 && props == 0:
		addComponent(group, DefaultPropeller(group.Engines[0], models.NoPosition, group.Tail))
	}

	if engines == 2 && len(group.Propellers) == 2 {
		p0, p1 := group.Propellers[0], group.Propellers[1]
		if p0.Position == models.NoPosition && p1.Position == models.NoPosition {
			p0.Position, p0.Type = models.Left, "Propeller LH"
			p1.Position, p1.Type = models.Right, "Propeller RH"
		}
	}

	if group.FlightHours == nil || *group.FlightHours == 0 {
		v := PlaceholderHours(group.Tail)
		group.FlightHours = &v
		group.PlaceholderHours = true
	}

	names := make([]string, 0, 1+len(group.Engines)+len(group.Propellers))
	if group.Airframe != nil {
		names = append(names, group.Airframe.Model)
	}
	for _, c := range group.Engines {
		names = append(names, c.Model)
	}
	for _, c := range group.Propellers {
		names = append(names, c.Model)
	}
	group.Family = hours.FamilyFor(names...)
}

// lastTwo returns the tail's last two digits, or -1 when they are not numeric.
func lastTwo(tail string) int {
	if len(tail) < 2 {
		return -1
	}
	n, err := strconv.Atoi(tail[len(tail)-2:])
	if err != nil {
		return -1
	}
	return n
}

// PlaceholderHours is the display value used when a tail has no flight-hours
// reading. It is derived from the tail number only.
func PlaceholderHours(tail string) float64 {
	n := lastTwo(tail)
	if n < 0 {
		n = 0
	}
	return float64(placeholderBase + n*100)
}
