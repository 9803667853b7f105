package components

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"fleet_status/internal/dates"
	"fleet_status/internal/hours"
	"fleet_status/internal/models"
)

// Entry is one stores-ledger row together with the detail record it was
// matched to.
type Entry struct {
	Record   models.ComponentRecord  `json:"record"`
	Detail   *models.ComponentRecord `json:"detail,omitempty"`   // nil when no detail row matched
	Declared string                  `json:"declared,omitempty"` // Installed-in cell as written in the ledger
}

// Ledger holds the engine and propeller stores ledgers.
type Ledger struct {
	Engines    []*Entry `json:"engines"`
	Propellers []*Entry `json:"propellers"`
}

// InstallationResolver decides which tail a stores-ledger component is
// fitted to.
type InstallationResolver interface {
	// BySerial finds the detail record whose serial matches.
	BySerial(fleet *Fleet, kind models.ComponentKind, serial string) (tail string, detail *models.ComponentRecord, ok bool)
	// ByRemark finds a tail number mentioned in free text.
	ByRemark(fleet *Fleet, remark string) (tail string, ok bool)
}

// SubstringResolver matches serials by containment in either direction,
// since the two ledgers truncate and prefix serials differently. The first
// match in ledger order wins.
type SubstringResolver struct {
	Now func() time.Time
}

// NewSubstringResolver creates a resolver using the wall clock.
func NewSubstringResolver() *SubstringResolver {
	return &SubstringResolver{Now: time.Now}
}

// SerialsMatch reports whether two serials refer to the same part.
func SerialsMatch(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func (r *SubstringResolver) BySerial(fleet *Fleet, kind models.ComponentKind, serial string) (string, *models.ComponentRecord, bool) {
	for _, group := range fleet.Ordered() {
		var list []*models.ComponentRecord
		switch kind {
		case models.Engine:
			list = group.Engines
		case models.Propeller:
			list = group.Propellers
		}
		for _, c := range list {
			if SerialsMatch(c.Serial, serial) {
				return group.Tail, c, true
			}
		}
	}
	return "", nil, false
}

var tailInText = regexp.MustCompile(`\d{4}`)

func (r *SubstringResolver) ByRemark(fleet *Fleet, remark string) (string, bool) {
	m := tailInText.FindString(remark)
	if m == "" {
		return "", false
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	year := now().Year()
	n, _ := strconv.Atoi(m)
	if n == year || n == year+dates.BuddhistOffset {
		return "", false
	}
	if fleet.Group(m) == nil {
		return "", false
	}
	return m, true
}

func usableRow(row []string, serialCol int) bool {
	if len(row) < 3 {
		return false
	}
	serial := cell(row, serialCol)
	return serial != "" && !strings.EqualFold(serial, "S/N")
}

func installedCell(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "-" {
		return ""
	}
	return raw
}

// ParseEngineLedger reads the engine stores ledger. Hours are parsed with the
// family of the declared host tail.
func ParseEngineLedger(rows [][]string, fleet *Fleet) []*Entry {
	l := EngineLedgerLayout
	var out []*Entry
	for _, row := range rows {
		if !usableRow(row, l.Serial) {
			continue
		}
		model := cell(row, l.Model)
		declared := installedCell(cell(row, l.InstalledIn))
		f := hours.FamilyFor(model)
		if g := fleet.Group(declared); g != nil && f == hours.Standard {
			f = g.Family
		}

		e := &Entry{
			Record: models.ComponentRecord{
				Kind:        models.Engine,
				Type:        "Engine",
				Model:       model,
				Serial:      cell(row, l.Serial),
				TSN:         parseHours(cell(row, l.Current), f),
				InstalledOn: declared,
				Note:        cell(row, l.Remark),
				Progress:    -1,
			},
			Declared: declared,
		}
		if t, ok := hours.ParseThreshold(cell(row, l.Due), f); ok {
			e.Record.OverhaulThreshold = t
		}
		out = append(out, e)
	}
	return out
}

// ParsePropellerLedger reads the propeller stores ledger.
func ParsePropellerLedger(rows [][]string) []*Entry {
	l := PropellerLedgerLayout
	var out []*Entry
	for _, row := range rows {
		if !usableRow(row, l.Serial) {
			continue
		}
		model := cell(row, l.Model)
		f := hours.FamilyFor(model)
		due := cell(row, l.DueDate)

		e := &Entry{
			Record: models.ComponentRecord{
				Kind:         models.Propeller,
				Type:         "Propeller",
				Model:        model,
				Serial:       cell(row, l.Serial),
				RepairDueRaw: due,
				RepairDue:    isoDate(due),
				Note:         cell(row, l.Remark),
				Progress:     -1,
			},
		}
		if t, ok := hours.ParseThreshold(cell(row, l.Due), f); ok {
			e.Record.OverhaulThreshold = t
		}
		out = append(out, e)
	}
	return out
}

// Link sets InstalledOn for every stores-ledger entry and attaches the
// matching detail record. Engines fall back to the tail written in the
// ledger, propellers to a tail number mentioned in the remark.
func Link(fleet *Fleet, ledger *Ledger, resolver InstallationResolver) {
	if resolver == nil {
		resolver = NewSubstringResolver()
	}

	seen := make(map[string]int)
	for _, e := range ledger.Engines {
		if e.Declared != "" {
			seen[e.Declared]++
		}
		if tail, detail, ok := resolver.BySerial(fleet, models.Engine, e.Record.Serial); ok {
			e.Record.InstalledOn = tail
			e.Detail = detail
			continue
		}
		// Unmatched serial: take the n-th engine on the declared tail.
		if g := fleet.Group(e.Declared); g != nil {
			if n := seen[e.Declared]; n > 0 && n <= len(g.Engines) {
				e.Detail = g.Engines[n-1]
			}
		}
	}

	for _, e := range ledger.Propellers {
		if tail, detail, ok := resolver.BySerial(fleet, models.Propeller, e.Record.Serial); ok {
			e.Record.InstalledOn = tail
			e.Detail = detail
			continue
		}
		if tail, ok := resolver.ByRemark(fleet, e.Record.Note); ok {
			e.Record.InstalledOn = tail
		}
	}
}

// ReadLedger builds both stores ledgers from their trimmed CSV rows and links
// them to the fleet.
func ReadLedger(fleet *Fleet, engineRows, propellerRows [][]string, resolver InstallationResolver) *Ledger {
	ledger := &Ledger{
		Engines:    ParseEngineLedger(engineRows, fleet),
		Propellers: ParsePropellerLedger(propellerRows),
	}
	Link(fleet, ledger, resolver)
	return ledger
}
