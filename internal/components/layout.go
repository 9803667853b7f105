// Package components reads the component detail ledger into per-tail groups
// and links the engine and propeller stores ledgers to them.
package components

// Layout holds the column offsets shared by airframe, engine and propeller
// rows of the detail ledger.
type Layout struct {
	First         int // Tail number, "FH" marker or flight hours
	Type          int // Component type token, e.g. "Engine LH"
	ProgressBar   int // "█████████░ 86%" or "expired"
	Model         int
	Serial        int
	OverhaulCount int
	Threshold     int // "3600FH", "12Y"
	NextOverhaul  int
	TBORemaining  int
	NextHSI       int
	HSIRemaining  int
	TSO           int
	TSN           int
	InstallDate   int
	RepairDue     int // A date or an hours balance
	DueLabel      int // HSI or OH
	Notes         int
}

// DetailLayout is the column layout of the component detail sheet.
var DetailLayout = Layout{
	First:         0,
	Type:          3,
	ProgressBar:   4,
	Model:         5,
	Serial:        6,
	OverhaulCount: 7,
	Threshold:     8,
	NextOverhaul:  9,
	TBORemaining:  10,
	NextHSI:       11,
	HSIRemaining:  12,
	TSO:           13,
	TSN:           14,
	InstallDate:   18,
	RepairDue:     19,
	DueLabel:      20,
	Notes:         21,
}

// EngineLedgerLayout is the column layout of the engine stores ledger.
var EngineLedgerLayout = struct {
	Model       int
	Serial      int
	Due         int // Overhaul interval
	Current     int // Hours on the engine
	InstalledIn int // Tail number or "-"
	Remark      int
}{
	Model:       0,
	Serial:      1,
	Due:         2,
	Current:     3,
	InstalledIn: 6,
	Remark:      21,
}

// PropellerLedgerLayout is the column layout of the propeller stores ledger.
var PropellerLedgerLayout = struct {
	Model   int
	Serial  int
	Due     int
	DueDate int
	Remark  int
}{
	Model:   0,
	Serial:  1,
	Due:     2,
	DueDate: 4,
	Remark:  5,
}

// cell returns row[i] trimmed by the CSV reader, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
