package models

import "fleet_status/internal/hours"

// ComponentKind identifies a maintenance-tracked part.
type ComponentKind string

const (
	Airframe  ComponentKind = "airframe"
	Engine    ComponentKind = "engine"
	Propeller ComponentKind = "propeller"
)

// Position labels one side of a twin installation.
type Position string

const (
	NoPosition Position = ""
	Left       Position = "LH"
	Right      Position = "RH"
)

// ComponentRecord is one airframe, engine or propeller from the component ledger.
type ComponentRecord struct {
	Kind              ComponentKind   `json:"kind"`
	Position          Position        `json:"position,omitempty"`
	Type              string          `json:"type"` // Ledger type token, e.g. "Engine LH"
	Model             string          `json:"model"`
	Serial            string          `json:"serial"`
	OverhaulCount     int             `json:"overhaul_count"`
	OverhaulThreshold hours.Threshold `json:"overhaul_threshold"`
	NextOverhaul      *float64        `json:"next_overhaul,omitempty"`
	TBORemaining      *float64        `json:"tbo_remaining,omitempty"`
	NextHSI           *float64        `json:"next_hsi,omitempty"`
	HSIRemaining      *float64        `json:"hsi_remaining,omitempty"`
	TSO               *float64        `json:"tso,omitempty"`
	TSN               *float64        `json:"tsn,omitempty"`
	InstallDate       string          `json:"install_date,omitempty"`
	RepairDue         string          `json:"repair_due,omitempty"`     // ISO date when the cell held a date
	RepairDueRaw      string          `json:"repair_due_raw,omitempty"` // Cell text as written
	DueLabel          string          `json:"due_label,omitempty"`      // HSI or OH
	Progress          int             `json:"progress"`                 // Used life in percent, -1 when unknown
	Expired           bool            `json:"expired"`
	Synthetic         bool            `json:"synthetic"` // Default propeller, not read from the ledger
	InstalledOn       string          `json:"installed_on,omitempty"`
	Note              string          `json:"note,omitempty"`
}

// InStores reports whether the component is not installed on any tail.
func (c *ComponentRecord) InStores() bool {
	return c.InstalledOn == ""
}

// ComponentGroup collects the components read for one tail number.
type ComponentGroup struct {
	Tail             string             `json:"tail"`
	FlightHours      *float64           `json:"flight_hours,omitempty"`
	PlaceholderHours bool               `json:"placeholder_hours"` // FlightHours was derived from the tail number
	Family           hours.Family       `json:"family"`
	Airframe         *ComponentRecord   `json:"airframe,omitempty"`
	Engines          []*ComponentRecord `json:"engines"`
	Propellers       []*ComponentRecord `json:"propellers"`
}
