package models

// MaintenanceProjection is a derived due-year estimate for one airframe check
// or component overhaul. It is recomputed on every request.
type MaintenanceProjection struct {
	Tail      string        `json:"tail"` // Host tail, empty for components in stores
	Kind      ComponentKind `json:"kind"`
	Name      string        `json:"name"`
	Model     string        `json:"model"`
	Serial    string        `json:"serial"`
	CheckType string        `json:"check_type"`
	Current   *float64      `json:"current,omitempty"`
	Target    *float64      `json:"target,omitempty"`
	Remaining *float64      `json:"remaining,omitempty"`
	DailyRate float64       `json:"daily_rate"`
	DueYear   *int          `json:"due_year,omitempty"`
	Display   string        `json:"display"` // Remaining balance as written in the sheets
	Installed bool          `json:"installed"`
	Remark    string        `json:"remark,omitempty"`
}

// HistoryRange is a merged run of inactive days sharing a similar remark.
type HistoryRange struct {
	Tail   string `json:"tail"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Remark string `json:"remark"`
	Count  int    `json:"count"` // Distinct entries merged into the range
}
