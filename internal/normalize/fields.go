package normalize

import "fleet_status/internal/models"

// Canonical field names.
const (
	FieldTail           = "tail"
	FieldName           = "name"
	FieldBase           = "base"
	FieldStatus         = "status"
	FieldLatitude       = "latitude"
	FieldLongitude      = "longitude"
	FieldFlightHours    = "flight_hours"
	FieldCheckDue       = "check_due"
	FieldRemainingCheck = "remaining_check"
	FieldEngineHours    = "engine_hours"
	FieldEngine1        = "engine_1"
	FieldEngine2        = "engine_2"
	FieldRemaining100   = "remaining_100"
	FieldRemaining150   = "remaining_150"
	FieldRemaining300   = "remaining_300"
	FieldMission        = "mission"
	FieldMechanic       = "mechanic"
	FieldRemark         = "remark"
)

// Field pairs a canonical field with the sheet column names that may carry
// it, most specific first.
type Field struct {
	Name    string
	Aliases []string
}

// Schema describes one sheet layout.
type Schema struct {
	Kind          models.Category
	Fields        []Field
	TailPrefix    string   // Prefix for generated tail numbers
	UnknownName   string   // Display name when none is present
	ModelPatterns []string // Substrings that identify a model name in any column
}

// Aliases returns the aliases of a canonical field.
func (s Schema) Aliases(name string) []string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Aliases
		}
	}
	return nil
}

var commonFields = []Field{
	{FieldBase, []string{"ภารกิจ/ฐานที่ตั้ง", "ฐานที่ตั้ง", "base", "location"}},
	{FieldStatus, []string{"สภาพ", "สถานะ", "status", "state"}},
	{FieldLatitude, []string{"latitude", "lat"}},
	{FieldLongitude, []string{"longitude", "lng", "lon"}},
	{FieldFlightHours, []string{"ชั่วโมง", "ชั่วโมงเครื่องบิน", "flight hours", "flightHours"}},
	{FieldEngineHours, []string{"ชั่วโมงเครื่องยนต์", "engine hours", "engineHours"}},
	{FieldRemaining100, []string{"ชั่วโมงบินคงเหลือครบซ่อม 100", "remaining hours 100"}},
	{FieldRemaining150, []string{"ชั่วโมงบินคงเหลือครบซ่อม 150", "remaining hours 150"}},
	{FieldRemaining300, []string{"ชั่วโมงบินคงเหลือครบซ่อม 300", "remaining hours 300"}},
	{FieldMission, []string{"ภารกิจ/ฐานที่ตั้ง", "mission", "ภารกิจ"}},
	{FieldMechanic, []string{"ผู้ควบคุมงานช่าง", "mechanic", "maintenance"}},
	{FieldRemark, []string{"หมายเหตุ", "remarks", "notes"}},
}

// FixedWingSchema is the aircraft sheet layout.
var FixedWingSchema = Schema{
	Kind:        models.FixedWing,
	TailPrefix:  "AC",
	UnknownName: "Unknown Aircraft",
	Fields: append([]Field{
		{FieldTail, []string{"เครื่องบิน", "หมายเลข", "number", "aircraft_number", "id"}},
		{FieldName, []string{"แบบเครื่องบิน", "name", "model", "type"}},
		{FieldCheckDue, []string{"A cHEcK ", `ช.ม.ครบ"A" CHECK`, "A CHECK", "checkStatus"}},
		{FieldRemainingCheck, []string{"ครบซ่อม A cHEcK ", "ชั่วโมงบินคงเหลือ A CHECK"}},
		{FieldEngine1, []string{"No.1 /LH", "ชั่วโมงเครื่องยนต์ ย1", "ชั่วโมงเครื่องยนต์ 1", "engine hours 1"}},
		{FieldEngine2, []string{"No.2 /RH", "ชั่วโมงเครื่องยนต์ ย2", "ชั่วโมงเครื่องยนต์ 2", "engine hours 2"}},
	}, commonFields...),
}

// RotaryWingSchema is the helicopter sheet layout.
var RotaryWingSchema = Schema{
	Kind:          models.RotaryWing,
	TailPrefix:    "HE",
	UnknownName:   "Unknown Helicopter",
	ModelPatterns: []string{"BELL", "AS350", "SIKORSKY", "AW", "EC", "SA", "UH"},
	Fields: append([]Field{
		{FieldTail, []string{"เฮลิคอปเตอร์", "หมายเลข", "number", "helicopter_number", "id"}},
		{FieldName, []string{"แบบเครื่องบิน", "แบบเฮลิคอปเตอร์", "เฮลิคอปเตอร์", "BELL", "name", "model", "type"}},
		{FieldEngine1, []string{"ชั่วโมงเครื่องยนต์ ย1", "ชั่วโมงเครื่องยนต์ 1", "engine hours 1"}},
		{FieldEngine2, []string{"ชั่วโมงเครื่องยนต์ ย2", "ชั่วโมงเครื่องยนต์ 2", "engine hours 2"}},
	}, commonFields...),
}

// SchemaFor returns the layout for a category.
func SchemaFor(kind models.Category) Schema {
	if kind == models.RotaryWing {
		return RotaryWingSchema
	}
	return FixedWingSchema
}
