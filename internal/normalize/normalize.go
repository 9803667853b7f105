// Package normalize turns heterogeneous sheet rows into AircraftRecords.
package normalize

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fleet_status/internal/hours"
	"fleet_status/internal/location"
	"fleet_status/internal/models"

	"github.com/iancoleman/orderedmap"
)

// Normalizer builds AircraftRecords from sheet rows.
type Normalizer struct {
	resolver *location.Resolver
}

// New creates a normalizer that resolves bases with resolver.
func New(resolver *location.Resolver) *Normalizer {
	if resolver == nil {
		resolver = location.NewResolver()
	}
	return &Normalizer{resolver: resolver}
}

// Normalize builds a record from one row. It returns false when neither a tail
// number nor a display name can be found.
func (n *Normalizer) Normalize(row *orderedmap.OrderedMap, kind models.Category, index int, asOf string) (*models.AircraftRecord, bool) {
	if row == nil {
		return nil, false
	}
	schema := SchemaFor(kind)

	tail := lookupString(row, schema.Aliases(FieldTail))
	name := lookupString(row, schema.Aliases(FieldName))
	if name == "" && len(schema.ModelPatterns) > 0 {
		name = scanModel(row, schema.ModelPatterns)
	}
	if tail == "" && name == "" {
		slog.Debug("Rejected row without tail number or name", "kind", kind, "index", index)
		return nil, false
	}
	if tail == "" {
		tail = fmt.Sprintf("%s-%d", schema.TailPrefix, index)
	}
	if name == "" {
		name = schema.UnknownName
	}

	family := hours.FamilyFor(name)

	match := n.resolver.Resolve(lookupString(row, schema.Aliases(FieldBase)))
	lat, lon := n.resolver.Coordinates(match.Province)
	if v, ok := lookupFloat(row, schema.Aliases(FieldLatitude)); ok {
		lat = v
	}
	if v, ok := lookupFloat(row, schema.Aliases(FieldLongitude)); ok {
		lon = v
	}

	status, recognized := ParseStatus(lookupString(row, schema.Aliases(FieldStatus)))
	if !recognized {
		slog.Debug("Unrecognized status text, treating as active", "tail", tail, "status", lookupString(row, schema.Aliases(FieldStatus)))
	}

	mission := lookupString(row, schema.Aliases(FieldMission))
	if mission == "" {
		mission = match.Label
	}

	rec := &models.AircraftRecord{
		TailNumber:       tail,
		DisplayName:      name,
		Category:         kind,
		BaseProvince:     match.Province,
		BaseLabel:        match.Label,
		Mission:          mission,
		Latitude:         lat,
		Longitude:        lon,
		Status:           status,
		StatusRecognized: recognized,
		Family:           family,
		FlightHours:      lookupHours(row, schema.Aliases(FieldFlightHours), family),
		Mechanic:         lookupString(row, schema.Aliases(FieldMechanic)),
		Remark:           lookupString(row, schema.Aliases(FieldRemark)),
		AsOf:             asOf,
	}

	if kind == models.RotaryWing {
		rec.RemainingBuckets = map[int]*float64{
			models.Bucket100: lookupHours(row, schema.Aliases(FieldRemaining100), family),
			models.Bucket150: lookupHours(row, schema.Aliases(FieldRemaining150), family),
			models.Bucket300: lookupHours(row, schema.Aliases(FieldRemaining300), family),
		}
	} else {
		rec.CheckDueHours = lookupHours(row, schema.Aliases(FieldCheckDue), family)
		rec.RemainingCheckHours = lookupHours(row, schema.Aliases(FieldRemainingCheck), family)
	}

	e1 := lookupHours(row, schema.Aliases(FieldEngine1), family)
	e2 := lookupHours(row, schema.Aliases(FieldEngine2), family)
	switch {
	case e1 != nil || e2 != nil:
		for _, e := range []*float64{e1, e2} {
			if e != nil {
				rec.EngineHours = append(rec.EngineHours, *e)
			}
		}
	default:
		if e := lookupHours(row, schema.Aliases(FieldEngineHours), family); e != nil {
			rec.EngineHours = []float64{*e}
		}
	}

	return rec, true
}

// Rows normalizes every row of one schema, dropping rejected rows.
func (n *Normalizer) Rows(rows []*orderedmap.OrderedMap, kind models.Category, asOf string) []models.AircraftRecord {
	out := make([]models.AircraftRecord, 0, len(rows))
	for i, row := range rows {
		if rec, ok := n.Normalize(row, kind, i, asOf); ok {
			out = append(out, *rec)
		}
	}
	return out
}

// Lookup returns the first alias whose value is present and non-blank.
func Lookup(row *orderedmap.OrderedMap, aliases []string) (any, bool) {
	for _, alias := range aliases {
		v, ok := row.Get(alias)
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func lookupString(row *orderedmap.OrderedMap, aliases []string) string {
	v, ok := Lookup(row, aliases)
	if !ok {
		return ""
	}
	return stringify(v)
}

func lookupFloat(row *orderedmap.OrderedMap, aliases []string) (float64, bool) {
	v, ok := Lookup(row, aliases)
	if !ok {
		return 0, false
	}
	if f, isFloat := v.(float64); isFloat {
		return f, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(stringify(v)), 64)
	return f, err == nil
}

func lookupHours(row *orderedmap.OrderedMap, aliases []string, family hours.Family) *float64 {
	v, ok := Lookup(row, aliases)
	if !ok {
		return nil
	}
	if f, isFloat := v.(float64); isFloat {
		return models.HoursPtr(hours.FromNumber(f, family))
	}
	if h, ok := hours.Parse(stringify(v), family); ok {
		return &h
	}
	return nil
}

func scanModel(row *orderedmap.OrderedMap, patterns []string) string {
	for _, key := range row.Keys() {
		v, _ := row.Get(key)
		s := stringify(v)
		if s == "" {
			continue
		}
		upper := strings.ToUpper(s)
		for _, p := range patterns {
			if strings.Contains(upper, p) {
				return s
			}
		}
	}
	return ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
