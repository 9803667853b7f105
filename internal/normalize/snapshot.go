package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fleet_status/internal/models"

	"github.com/iancoleman/orderedmap"
)

// Keys of the two row lists inside a daily status blob.
const (
	FixedWingKey  = "ข้อมูลSheet1"
	RotaryWingKey = "ข้อมูลSheet2"
)

// DecodeBlob splits a daily status blob into its fixed-wing and rotary-wing
// rows. Field order within each row is preserved.
func DecodeBlob(blob []byte) (fixed, rotary []*orderedmap.OrderedMap, err error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(blob, &top); err != nil {
		return nil, nil, fmt.Errorf("failed to decode status blob: %w", err)
	}
	if fixed, err = decodeRows(top[FixedWingKey]); err != nil {
		return nil, nil, fmt.Errorf("failed to decode fixed-wing rows: %w", err)
	}
	if rotary, err = decodeRows(top[RotaryWingKey]); err != nil {
		return nil, nil, fmt.Errorf("failed to decode rotary-wing rows: %w", err)
	}
	return fixed, rotary, nil
}

func decodeRows(raw json.RawMessage) ([]*orderedmap.OrderedMap, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	rows := make([]*orderedmap.OrderedMap, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			continue
		}
		row := orderedmap.New()
		if err := json.Unmarshal(item, row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Snapshot normalizes a whole daily status blob, fixed-wing rows first.
func (n *Normalizer) Snapshot(blob []byte, asOf string) ([]models.AircraftRecord, error) {
	fixed, rotary, err := DecodeBlob(blob)
	if err != nil {
		return nil, err
	}
	records := n.Rows(fixed, models.FixedWing, asOf)
	records = append(records, n.Rows(rotary, models.RotaryWing, asOf)...)
	return records, nil
}
