// Package sheets reads the published spreadsheet exports: the gviz JSON status
// table and the CSV component ledgers.
package sheets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"fleet_status/internal/dates"
)

var (
	// ErrBadEnvelope is returned when a response has no JSON object in it.
	ErrBadEnvelope = errors.New("response does not contain a JSON object")
	// ErrNoData is returned when a status table has no usable rows.
	ErrNoData = errors.New("status table has no rows")
)

// StatusRow is one dated row of the status table.
type StatusRow struct {
	Date string `json:"date"` // ISO date, or the cell text when it could not be read
	Blob []byte `json:"blob"` // Nested JSON holding the fixed-wing and rotary-wing rows
}

type envelope struct {
	Table struct {
		Rows []struct {
			C []*struct {
				V any `json:"v"`
			} `json:"c"`
		} `json:"rows"`
	} `json:"table"`
}

// ExtractJSON trims a gviz response down to its outermost JSON object.
func ExtractJSON(body []byte) ([]byte, error) {
	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start < 0 || end < start {
		return nil, ErrBadEnvelope
	}
	return body[start : end+1], nil
}

// ParseStatusTable decodes a gviz response into dated rows, oldest first as
// the sheet stores them.
func ParseStatusTable(body []byte) ([]StatusRow, error) {
	raw, err := ExtractJSON(body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode status table: %w", err)
	}

	rows := make([]StatusRow, 0, len(env.Table.Rows))
	for _, r := range env.Table.Rows {
		if len(r.C) < 2 || r.C[1] == nil {
			continue
		}
		blob := cellBlob(r.C[1].V)
		if len(blob) == 0 {
			continue
		}
		var date string
		if r.C[0] != nil {
			date = dates.Normalize(r.C[0].V)
		}
		rows = append(rows, StatusRow{Date: date, Blob: blob})
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}

func cellBlob(v any) []byte {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return bytes.TrimSpace([]byte(t))
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil
		}
		return b
	}
}

// Select returns the row for date. When no row carries that date the last
// row is returned with exact set to false.
func Select(rows []StatusRow, date string) (row StatusRow, exact bool, ok bool) {
	if len(rows) == 0 {
		return StatusRow{}, false, false
	}
	if date != "" {
		for _, r := range rows {
			if r.Date == date {
				return r, true, true
			}
		}
	}
	return rows[len(rows)-1], false, true
}

// SelectOnOrAfter returns the first row dated on or after target, or the
// oldest dated row when every row is earlier.
func SelectOnOrAfter(rows []StatusRow, target string) (StatusRow, bool) {
	want, err := dates.Parse(target)
	if err != nil {
		return StatusRow{}, false
	}
	var oldest *StatusRow
	for i := range rows {
		t, err := dates.Parse(rows[i].Date)
		if err != nil {
			continue
		}
		if oldest == nil {
			oldest = &rows[i]
		}
		if !t.Before(want) {
			return rows[i], true
		}
	}
	if oldest == nil {
		return StatusRow{}, false
	}
	return *oldest, true
}
