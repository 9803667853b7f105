package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"fleet_status/internal/fleet"
	"fleet_status/internal/models"
)

func TestPrintProjections(t *testing.T) {
	due := 2026
	res := fleet.Empty("2024-03-20")
	res.Date = "2024-03-15"
	res.Projections = []models.MaintenanceProjection{
		{Tail: "2208", Kind: "engine", Name: "PT6A-60A", Serial: "PCE-PB0527", CheckType: "3600:00", Display: "812:30", DailyRate: 1.25, DueYear: &due},
		{Tail: "1912", Kind: "aircraft", Name: "Caravan", CheckType: "A-check"},
	}

	var buf bytes.Buffer
	printProjections(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "Snapshot 2024-03-15 (requested 2024-03-20)")
	assert.Contains(t, out, "PCE-PB0527")
	assert.Contains(t, out, "2026 (2569)")
	assert.Contains(t, out, "1.25")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, []models.HistoryRange{
		{Tail: "2208", Start: "2024-03-01", End: "2024-03-04", Remark: "รอชิ้นส่วน", Count: 3},
	})
	assert.Contains(t, buf.String(), "2024-03-01")
	assert.Contains(t, buf.String(), "รอชิ้นส่วน")
}
