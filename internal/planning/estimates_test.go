package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_status/internal/models"
)

var mid2024 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestMonths(t *testing.T) {
	months := Months(mid2024)
	require.Len(t, months, 12)
	assert.Equal(t, Month{Year: 2024, Month: 3, Label: "มีนาคม 2567"}, months[0])
	assert.Equal(t, 2025, months[11].Year)
	assert.Equal(t, 2, months[11].Month)
}

func TestDueMonth(t *testing.T) {
	tests := []struct {
		name      string
		remaining float64
		rate      float64
		want      int
	}{
		{"already due", 0, 2, 0},
		{"due this month", 30, 2, 0},
		{"due in may", 100, 2, 2},
		{"no utilization", 100, 0, -1},
		{"beyond the window", 5000, 1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueMonth(mid2024, tt.remaining, tt.rate))
		})
	}
}

func TestMonthlyEstimates(t *testing.T) {
	aircraft := []models.AircraftRecord{
		{TailNumber: "HE-2", Category: models.RotaryWing, RemainingBuckets: map[int]*float64{100: hoursPtr(12)}},
		{TailNumber: "2208", Category: models.FixedWing, RemainingCheckHours: hoursPtr(100)},
		{TailNumber: "1912", Category: models.FixedWing, FlightHours: hoursPtr(1000), CheckDueHours: hoursPtr(1010)},
		{TailNumber: "0105", Category: models.FixedWing},
	}
	rates := RateTable{Year: map[string]float64{"2208": 9}, Month: map[string]float64{"2208": 2, "HE-2": 1}}

	out := MonthlyEstimates(mid2024, aircraft, rates)
	require.Len(t, out, 3)
	assert.Equal(t, "1912", out[0].Tail)
	assert.Equal(t, "2208", out[1].Tail)
	assert.Equal(t, "HE-2", out[2].Tail)

	assert.Equal(t, -1, out[0].DueMonth, "no utilization known")
	assert.Equal(t, 2.0, out[1].DailyRate, "short lookback preferred")
	assert.Equal(t, 2, out[1].DueMonth)
	assert.Equal(t, "100:00", out[1].Display)
	assert.Equal(t, BucketLabel(100), out[2].CheckType)
	assert.Equal(t, 0, out[2].DueMonth)
}

func TestNaturalLess(t *testing.T) {
	assert.True(t, naturalLess("912", "1912"))
	assert.False(t, naturalLess("1912", "912"))
	assert.True(t, naturalLess("1912", "HE-1"))
	assert.True(t, naturalLess("AC-1", "AC-2"))
}
