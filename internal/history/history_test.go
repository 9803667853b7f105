package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_status/internal/models"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("", "abc"))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.Equal(t, 1.0, Similarity("Engine Change", "engine change"))
	assert.InDelta(t, 0.9, Similarity("รอชิ้นส่วน1", "รอชิ้นส่วน2"), 0.01)
	assert.Less(t, Similarity("A-check", "propeller overhaul"), 0.8)
}

func TestEntriesFrom(t *testing.T) {
	records := []models.AircraftRecord{
		{TailNumber: "1912", AsOf: "2024-03-01", Status: models.Inactive, Remark: " A-check "},
		{TailNumber: "1912", AsOf: "2024-03-02", Status: models.Active, Remark: "A-check"},
		{TailNumber: "2208", AsOf: "2024-03-01", Status: models.Inactive, Remark: "-"},
		{TailNumber: "2208", AsOf: "2024-03-02", Status: models.Inactive},
	}
	assert.Equal(t, []Entry{{Tail: "1912", Date: "2024-03-01", Remark: "A-check"}}, EntriesFrom(records))
}

func TestGroup(t *testing.T) {
	entries := []Entry{
		{"1912", "2024-03-04", "waiting for parts"},
		{"1912", "2024-03-01", "waiting for part"},
		{"1912", "2024-03-01", "waiting for part"},
		{"1912", "2024-03-02", "Waiting for parts."},
		{"1912", "2024-03-09", "waiting for parts"},
		{"1912", "2024-03-10", "A-check"},
		{"2208", "2024-03-10", "engine change"},
		{"2208", "2024-02-01", "engine change"},
	}

	got := Group(entries)
	require.Len(t, got, 5)

	assert.Equal(t, models.HistoryRange{Tail: "1912", Start: "2024-03-10", End: "2024-03-10", Remark: "A-check", Count: 1}, got[0])
	assert.Equal(t, models.HistoryRange{Tail: "2208", Start: "2024-03-10", End: "2024-03-10", Remark: "engine change", Count: 1}, got[1])
	assert.Equal(t, models.HistoryRange{Tail: "1912", Start: "2024-03-09", End: "2024-03-09", Remark: "waiting for parts", Count: 1}, got[2])
	assert.Equal(t, models.HistoryRange{Tail: "1912", Start: "2024-03-01", End: "2024-03-04", Remark: "Waiting for parts.", Count: 3}, got[3])
	assert.Equal(t, "2208", got[4].Tail)
	assert.Equal(t, "2024-02-01", got[4].Start)
}

func TestGroup_SameDayDifferentRemarks(t *testing.T) {
	got := Group([]Entry{
		{"1912", "2024-02-01", "hydraulic leak"},
		{"1912", "2024-02-01", "awaiting engine parts"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, models.HistoryRange{Tail: "1912", Start: "2024-02-01", End: "2024-02-01", Remark: "awaiting engine parts", Count: 2}, got[0])
}

func TestGroupProperties(t *testing.T) {
	remarks := []string{"hydraulic leak", "hydraulic leak fix", "awaiting engine", "A-check", "A-check"}
	var entries []Entry
	for day := 1; day <= 28; day++ {
		for i, tail := range []string{"1912", "2208", "HE-1"} {
			if (day+i)%4 == 0 {
				continue
			}
			entries = append(entries, Entry{
				Tail:   tail,
				Date:   "2024-02-" + pad(day),
				Remark: remarks[(day/5+i)%len(remarks)],
			})
		}
	}
	entries = append(entries, entries[:10]...)
	for _, day := range []int{3, 9, 17} {
		entries = append(entries, Entry{Tail: "1912", Date: "2024-02-" + pad(day), Remark: "propeller overhaul"})
	}

	ranges := Group(entries)

	unique := make(map[Entry]bool)
	for _, e := range entries {
		unique[e] = true
	}
	total := 0
	for _, r := range ranges {
		total += r.Count
		assert.LessOrEqual(t, r.Start, r.End)
	}
	assert.Equal(t, len(unique), total, "every distinct entry lands in exactly one range")

	for i, a := range ranges {
		for _, b := range ranges[i+1:] {
			if a.Tail != b.Tail {
				continue
			}
			overlap := a.Start <= b.End && b.Start <= a.End
			assert.False(t, overlap, "%+v overlaps %+v", a, b)
		}
	}
	for i := 1; i < len(ranges); i++ {
		assert.GreaterOrEqual(t, ranges[i-1].Start, ranges[i].Start)
	}
}

func TestForTail(t *testing.T) {
	ranges := []models.HistoryRange{{Tail: "1912"}, {Tail: "2208"}}
	assert.Equal(t, ranges, ForTail(ranges, ""))
	assert.Equal(t, []models.HistoryRange{{Tail: "2208"}}, ForTail(ranges, "2208"))
	assert.Empty(t, ForTail(ranges, "9999"))
}

func pad(d int) string {
	if d < 10 {
		return "0" + string(rune('0'+d))
	}
	return string(rune('0'+d/10)) + string(rune('0'+d%10))
}
