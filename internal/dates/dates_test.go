package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"constructor form", "Date(2024,2,15)", "2024-03-15"},
		{"constructor with time", "Date(2024,11,1,0,0,0)", "2024-12-01"},
		{"day month short year", "15/03/24", "2024-03-15"},
		{"day month year", "5/3/2024", "2024-03-05"},
		{"iso", "2024-03-15", "2024-03-15"},
		{"iso unpadded", "2024-3-5", "2024-03-05"},
		{"day first dashes", "15-03-2024", "2024-03-15"},
		{"english month", "20 JAN 2024", "2024-01-20"},
		{"english month dashes", "20-Jan-24", "2024-01-20"},
		{"native time", time.Date(2023, time.July, 9, 10, 0, 0, 0, time.UTC), "2023-07-09"},
		{"nil", nil, ""},
		{"blank", "   ", ""},
		{"unparseable kept", "ไม่มีข้อมูล", "ไม่มีข้อมูล"},
		{"bad month kept", "15/13/2024", "15/13/2024"},
		{"day past month end kept", "31/02/24", "31/02/24"},
		{"iso day past month end kept", "2024-04-31", "2024-04-31"},
		{"leap day", "29/02/24", "2024-02-29"},
		{"leap day in common year kept", "29/02/2023", "29/02/2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Date(2024,2,15)", "15/03/24", "2024-3-5", "garbage", "", "15/13/2024", "20 JAN 2024", "1/1/2567", "31/02/24", "2024-04-31"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
		if once != in {
			_, err := Parse(once)
			assert.NoError(t, err, "input %q normalized to %q", in, once)
		}
	}
}

func TestNormalizeYear(t *testing.T) {
	assert.Equal(t, 2024, NormalizeYear(24))
	assert.Equal(t, 1999, NormalizeYear(99))
	assert.Equal(t, 2024, NormalizeYear(2567))
	assert.Equal(t, 2030, NormalizeYear(2030))
}

func TestDueYear(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"17/01/2569", 2026, true},
		{"17/01/27", 2027, true},
		{"2028-06-30", 2028, true},
		{"due 2570", 2027, true},
		{"OH 29", 2029, true},
		{"-", 0, false},
		{"", 0, false},
		{"none", 0, false},
	}
	for _, tt := range tests {
		got, ok := DueYear(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, "", ParseDate("expired"))
	assert.Equal(t, "", ParseDate("ไม่มีข้อมูล (รอ)"))
	assert.Equal(t, "", ParseDate("-"))
	assert.Equal(t, "2021-01-20", ParseDate("20/1/2021"))
}

func TestIsDateLike(t *testing.T) {
	assert.True(t, IsDateLike("17/01/2004"))
	assert.True(t, IsDateLike("2024-12-31"))
	assert.True(t, IsDateLike("31-12-2024"))
	assert.False(t, IsDateLike("120:30"))
	assert.False(t, IsDateLike("-12:30"))
}

func TestDaysBetween(t *testing.T) {
	d, err := DaysBetween("2024-03-01", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	d, err = DaysBetween("2024-03-04", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	_, err = DaysBetween("bad", "2024-03-01")
	assert.Error(t, err)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "15/3/2024", Display("2024-03-15"))
	assert.Equal(t, "15 มี.ค. 67", ThaiShort("2024-03-15"))
	assert.Equal(t, "มกราคม 2567", ThaiMonthYear(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "n/a", Display("n/a"))
}
