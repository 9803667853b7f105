package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_status/internal/models"
)

type payload struct {
	Date    string                  `json:"date"`
	Records []models.AircraftRecord `json:"records"`
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, time.Hour)

	_, _, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	buf := []byte("one")
	require.NoError(t, m.Set(ctx, "a", buf))
	buf[0] = 'X'

	got, storedAt, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("one"), got)
	assert.False(t, storedAt.IsZero())

	got[0] = 'Y'
	again, _, _, _ := m.Get(ctx, "a")
	assert.Equal(t, []byte("one"), again)

	require.NoError(t, m.Set(ctx, "b", []byte("two")))
	require.NoError(t, m.Set(ctx, "c", []byte("three")))
	assert.Equal(t, 2, m.Len())
	_, _, ok, _ = m.Get(ctx, "a")
	assert.False(t, ok, "oldest entry evicted")

	require.NoError(t, m.Delete(ctx, "b"))
	_, _, ok, _ = m.Get(ctx, "b")
	assert.False(t, ok)
}

func TestSnapshots_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshots(NewMemory(8, time.Hour), 0)
	assert.Equal(t, DefaultTTL, s.TTL())

	in := payload{
		Date: "2024-03-15",
		Records: []models.AircraftRecord{{
			TailNumber:       "2208",
			Status:           models.Active,
			FlightHours:      models.HoursPtr(1234.75),
			RemainingBuckets: map[int]*float64{models.Bucket150: models.HoursPtr(42)},
		}},
	}
	require.NoError(t, s.Save(ctx, "status:2024-03-15", in))

	var out payload
	ok, err := s.Load(ctx, "status:2024-03-15", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in.Date, out.Date)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "2208", out.Records[0].TailNumber)
	assert.InDelta(t, 1234.75, *out.Records[0].FlightHours, 1e-9)
	assert.InDelta(t, 42, *out.Records[0].RemainingBuckets[models.Bucket150], 1e-9)
	assert.Nil(t, out.Records[0].CheckDueHours)
}

func TestSnapshots_Miss(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshots(NewMemory(8, time.Hour), time.Hour)

	var out payload
	ok, err := s.Load(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshots_Expired(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(8, 48*time.Hour)
	s := NewSnapshots(store, time.Hour)
	require.NoError(t, s.Save(ctx, "k", payload{Date: "2024-03-15"}))

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	var out payload
	ok, err := s.Load(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len(), "stale entry removed")
}

func TestSnapshots_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(8, time.Hour)
	require.NoError(t, store.Set(ctx, "k", []byte("not zstd")))

	s := NewSnapshots(store, time.Hour)
	var out payload
	ok, err := s.Load(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshots_Invalidate(t *testing.T) {
	ctx := context.Background()
	s := NewSnapshots(NewMemory(8, time.Hour), time.Hour)
	require.NoError(t, s.Save(ctx, "k", payload{Date: "x"}))
	require.NoError(t, s.Invalidate(ctx, "k"))

	var out payload
	ok, err := s.Load(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}
