package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet_status/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	db, err := New(filepath.Join(t.TempDir(), "fleet_status.db"))
	require.NoError(t, err)
	require.NotNil(t, db)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})
	return db
}

func record(tail, date string, status models.Status, flown float64, remark string) models.AircraftRecord {
	return models.AircraftRecord{
		TailNumber:  tail,
		AsOf:        date,
		Category:    models.FixedWing,
		Status:      status,
		FlightHours: models.HoursPtr(flown),
		Remark:      remark,
		RemainingBuckets: map[int]*float64{
			models.Bucket100: models.HoursPtr(12.5),
		},
	}
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)
	assert.NotNil(t, db)
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t).SnapshotRepository()

	_, _, ok, err := repo.Get(ctx, "status:2024-03-15")
	require.NoError(t, err)
	assert.False(t, ok)

	before := time.Now().Add(-time.Second)
	require.NoError(t, repo.Set(ctx, "status:2024-03-15", []byte("first")))
	require.NoError(t, repo.Set(ctx, "status:2024-03-15", []byte("second")))

	value, storedAt, ok, err := repo.Get(ctx, "status:2024-03-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), value)
	assert.True(t, storedAt.After(before))

	require.NoError(t, repo.Delete(ctx, "status:2024-03-15"))
	_, _, ok, err = repo.Get(ctx, "status:2024-03-15")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotRepository_Purge(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t).SnapshotRepository()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))

	n, err := repo.Purge(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.Purge(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStatusRepository_InsertBatch(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t).StatusRepository()

	require.NoError(t, repo.InsertBatch(ctx, nil))

	records := []models.AircraftRecord{
		record("2208", "2024-03-15", models.Active, 1234.75, ""),
		record("1912", "2024-03-15", models.Inactive, 800, "รอชิ้นส่วน"),
		record("", "2024-03-15", models.Active, 1, ""),
	}
	require.NoError(t, repo.InsertBatch(ctx, records))

	got, err := repo.ByDate(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1912", got[0].TailNumber)
	assert.Equal(t, "2208", got[1].TailNumber)
	assert.InDelta(t, 1234.75, *got[1].FlightHours, 1e-9)
	require.NotNil(t, got[1].RemainingBuckets[models.Bucket100])
	assert.InDelta(t, 12.5, *got[1].RemainingBuckets[models.Bucket100], 1e-9)

	// Same tail and date replaces the earlier row
	require.NoError(t, repo.InsertBatch(ctx, []models.AircraftRecord{
		record("2208", "2024-03-15", models.Active, 1240, ""),
	}))
	got, err = repo.ByDate(ctx, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 1240, *got[1].FlightHours, 1e-9)
}

func TestStatusRepository_OnOrAfter(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t).StatusRepository()

	require.NoError(t, repo.InsertBatch(ctx, []models.AircraftRecord{
		record("2208", "2023-03-10", models.Active, 900, ""),
		record("2208", "2023-03-20", models.Active, 950, ""),
	}))

	date, got, err := repo.OnOrAfter(ctx, "2023-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2023-03-20", date)
	require.Len(t, got, 1)

	date, got, err = repo.OnOrAfter(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, date)
	assert.Empty(t, got)

	dates, err := repo.Dates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-03-10", "2023-03-20"}, dates)
}

func TestStatusRepository_Inactive(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDB(t).StatusRepository()

	require.NoError(t, repo.InsertBatch(ctx, []models.AircraftRecord{
		record("2208", "2024-03-02", models.Inactive, 900, "รอชิ้นส่วน"),
		record("2208", "2024-03-01", models.Inactive, 900, "รอชิ้นส่วน"),
		record("2208", "2024-03-03", models.Active, 900, ""),
		record("1912", "2024-03-01", models.Inactive, 500, "ซ่อมบำรุง"),
	}))

	got, err := repo.Inactive(ctx, "2208")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-01", got[0].AsOf)
	assert.Equal(t, "2024-03-02", got[1].AsOf)

	all, err := repo.Inactive(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
