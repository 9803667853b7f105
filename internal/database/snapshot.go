package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SnapshotRepository persists opaque snapshot blobs by key. It satisfies
// cache.Store.
type SnapshotRepository interface {
	Get(ctx context.Context, key string) ([]byte, time.Time, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Purge(ctx context.Context, before time.Time) (int64, error)
}

type snapshotRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &snapshotRepository{db: db, now: time.Now}
}

func (r *snapshotRepository) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	var (
		value    []byte
		storedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT value, stored_at FROM snapshots WHERE key = ?`, key,
	).Scan(&value, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return value, time.Unix(0, storedAt), true, nil
}

// Set replaces the whole row so readers never see a partial write.
func (r *snapshotRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (key, value, stored_at) VALUES (?, ?, ?)`,
		key, value, r.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Purge drops snapshots written before the cutoff.
func (r *snapshotRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE stored_at < ?`, before.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to purge snapshots: %w", err)
	}
	return res.RowsAffected()
}
