package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fleet_status/internal/models"
)

// StatusRepository keeps every normalized aircraft record by tail and date.
type StatusRepository interface {
	InsertBatch(ctx context.Context, records []models.AircraftRecord) error
	ByDate(ctx context.Context, date string) ([]models.AircraftRecord, error)
	OnOrAfter(ctx context.Context, date string) (string, []models.AircraftRecord, error)
	Inactive(ctx context.Context, tail string) ([]models.AircraftRecord, error)
	Dates(ctx context.Context) ([]string, error)
}

type statusRepository struct {
	db *sql.DB
}

func NewStatusRepository(db *sql.DB) StatusRepository {
	return &statusRepository{db: db}
}

// InsertBatch upserts records in a single transaction. A later refresh of the
// same date replaces the earlier row.
func (r *statusRepository) InsertBatch(ctx context.Context, records []models.AircraftRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO aircraft_status (
		tail, as_of, category, status, flight_hours, remark, record
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		if rec.TailNumber == "" || rec.AsOf == "" {
			continue
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode record %s: %w", rec.TailNumber, err)
		}
		if _, err := stmt.ExecContext(ctx,
			rec.TailNumber,
			rec.AsOf,
			string(rec.Category),
			string(rec.Status),
			rec.FlightHours,
			rec.Remark,
			string(payload),
		); err != nil {
			return fmt.Errorf("failed to insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *statusRepository) ByDate(ctx context.Context, date string) ([]models.AircraftRecord, error) {
	return r.query(ctx, `SELECT record FROM aircraft_status WHERE as_of = ? ORDER BY tail`, date)
}

// OnOrAfter returns the earliest stored date not before date, with its
// records. The date is empty when nothing qualifies.
func (r *statusRepository) OnOrAfter(ctx context.Context, date string) (string, []models.AircraftRecord, error) {
	var ns sql.NullString
	if err := r.db.QueryRowContext(ctx,
		`SELECT MIN(as_of) FROM aircraft_status WHERE as_of >= ?`, date,
	).Scan(&ns); err != nil {
		return "", nil, fmt.Errorf("failed to find status date: %w", err)
	}
	if !ns.Valid {
		return "", nil, nil
	}
	records, err := r.ByDate(ctx, ns.String)
	if err != nil {
		return "", nil, err
	}
	return ns.String, records, nil
}

// Inactive returns the inactive records of one tail, or of every tail when
// tail is empty, oldest first.
func (r *statusRepository) Inactive(ctx context.Context, tail string) ([]models.AircraftRecord, error) {
	if tail == "" {
		return r.query(ctx,
			`SELECT record FROM aircraft_status WHERE status = ? ORDER BY as_of, tail`,
			string(models.Inactive))
	}
	return r.query(ctx,
		`SELECT record FROM aircraft_status WHERE status = ? AND tail = ? ORDER BY as_of`,
		string(models.Inactive), tail)
}

func (r *statusRepository) Dates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT as_of FROM aircraft_status ORDER BY as_of`)
	if err != nil {
		return nil, fmt.Errorf("failed to query status dates: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan status date: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *statusRepository) query(ctx context.Context, q string, args ...any) ([]models.AircraftRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft status: %w", err)
	}
	defer rows.Close()

	var out []models.AircraftRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan aircraft status: %w", err)
		}
		var rec models.AircraftRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode aircraft status: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
