package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB owns the SQLite connection shared by the repositories.
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := optimizeSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to optimize database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

func optimizeSQLite(db *sql.DB) error {
	// WAL lets the API read while a refresh writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA temp_store=MEMORY"); err != nil {
		return fmt.Errorf("failed to set temp_store: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// SnapshotRepository returns the key/value snapshot store.
func (d *DB) SnapshotRepository() SnapshotRepository {
	return NewSnapshotRepository(d.db)
}

// StatusRepository returns the dated aircraft status store.
func (d *DB) StatusRepository() StatusRepository {
	return NewStatusRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	snapshotsSchema := `CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		stored_at INTEGER NOT NULL
	);`

	statusSchema := `CREATE TABLE IF NOT EXISTS aircraft_status (
		tail TEXT NOT NULL,
		as_of TEXT NOT NULL,
		category TEXT NOT NULL,
		status TEXT NOT NULL,
		flight_hours REAL,
		remark TEXT,
		record TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (tail, as_of)
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_aircraft_status_as_of ON aircraft_status(as_of)`,
		`CREATE INDEX IF NOT EXISTS idx_aircraft_status_status ON aircraft_status(status, tail)`,
	}

	if _, err := d.db.Exec(snapshotsSchema); err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	if _, err := d.db.Exec(statusSchema); err != nil {
		return fmt.Errorf("failed to create aircraft_status table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
