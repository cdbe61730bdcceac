package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New opens the SQLite database at dataSourceName and applies the schema.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	wrapped := &DB{db}
	if err := wrapped.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return wrapped, nil
}

// RunMigrations creates the history tables when they do not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS rounds (
    position INTEGER PRIMARY KEY,
    table_count INTEGER NOT NULL,
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS seats (
    round_position INTEGER NOT NULL,
    table_index INTEGER NOT NULL,
    seat_index INTEGER NOT NULL,
    participant TEXT NOT NULL,
    PRIMARY KEY (round_position, table_index, seat_index),
    FOREIGN KEY (round_position) REFERENCES rounds(position) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_seats_participant ON seats(participant);
`

	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("run history migrations: %w", err)
	}

	return nil
}
