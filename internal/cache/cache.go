// Package cache is a small SQLite-backed append-only log of reduction
// runs, supplemental to the core reduction algorithm (SPEC_FULL.md's
// session-cache addition to spec.md §4.E). It does not affect any
// reduction decision; it is read by `swiftreduce history`.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"swiftreduce/internal/logging"
)

// Run is one completed (or cancelled) reduction run.
type Run struct {
	ID                int64
	StartedAt         int64 // unix seconds
	InitialByteSize    int
	FinalByteSize      int
	InitialArgCount    int
	FinalArgCount      int
	Outcome            string // "success", "cancelled", or an error taxonomy string
}

// Store is a handle on the session cache database.
type Store struct {
	db *sql.DB
}

// Open creates the database file at path (and its parent directory) if
// necessary and ensures the runs table exists. A single `create table if
// not exists` on open is sufficient for this one-table append log; no
// migrations system is needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at INTEGER NOT NULL,
	initial_byte_size INTEGER NOT NULL,
	final_byte_size INTEGER NOT NULL,
	initial_arg_count INTEGER NOT NULL,
	final_arg_count INTEGER NOT NULL,
	outcome TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}

	logging.CacheDebug("opened session cache at %s", path)
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRun records one completed run.
func (s *Store) InsertRun(r Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, initial_byte_size, final_byte_size, initial_arg_count, final_arg_count, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.StartedAt, r.InitialByteSize, r.FinalByteSize, r.InitialArgCount, r.FinalArgCount, r.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs, most recent first, bounded by
// limit (0 means no bound).
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, started_at, initial_byte_size, final_byte_size, initial_arg_count, final_arg_count, outcome
	          FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.InitialByteSize, &r.FinalByteSize, &r.InitialArgCount, &r.FinalArgCount, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
