package ingest

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Source is a row from the ingest_sources table: one registered adapter and
// the counts of its most recent run.
type Source struct {
	AdapterID   string
	Kind        string
	Description string
	LastRun     *int64
	Processed   int
	Inserted    int
	Errors      int
	UpdatedAt   int64
}

// SourceDB tracks registered ingest sources and their last-run bookkeeping.
type SourceDB struct {
	db *sql.DB
}

// OpenSourceDB opens (or creates) the SQLite database at path and ensures the
// ingest_sources table exists.
func OpenSourceDB(path string) (*SourceDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open source db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS ingest_sources (
		adapter_id  TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		description TEXT NOT NULL,
		last_run    INTEGER,
		processed   INTEGER NOT NULL DEFAULT 0,
		inserted    INTEGER NOT NULL DEFAULT 0,
		errors      INTEGER NOT NULL DEFAULT 0,
		updated_at  INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ingest_sources table: %w", err)
	}

	return &SourceDB{db: db}, nil
}

// Close closes the underlying database.
func (s *SourceDB) Close() error {
	return s.db.Close()
}

// Seed inserts default rows for each adapter (INSERT OR IGNORE, so existing
// bookkeeping survives restarts).
func (s *SourceDB) Seed(adapters []Adapter) error {
	const q = `INSERT OR IGNORE INTO ingest_sources
		(adapter_id, kind, description, updated_at)
		VALUES (?, ?, ?, ?)`

	now := time.Now().Unix()
	for _, a := range adapters {
		if _, err := s.db.Exec(q, a.ID(), a.Kind(), a.Description(), now); err != nil {
			return fmt.Errorf("seed %s: %w", a.ID(), err)
		}
	}
	return nil
}

// RecordRun persists the counts of a completed pipeline run for an adapter.
func (s *SourceDB) RecordRun(adapterID string, res Result) error {
	now := time.Now().Unix()
	r, err := s.db.Exec(
		`UPDATE ingest_sources
		 SET last_run = ?, processed = ?, inserted = ?, errors = ?, updated_at = ?
		 WHERE adapter_id = ?`,
		now, res.Processed, res.Inserted, res.Errors, now, adapterID,
	)
	if err != nil {
		return fmt.Errorf("record run for %s: %w", adapterID, err)
	}
	n, _ := r.RowsAffected()
	if n == 0 {
		return fmt.Errorf("adapter %s not found in ingest_sources", adapterID)
	}
	return nil
}

// ListSources returns all rows from ingest_sources ordered by adapter_id.
func (s *SourceDB) ListSources() ([]Source, error) {
	rows, err := s.db.Query(`SELECT adapter_id, kind, description, last_run,
		processed, inserted, errors, updated_at
		FROM ingest_sources ORDER BY adapter_id`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var src Source
		if err := rows.Scan(&src.AdapterID, &src.Kind, &src.Description, &src.LastRun,
			&src.Processed, &src.Inserted, &src.Errors, &src.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan source: %w", err)
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}
