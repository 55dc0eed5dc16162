// Package store persists classified ingredient records in SQLite, keyed by
// normalized name, with confidence-and-provenance-weighted upsert semantics.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidRecord marks a record that cannot be persisted (missing or
	// out-of-range required fields). It fails that single record only.
	ErrInvalidRecord = errors.New("invalid ingredient record")
	// ErrUnavailable marks an unreachable underlying store; fatal for the call.
	ErrUnavailable = errors.New("ingredient store unavailable")
)

// Source provenance tags, in descending conflict-resolution priority.
const (
	SourceCurated       = "curated"
	SourceUSDA          = "usda"
	SourceOpenFoodFacts = "openfoodfacts"
	SourceManual        = "manual"
)

// SourceWeight returns the conflict-resolution weight for a provenance tag.
// Unrecognized sources weigh the same as manual entries.
func SourceWeight(source string) float64 {
	switch source {
	case SourceCurated:
		return 3
	case SourceUSDA:
		return 2
	default:
		return 1
	}
}

// Record is one persisted ingredient. Unknown vegan status is never stored;
// a Record's Vegan field is a settled true/false.
type Record struct {
	Name        string   `json:"name"`
	Vegan       bool     `json:"vegan"`
	Category    string   `json:"category"`
	Substitutes []string `json:"substitutes"`
	CommonUses  []string `json:"common_uses,omitempty"`
	Source      string   `json:"source"`
	Confidence  float64  `json:"confidence"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}

type row struct {
	Name        string  `db:"name"`
	Vegan       bool    `db:"vegan"`
	Category    string  `db:"category"`
	Substitutes string  `db:"substitutes"`
	CommonUses  string  `db:"common_uses"`
	Source      string  `db:"source"`
	Confidence  float64 `db:"confidence"`
	CreatedAt   int64   `db:"created_at"`
	UpdatedAt   int64   `db:"updated_at"`
}

// Store is the SQLite-backed ingredient record store.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// ingredients table exists.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ingredient store: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS ingredients (
		name        TEXT PRIMARY KEY,
		vegan       INTEGER NOT NULL,
		category    TEXT NOT NULL,
		substitutes TEXT NOT NULL DEFAULT '[]',
		common_uses TEXT NOT NULL DEFAULT '[]',
		source      TEXT NOT NULL,
		confidence  REAL NOT NULL,
		created_at  INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_ingredients_category ON ingredients(category);`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ingredients table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func validate(rec *Record) error {
	name := strings.TrimSpace(rec.Name)
	if len(name) < 2 {
		return fmt.Errorf("%w: missing or too-short name %q", ErrInvalidRecord, rec.Name)
	}
	if rec.Confidence < 0.1 || rec.Confidence > 1.0 {
		return fmt.Errorf("%w: confidence %v outside [0.1, 1.0]", ErrInvalidRecord, rec.Confidence)
	}
	if rec.Source == "" {
		return fmt.Errorf("%w: missing source", ErrInvalidRecord)
	}
	return nil
}

// Upsert inserts a record, or replaces the existing record of the same name
// when incoming confidence x source weight is greater than or equal to the
// existing score (ties favor the incoming record). Replacement is wholesale;
// there is no field-level merge. Returns whether the record was applied.
func (s *Store) Upsert(ctx context.Context, rec *Record) (bool, error) {
	if err := validate(rec); err != nil {
		return false, err
	}

	stored := *rec
	stored.Name = strings.ToLower(strings.TrimSpace(stored.Name))
	if stored.Category == "" {
		stored.Category = "other"
	}
	if stored.Vegan {
		// vegan records carry no substitutes
		stored.Substitutes = nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%w: begin upsert: %v", ErrUnavailable, err)
	}
	defer tx.Rollback()

	var existing struct {
		Confidence float64 `db:"confidence"`
		Source     string  `db:"source"`
		CreatedAt  int64   `db:"created_at"`
	}
	now := time.Now().Unix()
	createdAt := now

	err = tx.GetContext(ctx, &existing,
		`SELECT confidence, source, created_at FROM ingredients WHERE name = ?`, stored.Name)
	switch {
	case err == nil:
		incoming := stored.Confidence * SourceWeight(stored.Source)
		current := existing.Confidence * SourceWeight(existing.Source)
		if incoming < current {
			return false, nil
		}
		createdAt = existing.CreatedAt
	case errors.Is(err, sql.ErrNoRows):
		// plain insert
	default:
		return false, fmt.Errorf("%w: read existing %q: %v", ErrUnavailable, stored.Name, err)
	}

	subs, uses, err := encodeLists(&stored)
	if err != nil {
		return false, err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO ingredients
			(name, vegan, category, substitutes, common_uses, source, confidence, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stored.Name, stored.Vegan, stored.Category, subs, uses,
		stored.Source, stored.Confidence, createdAt, now)
	if err != nil {
		return false, fmt.Errorf("%w: write %q: %v", ErrUnavailable, stored.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%w: commit %q: %v", ErrUnavailable, stored.Name, err)
	}
	return true, nil
}

// BulkResult reports the outcome of a BulkUpsert.
type BulkResult struct {
	Inserted int `json:"inserted"`
	Errors   int `json:"errors"`
}

// BulkUpsert applies Upsert per record. Malformed records are counted and
// skipped, never failing the batch; only store unavailability aborts.
func (s *Store) BulkUpsert(ctx context.Context, recs []*Record) (BulkResult, error) {
	var res BulkResult
	for _, rec := range recs {
		applied, err := s.Upsert(ctx, rec)
		switch {
		case errors.Is(err, ErrInvalidRecord):
			res.Errors++
		case err != nil:
			return res, err
		case applied:
			res.Inserted++
		}
	}
	return res, nil
}

// Get returns the record for a normalized name, or nil when absent.
func (s *Store) Get(ctx context.Context, name string) (*Record, error) {
	var r row
	err := s.db.GetContext(ctx, &r,
		`SELECT name, vegan, category, substitutes, common_uses, source, confidence, created_at, updated_at
		 FROM ingredients WHERE name = ?`, strings.ToLower(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %v", ErrUnavailable, name, err)
	}
	return decodeRow(&r)
}

func encodeLists(rec *Record) (subs, uses string, err error) {
	sb, err := json.Marshal(emptyIfNil(rec.Substitutes))
	if err != nil {
		return "", "", fmt.Errorf("%w: marshal substitutes: %v", ErrInvalidRecord, err)
	}
	ub, err := json.Marshal(emptyIfNil(rec.CommonUses))
	if err != nil {
		return "", "", fmt.Errorf("%w: marshal common uses: %v", ErrInvalidRecord, err)
	}
	return string(sb), string(ub), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func decodeRow(r *row) (*Record, error) {
	rec := &Record{
		Name:       r.Name,
		Vegan:      r.Vegan,
		Category:   r.Category,
		Source:     r.Source,
		Confidence: r.Confidence,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(r.Substitutes), &rec.Substitutes); err != nil {
		return nil, fmt.Errorf("decode substitutes for %q: %w", r.Name, err)
	}
	if err := json.Unmarshal([]byte(r.CommonUses), &rec.CommonUses); err != nil {
		return nil, fmt.Errorf("decode common uses for %q: %w", r.Name, err)
	}
	return rec, nil
}

func decodeRows(rs []row) ([]*Record, error) {
	recs := make([]*Record, 0, len(rs))
	for i := range rs {
		rec, err := decodeRow(&rs[i])
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
