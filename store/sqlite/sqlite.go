/*
Package sqlite provides a SQLite-backed implementation of record.Store.

PURPOSE:
  Drop-in replacement for the in-memory store when calculations should
  survive restarts during development. The same pattern applies to
  PostgreSQL in production - only minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  Records are write-once snapshots:
  - No UPDATE statements on the calculations table
  - No DELETE statements on the calculations table

SCHEMA:
  calculations:
    id           TEXT PRIMARY KEY   opaque calculation id
    created_at   TEXT               RFC3339, for ad hoc queries
    record_json  TEXT               the full record snapshot, verbatim

  The snapshot is stored as one JSON column rather than normalized tables
  because records are only ever read back whole (receipt regeneration),
  and the factors snapshot shape may evolve.

WAL MODE:
  Opened with WAL (Write-Ahead Logging): readers don't block, single
  writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/ecotrip.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - record/store.go: Interface definition
  - record/store/memory.go: Default in-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/olimpus/ecotrip/record"
)

// Store implements record.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Calculations (write-once snapshots)
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		record_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created_at
		ON calculations(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Create inserts a record. The primary key enforces insert-only semantics.
func (s *Store) Create(ctx context.Context, rec record.CalculationRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", rec.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO calculations (id, created_at, record_json) VALUES (?, ?, ?)`,
		rec.ID, rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(payload))
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s", record.ErrDuplicateID, rec.ID)
		}
		return fmt.Errorf("failed to insert record %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record for id, or record.ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, id string) (*record.CalculationRecord, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT record_json FROM calculations WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", record.ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}

	var rec record.CalculationRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("failed to decode record %s: %w", id, err)
	}
	return &rec, nil
}
