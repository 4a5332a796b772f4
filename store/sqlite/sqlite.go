/*
Package sqlite provides SQLite-backed persistence for named deltas.

PURPOSE:
  Stores delta definitions (name + config JSON) so clients can register a
  delta once and apply/convert it by id. The config blob is the same
  DeltaJSON shape the API accepts inline; it is validated through the
  factory before it ever reaches this package.

KEY TABLE:
  deltas: id, name, config_json, created_at

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL, database-level
  concurrency control would take over.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/deltas.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  Use ":memory:" for tests.

SEE ALSO:
  - api/handlers.go: The only consumer
  - factory/delta.go: Validates config JSON before storage
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DeltaRecord is a stored named delta definition.
type DeltaRecord struct {
	ID         string
	Name       string
	ConfigJSON string
	CreatedAt  time.Time
}

// Store persists named deltas in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
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
	CREATE TABLE IF NOT EXISTS deltas (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_deltas_name ON deltas(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveDelta inserts a named delta definition.
func (s *Store) SaveDelta(ctx context.Context, rec DeltaRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deltas (id, name, config_json, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.ConfigJSON, rec.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save delta %s: %w", rec.ID, err)
	}
	return nil
}

// GetDelta returns the delta with the given id, or nil when absent.
func (s *Store) GetDelta(ctx context.Context, id string) (*DeltaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, config_json, created_at FROM deltas WHERE id = ?`, id)

	rec, err := scanDelta(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delta %s: %w", id, err)
	}
	return rec, nil
}

// ListDeltas returns all stored deltas, newest first.
func (s *Store) ListDeltas(ctx context.Context) ([]DeltaRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, config_json, created_at FROM deltas ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list deltas: %w", err)
	}
	defer rows.Close()

	var records []DeltaRecord
	for rows.Next() {
		rec, err := scanDelta(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delta: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// DeleteDelta removes a stored delta. Returns false when it did not exist.
func (s *Store) DeleteDelta(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM deltas WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete delta %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelta(row rowScanner) (*DeltaRecord, error) {
	var rec DeltaRecord
	var createdAt string
	if err := row.Scan(&rec.ID, &rec.Name, &rec.ConfigJSON, &createdAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}
