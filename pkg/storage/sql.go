package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const kvSchema = `CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const (
	kvSelect = `SELECT value FROM kv WHERE key = ?`
	kvUpsert = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// SQL stores keys in a single kv table.
type SQL struct {
	db *sql.DB
}

var _ Store = (*SQL)(nil)

// NewSQL bootstraps the kv table on db.
func NewSQL(ctx context.Context, db *sql.DB) (*SQL, error) {
	if db == nil {
		return nil, errors.New("storage: db is nil")
	}
	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		return nil, fmt.Errorf("storage: create kv table: %w", err)
	}
	return &SQL{db: db}, nil
}

// OpenSQLite opens (or creates) a SQLite database at path and returns a SQL
// store backed by it.
func OpenSQLite(ctx context.Context, path string) (*SQL, error) {
	if path == "" {
		return nil, errors.New("storage: sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	store, err := NewSQL(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var value string
	err := s.db.QueryRowContext(ctx, kvSelect, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := s.db.ExecContext(ctx, kvUpsert, key, value); err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
