// Package storage provides the single key-value slot the persistence loop
// writes snapshots to. Backends: in-memory, one file per key, and SQL
// (SQLite through modernc.org/sqlite).
package storage

import (
	"context"
	"errors"
)

// DefaultKey is the slot the structured report snapshot is stored under.
const DefaultKey = "report"

// ErrEmptyKey is returned when a key is blank.
var ErrEmptyKey = errors.New("storage: key is required")

// Store reads and overwrites text values by key.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
	Close() error
}
