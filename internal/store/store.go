// Package store persists claims, evidence, reviews and corrections in SQLite.
//
// The store is the audit trail of the fact-checking pipeline: claims are
// never deleted (evidence and reviews cascade only if a claim row is
// explicitly removed by an operator), review rows are append-only, and every
// write failure propagates to the caller. Silent data loss is the single
// worst failure mode for this component.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClaimNotFound is returned when an operation references a claim id that
// does not exist. Callers must be able to distinguish this from success.
var ErrClaimNotFound = errors.New("claim not found")

// Store wraps a SQLite database holding the four pipeline tables
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and enables
// foreign key enforcement. Pass ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Cascade deletes and referential checks depend on this pragma.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath returns the database location used when none is configured
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".veracity", "veracity.db"), nil
}

// InitSchema creates all tables and indexes if absent. Idempotent; safe to
// call on every process start.
func (s *Store) InitSchema() error {
	if _, err := s.db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
