// Package sqlite stores circles, requests and the token ledger in a single
// SQLite file using the pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

var _ storage.Store = (*SQLiteStore)(nil)

// dsnPragmas are applied by the driver to every connection it opens.
const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// SQLiteStore implements storage.Store. Writes are serialized through a
// single connection, so Atomic transactions never interleave.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dbPath and migrates it.
func New(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1)

	var fkEnabled bool
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	if !fkEnabled {
		db.Close()
		return nil, fmt.Errorf("open %s: foreign keys are disabled", dbPath)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Atomic runs fn inside a database transaction, committing only if fn
// returns nil.
func (s *SQLiteStore) Atomic(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// sqliteTx implements storage.Tx on top of an open *sql.Tx.
type sqliteTx struct {
	tx *sql.Tx
}

// isUniqueViolation reports whether err is a primary key or unique constraint failure.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}

// rosterColumns flattens a roster into its three slot columns.
func rosterColumns(r models.Roster) (string, string, string) {
	return r.Slots[0], r.Slots[1], r.Slots[2]
}

// scanRoster rebuilds a roster from its slot columns, skipping empty slots.
func scanRoster(slots ...string) models.Roster {
	var ids []string
	for _, s := range slots {
		if s != "" {
			ids = append(ids, s)
		}
	}
	return models.NewRoster(ids...)
}
