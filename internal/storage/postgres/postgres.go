// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface using a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/daojo/internal/models"
	"github.com/mmynk/daojo/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// maxAttempts bounds how often Atomic retries a transaction aborted by a
// serialization failure or deadlock.
const maxAttempts = 3

// Store implements storage.Store on PostgreSQL. Every Atomic call runs at
// SERIALIZABLE isolation.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to connString and applies the schema.
func New(ctx context.Context, connString string) (*Store, error) {
	if connString == "" {
		return nil, fmt.Errorf("postgres: empty connection string")
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: apply schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Atomic runs fn in a SERIALIZABLE transaction, retrying when PostgreSQL
// aborts it with a serialization failure or deadlock.
func (s *Store) Atomic(ctx context.Context, fn func(tx storage.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = s.atomicOnce(ctx, fn)
		if !isRetryable(err) {
			return err
		}
	}
	return err
}

func (s *Store) atomicOnce(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

func isRetryable(err error) bool {
	switch pgCode(err) {
	case "40001", "40P01":
		return true
	}
	return false
}

func rosterColumns(r models.Roster) (string, string, string) {
	return r.Slots[0], r.Slots[1], r.Slots[2]
}

func scanRoster(slots ...string) models.Roster {
	var ids []string
	for _, s := range slots {
		if s != "" {
			ids = append(ids, s)
		}
	}
	return models.NewRoster(ids...)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS circles (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    invite_code TEXT NOT NULL UNIQUE,
    contribution_amount BIGINT NOT NULL CHECK (contribution_amount >= 0),
    creator TEXT NOT NULL,
    member1 TEXT NOT NULL DEFAULT '',
    member2 TEXT NOT NULL DEFAULT '',
    member3 TEXT NOT NULL DEFAULT '',
    bump SMALLINT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS funding_requests (
    id TEXT PRIMARY KEY,
    circle_id TEXT NOT NULL REFERENCES circles(id),
    requester TEXT NOT NULL,
    amount BIGINT NOT NULL CHECK (amount >= 0),
    description TEXT NOT NULL,
    votes_for INTEGER NOT NULL DEFAULT 0,
    votes_against INTEGER NOT NULL DEFAULT 0,
    voter1 TEXT NOT NULL DEFAULT '',
    voter2 TEXT NOT NULL DEFAULT '',
    voter3 TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK (status IN ('ACTIVE', 'APPROVED', 'REJECTED', 'DISBURSED')),
    bump SMALLINT NOT NULL,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('wallet', 'treasury')),
    balance BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS transfers (
    seq BIGSERIAL,
    id TEXT PRIMARY KEY,
    circle_id TEXT NOT NULL DEFAULT '',
    request_id TEXT NOT NULL DEFAULT '',
    from_account_id TEXT NOT NULL DEFAULT '',
    to_account_id TEXT NOT NULL DEFAULT '',
    amount BIGINT NOT NULL CHECK (amount >= 0),
    kind TEXT NOT NULL,
    created_by TEXT NOT NULL,
    created_at BIGINT NOT NULL,
    CHECK (from_account_id <> '' OR to_account_id <> '')
);

-- Withdrawals have no destination account.
ALTER TABLE transfers DROP CONSTRAINT IF EXISTS transfers_to_account_id_fkey;
ALTER TABLE transfers ALTER COLUMN to_account_id SET DEFAULT '';

CREATE INDEX IF NOT EXISTS idx_funding_requests_circle_id ON funding_requests(circle_id);
CREATE INDEX IF NOT EXISTS idx_accounts_owner ON accounts(owner);
CREATE INDEX IF NOT EXISTS idx_transfers_circle_id ON transfers(circle_id);
`
