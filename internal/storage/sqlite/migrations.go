package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Amounts and balances are stored as INTEGER in the smallest token unit.
// Member and voter slots are fixed columns; an empty string marks an open slot.
// An empty transfer endpoint is the outside world (deposit source, withdrawal sink).
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS circles (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    invite_code TEXT NOT NULL UNIQUE,
    contribution_amount INTEGER NOT NULL CHECK (contribution_amount >= 0),
    creator TEXT NOT NULL,
    member1 TEXT NOT NULL DEFAULT '',
    member2 TEXT NOT NULL DEFAULT '',
    member3 TEXT NOT NULL DEFAULT '',
    bump INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS funding_requests (
    id TEXT PRIMARY KEY,
    circle_id TEXT NOT NULL,
    requester TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK (amount >= 0),
    description TEXT NOT NULL,
    votes_for INTEGER NOT NULL DEFAULT 0,
    votes_against INTEGER NOT NULL DEFAULT 0,
    voter1 TEXT NOT NULL DEFAULT '',
    voter2 TEXT NOT NULL DEFAULT '',
    voter3 TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK (status IN ('ACTIVE', 'APPROVED', 'REJECTED', 'DISBURSED')),
    bump INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (circle_id) REFERENCES circles(id)
);

CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('wallet', 'treasury')),
    balance INTEGER NOT NULL DEFAULT 0 CHECK (balance >= 0),
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transfers (
    id TEXT PRIMARY KEY,
    circle_id TEXT NOT NULL DEFAULT '',
    request_id TEXT NOT NULL DEFAULT '',
    from_account_id TEXT NOT NULL DEFAULT '',
    to_account_id TEXT NOT NULL DEFAULT '',
    amount INTEGER NOT NULL CHECK (amount >= 0),
    kind TEXT NOT NULL,
    created_by TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    CHECK (from_account_id <> '' OR to_account_id <> '')
);

CREATE INDEX IF NOT EXISTS idx_funding_requests_circle_id ON funding_requests(circle_id);
CREATE INDEX IF NOT EXISTS idx_accounts_owner ON accounts(owner);
CREATE INDEX IF NOT EXISTS idx_transfers_circle_id ON transfers(circle_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
