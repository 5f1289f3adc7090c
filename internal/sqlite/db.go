package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Rounds table
CREATE TABLE IF NOT EXISTS rounds (
    id TEXT PRIMARY KEY,
    budget INTEGER NOT NULL CHECK(budget > 0),
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('PENDING', 'OPEN', 'CLOSED', 'CALCULATED', 'DISTRIBUTED', 'CANCELLED')),
    metadata TEXT,
    proposal_seq INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_round_status ON rounds(status);

-- Proposals table; id is a per-round sequence so ordering by id is creation order
CREATE TABLE IF NOT EXISTS proposals (
    round_id TEXT NOT NULL,
    id INTEGER NOT NULL,
    creator TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    metadata TEXT,
    fund_recipient TEXT NOT NULL,
    collected INTEGER NOT NULL DEFAULT 0 CHECK(collected >= 0),
    match_amount INTEGER,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (round_id, id),
    FOREIGN KEY (round_id) REFERENCES rounds(id)
);

-- Contribution ledger; one cumulative record per (round, proposal, contributor)
CREATE TABLE IF NOT EXISTS contributions (
    round_id TEXT NOT NULL,
    proposal_id INTEGER NOT NULL,
    contributor TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK(amount > 0),
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (round_id, proposal_id, contributor),
    FOREIGN KEY (round_id, proposal_id) REFERENCES proposals(round_id, id)
);
CREATE INDEX IF NOT EXISTS idx_round_contributions ON contributions(round_id);

-- Matching results, one row per calculated round
CREATE TABLE IF NOT EXISTS matching_results (
    round_id TEXT PRIMARY KEY,
    budget INTEGER NOT NULL,
    total_allocated INTEGER NOT NULL,
    leftover INTEGER NOT NULL,
    calculated_at TIMESTAMP NOT NULL,
    FOREIGN KEY (round_id) REFERENCES rounds(id)
);

CREATE TABLE IF NOT EXISTS matching_allocations (
    round_id TEXT NOT NULL,
    proposal_id INTEGER NOT NULL,
    raw_score INTEGER NOT NULL,
    excess INTEGER NOT NULL,
    match_amount INTEGER NOT NULL,
    PRIMARY KEY (round_id, proposal_id),
    FOREIGN KEY (round_id) REFERENCES matching_results(round_id)
);

-- Emitted payout instructions (audit trail; custody is external)
CREATE TABLE IF NOT EXISTS payouts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    round_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('GRANT', 'LEFTOVER', 'REFUND')),
    proposal_id INTEGER,
    recipient TEXT NOT NULL,
    amount INTEGER NOT NULL CHECK(amount > 0),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (round_id) REFERENCES rounds(id)
);
CREATE INDEX IF NOT EXISTS idx_round_payouts ON payouts(round_id);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    identity TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
