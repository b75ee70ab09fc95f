// Package storage provides database access and repositories
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// New creates a new database connection
func New(databaseURL string) (*DB, error) {
	db, err := sql.Open("sqlite3", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{db}, nil
}

// Migrate runs database migrations
func (db *DB) Migrate() error {
	migrations := []string{
		createUsersTable,
		createSessionsTable,
		createBusinessesTable,
		createInvestmentsTable,
		createPayoutsTable,
		createRatingsTable,
		createNotificationsTable,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	phone TEXT,
	kyc_status TEXT NOT NULL DEFAULT 'pending',
	max_spend_limit TEXT NOT NULL DEFAULT '35',
	current_tier INTEGER NOT NULL DEFAULT 1,
	cooldown_until DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`

const createSessionsTable = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	token TEXT NOT NULL,
	expires_at DATETIME NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users (id)
)`

const createBusinessesTable = `
CREATE TABLE IF NOT EXISTS businesses (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	owner_id TEXT,
	llc_verified INTEGER NOT NULL DEFAULT 0,
	bank_verified INTEGER NOT NULL DEFAULT 0,
	monthly_revenue TEXT NOT NULL DEFAULT '0',
	risk_rating TEXT NOT NULL DEFAULT 'C',
	risk_score INTEGER NOT NULL DEFAULT 70,
	video_url TEXT,
	verification_status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (owner_id) REFERENCES users (id)
)`

const createInvestmentsTable = `
CREATE TABLE IF NOT EXISTS investments (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	business_id TEXT NOT NULL,
	amount TEXT NOT NULL,
	fee_amount TEXT NOT NULL DEFAULT '0',
	status TEXT NOT NULL DEFAULT 'pending_escrow',
	risk_percentage TEXT NOT NULL DEFAULT '0',
	growth_increase TEXT NOT NULL DEFAULT '0',
	expected_return TEXT NOT NULL DEFAULT '0',
	payout_date DATETIME NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users (id),
	FOREIGN KEY (business_id) REFERENCES businesses (id)
)`

const createPayoutsTable = `
CREATE TABLE IF NOT EXISTS payouts (
	id TEXT PRIMARY KEY,
	investment_id TEXT NOT NULL UNIQUE,
	user_id TEXT NOT NULL,
	amount TEXT NOT NULL,
	fee_amount TEXT NOT NULL DEFAULT '0',
	status TEXT NOT NULL DEFAULT 'pending',
	processed_at DATETIME,
	completed_at DATETIME,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (investment_id) REFERENCES investments (id),
	FOREIGN KEY (user_id) REFERENCES users (id)
)`

const createRatingsTable = `
CREATE TABLE IF NOT EXISTS business_ratings (
	id TEXT PRIMARY KEY,
	business_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
	comment TEXT,
	created_at DATETIME NOT NULL,
	UNIQUE (business_id, user_id),
	FOREIGN KEY (business_id) REFERENCES businesses (id),
	FOREIGN KEY (user_id) REFERENCES users (id)
)`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	message TEXT NOT NULL,
	read_at DATETIME,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users (id)
)`
