package store

import (
	"database/sql"
	"fmt"
)

// portfolioTables is the full per-user schema. Statements are idempotent so
// EnsureSchema is safe to run on every open.
var portfolioTables = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		property_id TEXT PRIMARY KEY,
		owner_name TEXT,
		address TEXT,
		monthly_rent REAL,
		monthly_mortgage REAL,
		status TEXT,
		bedrooms INTEGER,
		living_rooms INTEGER,
		kitchens INTEGER,
		house_type TEXT,
		bathrooms INTEGER,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		property_id TEXT,
		lease_start_date TEXT,
		lease_end_date TEXT,
		deposit_amount REAL,
		documents TEXT,
		payment_history TEXT,
		comm_preferences TEXT,
		last_contact_date TEXT,
		last_contact_type TEXT,
		email_notifications INTEGER DEFAULT 1,
		sms_notifications INTEGER DEFAULT 0,
		FOREIGN KEY (property_id) REFERENCES properties(property_id)
	)`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id TEXT,
		description TEXT,
		status TEXT,
		priority TEXT,
		reported_date TEXT,
		completed_date TEXT,
		cost REAL,
		notes TEXT,
		scheduled_date TEXT,
		contractor_name TEXT,
		FOREIGN KEY (property_id) REFERENCES properties(property_id)
	)`,
	`CREATE TABLE IF NOT EXISTS rent_payments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tenant_id INTEGER,
		amount REAL,
		payment_date TEXT,
		payment_method TEXT,
		notes TEXT,
		FOREIGN KEY (tenant_id) REFERENCES tenants(id)
	)`,
	`CREATE TABLE IF NOT EXISTS property_expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id TEXT,
		description TEXT,
		amount REAL,
		expense_date TEXT,
		category TEXT,
		notes TEXT,
		FOREIGN KEY (property_id) REFERENCES properties(property_id)
	)`,
	`CREATE TABLE IF NOT EXISTS rent_payment_dates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id TEXT,
		payment_date TEXT,
		amount REAL,
		status TEXT,
		notes TEXT,
		FOREIGN KEY (property_id) REFERENCES properties(property_id)
	)`,
	`CREATE TABLE IF NOT EXISTS property_photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id TEXT,
		photo_path TEXT,
		description TEXT,
		upload_date TEXT,
		FOREIGN KEY (property_id) REFERENCES properties(property_id)
	)`,
}

const usersTable = `CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password TEXT NOT NULL,
	email TEXT,
	role TEXT DEFAULT 'user'
)`

// EnsureSchema creates every portfolio table if missing.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range portfolioTables {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// EnsureUsersSchema creates the credentials table if missing.
func EnsureUsersSchema(db *sql.DB) error {
	if _, err := db.Exec(usersTable); err != nil {
		return fmt.Errorf("failed to create users schema: %w", err)
	}
	return nil
}
