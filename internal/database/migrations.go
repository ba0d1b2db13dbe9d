package database

import "database/sql"

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		plan TEXT NOT NULL DEFAULT 'free',
		messages_remaining INTEGER NOT NULL DEFAULT 50,
		ai_enabled INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'car',
		rated_efficiency REAL NOT NULL DEFAULT 0,
		monthly_loan_payment REAL NOT NULL DEFAULT 0,
		monthly_labor_cost REAL NOT NULL DEFAULT 0,
		monthly_maintenance REAL NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS trip_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id),
		record_date TEXT NOT NULL,
		earnings REAL NOT NULL DEFAULT 0,
		distance_km REAL NOT NULL DEFAULT 0,
		fuel_consumed_l REAL NOT NULL DEFAULT 0,
		fuel_cost REAL NOT NULL DEFAULT 0,
		toll_cost REAL NOT NULL DEFAULT 0,
		repair_cost REAL NOT NULL DEFAULT 0,
		food_cost REAL NOT NULL DEFAULT 0,
		misc_cost REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_trip_records_user_id ON trip_records(user_id);
	CREATE INDEX IF NOT EXISTS idx_trip_records_record_date ON trip_records(record_date);
	CREATE INDEX IF NOT EXISTS idx_trip_records_vehicle_id ON trip_records(vehicle_id);
	CREATE INDEX IF NOT EXISTS idx_vehicles_user_id ON vehicles(user_id);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return err
	}

	// Migration: add new columns if they don't exist (for existing databases)
	migrations := []string{
		`ALTER TABLE users ADD COLUMN plan TEXT DEFAULT 'free'`,
		`ALTER TABLE users ADD COLUMN messages_remaining INTEGER DEFAULT 50`,
		`ALTER TABLE users ADD COLUMN ai_enabled INTEGER DEFAULT 1`,
		`ALTER TABLE vehicles ADD COLUMN monthly_maintenance REAL DEFAULT 0`,
		`ALTER TABLE trip_records ADD COLUMN fuel_consumed_l REAL DEFAULT 0`,
	}

	for _, m := range migrations {
		// Ignore errors for columns that already exist
		db.Exec(m)
	}

	return nil
}
