package storage

import (
	"context"
	"database/sql"
)

var sqliteDialect = sqlDialect{
	name: "sqlite",
	schema: `
		CREATE TABLE IF NOT EXISTS ecf_kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`,
	get: `SELECT value FROM ecf_kv WHERE key = ?`,
	upsert: `
		INSERT INTO ecf_kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`,
	delete: `DELETE FROM ecf_kv WHERE key = ?`,
}

// NewSQLiteStore creates the key/value table if missing and returns a store over db.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	return newSQLStore(ctx, db, sqliteDialect)
}
