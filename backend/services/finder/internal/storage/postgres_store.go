package storage

import (
	"context"
	"database/sql"
)

var postgresDialect = sqlDialect{
	name: "postgres",
	schema: `
		CREATE TABLE IF NOT EXISTS ecf_kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`,
	get: `SELECT value FROM ecf_kv WHERE key = $1`,
	upsert: `
		INSERT INTO ecf_kv (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`,
	delete: `DELETE FROM ecf_kv WHERE key = $1`,
}

// NewPostgresStore creates the key/value table if missing and returns a store over db.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*SQLStore, error) {
	return newSQLStore(ctx, db, postgresDialect)
}
