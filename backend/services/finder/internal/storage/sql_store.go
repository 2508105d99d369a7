package storage

import (
	"context"
	"database/sql"
	"errors"
)

// sqlDialect holds the statements that differ between database engines.
type sqlDialect struct {
	name   string
	schema string
	get    string
	upsert string
	delete string
}

// SQLStore keeps values in a two-column key/value table.
type SQLStore struct {
	db      *sql.DB
	dialect sqlDialect
}

func newSQLStore(ctx context.Context, db *sql.DB, dialect sqlDialect) (*SQLStore, error) {
	if _, err := db.ExecContext(ctx, dialect.schema); err != nil {
		return nil, unavailable(dialect.name+" migrate", "", err)
	}
	return &SQLStore{db: db, dialect: dialect}, nil
}

// Get reads a value.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	if err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable(s.dialect.name+" get", key, err)
	}
	return []byte(value), nil
}

// Set inserts or replaces a value.
func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, key, string(value)); err != nil {
		return unavailable(s.dialect.name+" set", key, err)
	}
	return nil
}

// Delete removes a value.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.delete, key); err != nil {
		return unavailable(s.dialect.name+" delete", key, err)
	}
	return nil
}

// Close closes the database pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
