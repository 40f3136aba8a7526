package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/erazemk/vitrina/internal/model"
)

// SQLite stores values in the settings table of a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite returns a store backed by db. The schema must already exist
// (see db.EnsureSchema).
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Get returns the value stored under key.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, model.StorageError("reading setting", err)
	}
	return value, true, nil
}

// Set stores value under key.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return model.StorageError("writing setting", err)
	}
	return nil
}
