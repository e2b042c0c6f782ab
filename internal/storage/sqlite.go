package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteBlobs stores blobs in the blobs table created by the
// migrations package.
type SQLiteBlobs struct {
	db  *sql.DB
	ctx context.Context
}

func NewSQLiteBlobs(ctx context.Context, db *sql.DB) *SQLiteBlobs {
	return &SQLiteBlobs{db: db, ctx: ctx}
}

func (s *SQLiteBlobs) Load(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(s.ctx, `
		SELECT value FROM blobs WHERE key = ?
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: loading %q: %w", ErrUnavailable, key, err)
	}
	return value, nil
}

func (s *SQLiteBlobs) Save(key string, value []byte) error {
	_, err := s.db.ExecContext(s.ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("%w: saving %q: %w", ErrUnavailable, key, err)
	}
	return nil
}

func (s *SQLiteBlobs) Remove(key string) error {
	_, err := s.db.ExecContext(s.ctx, `DELETE FROM blobs WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("%w: removing %q: %w", ErrUnavailable, key, err)
	}
	return nil
}
