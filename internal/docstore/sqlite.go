package docstore

import (
	"context"
	"database/sql"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/sqlite"
)

// SQLite stores documents in the documents table.
type SQLite struct {
	db *sqlite.Database
}

// NewSQLite returns a store backed by db.
func NewSQLite(db *sqlite.Database) *SQLite {
	return &SQLite{db: db}
}

// Get reads the document row.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	var body []byte
	err := s.db.ReadOnly.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(ErrNotFound, "query document", slogKey(key))
	}
	if err != nil {
		return nil, errors.Wrap(err, "query document", slogKey(key))
	}
	return body, nil
}

// Put upserts the document row.
func (s *SQLite) Put(ctx context.Context, key string, body []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO documents (key, body) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET
			body = excluded.body,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ')`, key, body)
	if err != nil {
		return errors.Wrap(err, "upsert document", slogKey(key))
	}
	return nil
}
