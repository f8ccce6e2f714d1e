// Package sqlite provides a SQLite-backed history store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS history (
	key      TEXT    NOT NULL,
	position INTEGER NOT NULL,
	value    TEXT    NOT NULL,
	PRIMARY KEY (key, position)
);
`

// Store keeps the entered values of each argument in a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (creating when needed) the database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite history: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite history: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite history: open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite history: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite history: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the values stored under key, most recent first.
func (s *Store) Get(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT value FROM history WHERE key = ? ORDER BY position", key)
	if err != nil {
		return nil, fmt.Errorf("sqlite history: query %q: %w", key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("sqlite history: scan %q: %w", key, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite history: read %q: %w", key, err)
	}
	return values, nil
}

// Set replaces the values stored under key.
func (s *Store) Set(ctx context.Context, key string, values []string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite history: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM history WHERE key = ?", key); err != nil {
		return fmt.Errorf("sqlite history: clear %q: %w", key, err)
	}
	for i, v := range values {
		if _, err = tx.ExecContext(ctx,
			"INSERT INTO history (key, position, value) VALUES (?, ?, ?)", key, i, v); err != nil {
			return fmt.Errorf("sqlite history: insert %q: %w", key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite history: commit: %w", err)
	}
	return nil
}

// Keys returns every argument name that has stored history.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT key FROM history ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("sqlite history: list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("sqlite history: scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
