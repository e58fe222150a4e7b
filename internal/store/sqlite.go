package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore is the durable key/value store backed by a single SQLite file.
type SQLiteStore struct {
	db   *sqlx.DB
	path string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
// It applies pragmas and runs migrations before returning.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbPath = expandHome(dbPath)

	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	raw, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// :memory: databases are per-connection.
	if dbPath == ":memory:" {
		raw.SetMaxOpenConns(1)
	}

	if err := enablePragmas(raw); err != nil {
		raw.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(raw); err != nil {
		raw.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: sqlx.NewDb(raw, "sqlite"), path: dbPath}, nil
}

// enablePragmas sets SQLite pragmas for durability and concurrent readers.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Path returns the resolved database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// SchemaVersion returns the applied goose migration version.
func (s *SQLiteStore) SchemaVersion() (int64, error) {
	return SchemaVersion(s.db.DB)
}

// Read returns the value stored under key.
func (s *SQLiteStore) Read(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv_entries WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("key %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read key %q: %w", key, err)
	}
	return value, nil
}

// Write stores value under key, replacing any previous value.
func (s *SQLiteStore) Write(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

// Remove deletes key if present.
func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove key %q: %w", key, err)
	}
	return nil
}

// Keys returns all stored keys in ascending order.
func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	if err := s.db.SelectContext(ctx, &keys, `SELECT key FROM kv_entries ORDER BY key`); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Clear removes every key.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries`)
	if err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	n, _ := result.RowsAffected()
	slog.Info("store cleared",
		"component", "store",
		"action", "clear",
		"removed", n,
	)
	return nil
}

// LastModified returns the most recent write time across all keys. ok is
// false when the store is empty.
func (s *SQLiteStore) LastModified(ctx context.Context) (t time.Time, ok bool, err error) {
	var latest sql.NullString
	if err := s.db.GetContext(ctx, &latest, `SELECT MAX(updated_at) FROM kv_entries`); err != nil {
		return time.Time{}, false, fmt.Errorf("last modified: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	t, err = time.Parse(time.RFC3339Nano, latest.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse updated_at %q: %w", latest.String, err)
	}
	return t, true, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// expandHome resolves a leading ~/ against the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

var _ Store = (*SQLiteStore)(nil)
