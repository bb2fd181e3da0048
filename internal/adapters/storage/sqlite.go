package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// SQLiteKV is a KV backed by a single sqlite table.
type SQLiteKV struct {
	conn *sql.DB
	now  func() time.Time
}

// OpenSQLite opens or creates the sqlite database at path and runs migrations.
func OpenSQLite(path string) (*SQLiteKV, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serialises writers; a single connection keeps :memory: databases shared.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	kv := &SQLiteKV{conn: conn, now: time.Now}
	if err := kv.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return kv, nil
}

func (s *SQLiteKV) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
	}

	for _, q := range queries {
		if _, err := s.conn.Exec(q); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string

	err := s.conn.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}

	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

// Set stores value under key.
func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), s.now().UTC().Format(time.RFC3339Nano))

	return err
}

// Ping checks the connection.
func (s *SQLiteKV) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the connection.
func (s *SQLiteKV) Close() error {
	return s.conn.Close()
}

// Driver names the backend.
func (s *SQLiteKV) Driver() string {
	return "sqlite"
}
