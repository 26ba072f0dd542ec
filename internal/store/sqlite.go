// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// =============================================================================
// SQLITE BACKEND
// =============================================================================

// sessionsSlotKey is the only key the store uses; the table stays general
// so future slots (preferences, caches) can share the file.
const sessionsSlotKey = "sessions"

// SQLiteKV stores slots in a small key/value table inside a SQLite file.
// The driver is pure Go, so no cgo toolchain is needed to build.
type SQLiteKV struct {
	db  *sql.DB
	key string
}

// NewSQLiteKV opens (creating if needed) the database at path and ensures
// the kv table exists.
func NewSQLiteKV(path string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// A single writer keeps the semantics identical to the file backend.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteKV{db: db, key: sessionsSlotKey}, nil
}

func (s *SQLiteKV) Load() ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, s.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading slot %q: %w", s.key, err)
	}
	return data, true, nil
}

func (s *SQLiteKV) Store(data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		s.key, data)
	if err != nil {
		return fmt.Errorf("storing slot %q: %w", s.key, err)
	}
	return nil
}

func (s *SQLiteKV) Delete() error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("deleting slot %q: %w", s.key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
