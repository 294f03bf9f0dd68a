// Package sqlite implements TokenRepository on an embedded SQLite file.
//
// It exists for local development: point DATABASE_URL at a file path instead
// of a postgres:// DSN and no database server is needed. modernc.org/sqlite
// is pure Go, so the binary stays cross-compilable.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the token repository.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an in-memory database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the user_tokens table. CREATE TABLE IF NOT EXISTS keeps
// this safe to run on every start; the postgres store uses goose instead.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_tokens (
			user_id         TEXT    NOT NULL,
			provider        TEXT    NOT NULL,
			encrypted_token TEXT    NOT NULL,
			github_user_id  INTEGER NOT NULL,
			PRIMARY KEY (user_id, provider)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating user_tokens table: %w", err)
	}
	return nil
}
