// Package sqlite archives runs and accepted incident records in SQLite.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/elephantlog"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory archive.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	started_at     TEXT NOT NULL,
	finished_at    TEXT NOT NULL DEFAULT '',
	accepted       INTEGER NOT NULL DEFAULT 0,
	rejected_date  INTEGER NOT NULL DEFAULT 0,
	rejected_state INTEGER NOT NULL DEFAULT 0,
	fetch_failed   INTEGER NOT NULL DEFAULT 0,
	parse_failed   INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS records (
	id              TEXT PRIMARY KEY,
	run_id          TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	url             TEXT NOT NULL,
	url_hash        TEXT NOT NULL,
	date            TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL,
	district        TEXT NOT NULL DEFAULT '',
	block           TEXT NOT NULL DEFAULT '',
	village         TEXT NOT NULL DEFAULT '',
	elephant_count  INTEGER,
	incident_type   TEXT NOT NULL,
	human_deaths    INTEGER NOT NULL DEFAULT 0,
	elephant_deaths INTEGER NOT NULL DEFAULT 0,
	damage          TEXT NOT NULL DEFAULT '',
	source          TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id);
CREATE INDEX IF NOT EXISTS idx_records_url_hash ON records(url_hash);
CREATE INDEX IF NOT EXISTS idx_records_state ON records(state);
`

// DB is the archive database handle shared by the services.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path, or MemoryPath.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the archive and creates missing tables.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return elephantlog.Errorf(elephantlog.EINTERNAL, "open archive %s: %v", db.path, err)
	}
	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := db.init(conn); err != nil {
		conn.Close()
		return err
	}
	db.db = conn
	return nil
}

func (db *DB) init(conn *sql.DB) error {
	if err := conn.Ping(); err != nil {
		return elephantlog.Errorf(elephantlog.EINTERNAL, "connect to archive %s: %v", db.path, err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	// WAL lets stats read while a run is writing.
	if db.path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			return elephantlog.Errorf(elephantlog.EINTERNAL, "%s: %v", p, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		return elephantlog.Errorf(elephantlog.EINTERNAL, "create schema: %v", err)
	}
	return nil
}

// Close closes the connection. It is a no-op on an unopened DB.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
