package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/blackwell-systems/shelfscribe/internal/util"
	_ "modernc.org/sqlite"
)

const (
	sqliteFile   = "shelfscribe.db"
	createKVStmt = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
	upsertKVStmt = `INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

type sqliteBackend struct {
	db   *sql.DB
	path string
}

// OpenSQLite keeps records in a single-table SQLite database under dir.
func OpenSQLite(dir string) (Backend, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("storage: ensure dir: %w", err)
	}
	path := filepath.Join(dir, sqliteFile)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open sqlite: %w", err)
	}
	if _, err := db.Exec(createKVStmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create schema: %w", err)
	}
	return &sqliteBackend{db: db, path: path}, nil
}

func (b *sqliteBackend) Get(key string) ([]byte, error) {
	var val string
	err := b.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return []byte(val), nil
}

func (b *sqliteBackend) Put(key string, value []byte) error {
	if _, err := b.db.Exec(upsertKVStmt, key, string(value)); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

func (b *sqliteBackend) Path() string {
	return b.path
}

func (b *sqliteBackend) Close() error {
	return b.db.Close()
}
