package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tableflip.dev/devo/pkg/entry"
)

const sqliteFile = "journal.sqlite"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS blobs (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

type sqlitePersistence struct {
	db       *sql.DB
	basePath string
	key      string
}

func newSQLite(basePath, key string) (*sqlitePersistence, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(basePath, sqliteFile))
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// One writer keeps the single-blob replace atomic without busy retries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate sqlite: %w", err)
	}
	return &sqlitePersistence{db: db, basePath: basePath, key: key}, nil
}

func (p *sqlitePersistence) Load(ctx context.Context) ([]*entry.Entry, error) {
	var data []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, p.key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: sqlite read %s: %w", p.key, err)
	}
	return decode(data)
}

func (p *sqlitePersistence) Save(ctx context.Context, entries []*entry.Entry) error {
	data, err := encode(entries)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		p.key, data, entry.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("store: sqlite write %s: %w", p.key, err)
	}
	return nil
}

func (p *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	// WAL and journal side files change alongside the database.
	return watchFiles(ctx, p.basePath, func(name string) bool {
		return strings.HasPrefix(name, sqliteFile)
	})
}

func (p *sqlitePersistence) Close() error {
	return p.db.Close()
}
