package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS documents (
	name     TEXT PRIMARY KEY,
	html     BLOB NOT NULL,
	saved_at TEXT NOT NULL
)`

// SQLiteStore keeps documents as rows of a single table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and its documents
// table.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ioFailed("open", path, err)
	}
	// A single connection serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, ioFailed("open", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context, name string) ([]byte, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	var data []byte
	err = s.db.QueryRowContext(ctx, `SELECT html FROM documents WHERE name = ?`, clean).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, ioFailed("load", name, err)
	}
	return data, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, name string, data []byte) error {
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (name, html, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET html = excluded.html, saved_at = excluded.saved_at`,
		clean, data, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return ioFailed("save", name, err)
	}
	return nil
}

// Names lists the stored documents in name order.
func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM documents ORDER BY name`)
	if err != nil {
		return nil, ioFailed("list", "", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, ioFailed("list", "", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, ioFailed("list", "", err)
	}
	return names, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
