// Package sqlite stores collections and embedded chunks in SQLite and
// searches them by cosine similarity.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const memoryPath = ":memory:"

// DB is a single-connection SQLite handle shared by the services.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path, or ":memory:" for a private
// in-memory database. Open must be called before use.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, configures the connection and creates missing tables.
func (db *DB) Open() (err error) {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", db.path, err)
	}
	defer func() {
		if err != nil {
			conn.Close()
		}
	}()

	// One connection: SQLite has a single writer and an in-memory database
	// exists only on the connection that created it.
	conn.SetMaxOpenConns(1)

	for _, pragma := range db.pragmas() {
		if _, err := conn.Exec("PRAGMA " + pragma); err != nil {
			return fmt.Errorf("PRAGMA %s: %w", pragma, err)
		}
	}
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	db.db = conn
	return nil
}

func (db *DB) pragmas() []string {
	p := []string{"busy_timeout = 5000", "foreign_keys = ON"}
	if db.path != memoryPath {
		p = append(p, "journal_mode = WAL")
	}
	return p
}

// Close closes the connection. Closing an unopened DB is a no-op.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext runs a query expected to return at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext runs a query returning rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext runs a statement without rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// Embeddings are little-endian float32 blobs. Deleting a collection
// cascades to its chunks.
const schema = `
CREATE TABLE IF NOT EXISTS collections (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chunks (
	id            TEXT PRIMARY KEY,
	collection_id TEXT NOT NULL REFERENCES collections(id) ON DELETE CASCADE,
	content       TEXT NOT NULL,
	content_hash  TEXT NOT NULL DEFAULT '',
	embedding     BLOB NOT NULL,
	source_url    TEXT NOT NULL DEFAULT '',
	title         TEXT NOT NULL DEFAULT '',
	position      INTEGER NOT NULL DEFAULT 0,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks(collection_id, position);
`
