// Package store provides the relational folder and note repositories over
// database/sql, backed by SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect identifies the SQL flavour of the underlying database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS folders (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	content       TEXT NOT NULL,
	folder_id     INTEGER NOT NULL,
	date_created  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	date_modified DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_notes_folder_id ON notes(folder_id);
`

const postgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS folders (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id            BIGSERIAL PRIMARY KEY,
	title         TEXT NOT NULL,
	content       TEXT NOT NULL,
	folder_id     BIGINT NOT NULL,
	date_created  TIMESTAMPTZ NOT NULL DEFAULT now(),
	date_modified TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_notes_folder_id ON notes(folder_id);
`

// DB wraps a sql.DB with the dialect needed to build queries.
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// ParseURL picks the driver, DSN and dialect for a database URL.
// postgres:// and postgresql:// URLs use pgx; anything else is a SQLite path,
// optionally prefixed with sqlite://.
func ParseURL(url string) (driver, dsn string, d Dialect) {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return "pgx", url, DialectPostgres
	}
	path := strings.TrimPrefix(url, "sqlite://")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "sqlite3", path + sep + "_journal_mode=WAL&_busy_timeout=5000", DialectSQLite
}

// Open opens the database at url and applies the schema.
func Open(ctx context.Context, url string) (*DB, error) {
	driver, dsn, d := ParseURL(url)
	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	schema := sqliteSchemaSQL
	if d == DialectPostgres {
		schema = postgresSchemaSQL
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn, dialect: d}, nil
}

// Dialect returns the SQL flavour in use.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// rebind rewrites ? placeholders into the dialect's form.
func (db *DB) rebind(query string) string {
	return rebind(db.dialect, query)
}

func rebind(d Dialect, query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
