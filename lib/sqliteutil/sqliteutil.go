package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// OpenDB opens a local sqlite file (or `:memory:`) or a remote libsql
// url and applies the given schema. schemas are expected to be written
// with `IF NOT EXISTS` guards; an "already exists" error is tolerated
// so reopening an existing database is a no-op.
func OpenDB(schema, path string) (*sql.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(path, "libsql://") ||
		strings.HasPrefix(path, "ws://") ||
		strings.HasPrefix(path, "wss://") {
		driver = "libsql"
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every pooled connection would otherwise see its own empty db
		db.SetMaxOpenConns(1)
	}
	if schema == "" {
		return db, nil
	}

	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}
	return db, nil
}
