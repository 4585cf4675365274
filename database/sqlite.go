package database

import (
	"context"
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		title TEXT NOT NULL DEFAULT '',
		"order" INTEGER NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS todos_user_id_idx ON todos (user_id);
	`

var sqlite = dialect{
	name:      "SQLite",
	driver:    "sqlite3",
	schema:    sqliteSchema,
	maxConns:  1,
	violation: sqliteViolation,
	offline:   sqliteOffline,
}

// OpenSQLite mở file SQLite (hoặc ":memory:") với foreign key được bật.
// Pool chỉ giữ một kết nối vì SQLite ghi tuần tự và ":memory:" là riêng cho từng kết nối.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := open(ctx, sqlite, sqliteDSN(path))
	if err != nil {
		return nil, err
	}
	return newStore(ctx, db, sqlite)
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") || strings.Contains(path, "_fk=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func sqliteViolation(err error) violation {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return noViolation
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return uniqueViolation
	case sqlite3.ErrConstraintForeignKey:
		return foreignKeyViolation
	}
	return noViolation
}

func sqliteOffline(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked ||
		sqliteErr.Code == sqlite3.ErrCantOpen
}
