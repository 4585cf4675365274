package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver cho database/sql
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		email VARCHAR(255) UNIQUE NOT NULL,
		password TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS todos (
		id VARCHAR(50) PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		title VARCHAR(255) NOT NULL DEFAULT '',
		"order" INTEGER NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS todos_user_id_idx ON todos (user_id);
	`

var postgres = dialect{
	name:      "PostgreSQL",
	driver:    "pgx",
	schema:    postgresSchema,
	numbered:  true,
	violation: postgresViolation,
	offline:   postgresOffline,
}

// OpenPostgres kết nối tới PostgreSQL qua pgx
func OpenPostgres(ctx context.Context, uri string) (*Store, error) {
	db, err := open(ctx, postgres, uri)
	if err != nil {
		return nil, err
	}
	return newStore(ctx, db, postgres)
}

func postgresViolation(err error) violation {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return noViolation
	}
	switch pgErr.Code {
	case "23505":
		return uniqueViolation
	case "23503":
		return foreignKeyViolation
	}
	return noViolation
}

func postgresOffline(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	// class 08: connection exception, 57P: operator intervention (shutdown)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:3] == "57P")
	}
	return false
}
