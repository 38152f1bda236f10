package database

import (
	"database/sql"

	"jobflix-backend/pkg/logger"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a SQLite database with foreign keys enabled. The pool is capped at
// one connection: SQLite has a single writer and ":memory:" databases are per connection.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Log.Info("database connection established", "driver", "sqlite", "path", path)
	return db, nil
}
