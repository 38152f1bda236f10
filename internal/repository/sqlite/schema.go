package sqlite

import (
	"context"
	"database/sql"
)

// Migrate creates the tables when they do not exist yet. List columns hold JSON arrays.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS companies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	size TEXT NOT NULL,
	logo TEXT NULL,
	website TEXT NULL,
	location TEXT NOT NULL DEFAULT '',
	founded INTEGER NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	company TEXT NOT NULL,
	company_id INTEGER NULL,
	location TEXT NOT NULL,
	type TEXT NOT NULL,
	level TEXT NOT NULL,
	category TEXT NOT NULL,
	salary_min INTEGER NULL,
	salary_max INTEGER NULL,
	skills TEXT NOT NULL DEFAULT '[]',
	requirements TEXT NOT NULL DEFAULT '[]',
	benefits TEXT NOT NULL DEFAULT '[]',
	is_active BOOLEAN NOT NULL DEFAULT 1,
	posted_at TIMESTAMP NOT NULL,
	expires_at TIMESTAMP NULL,
	FOREIGN KEY(company_id) REFERENCES companies(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_jobs_active_posted ON jobs (is_active, posted_at);

CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	full_name TEXT NOT NULL,
	profile_image TEXT NULL,
	bio TEXT NULL,
	location TEXT NULL,
	skills TEXT NOT NULL DEFAULT '[]',
	experience TEXT NULL,
	is_recruiter BOOLEAN NOT NULL DEFAULT 0,
	cv_url TEXT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	job_id INTEGER NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	cover_letter TEXT NULL,
	applied_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS bookmarks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	job_id INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_user_job ON bookmarks (user_id, job_id);
`)
	return err
}
