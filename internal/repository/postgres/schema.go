package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	industry    TEXT NOT NULL DEFAULT '',
	size        TEXT NOT NULL,
	logo        TEXT,
	website     TEXT,
	location    TEXT NOT NULL DEFAULT '',
	founded     INTEGER,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS jobs (
	id           BIGSERIAL PRIMARY KEY,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL,
	company      TEXT NOT NULL,
	company_id   BIGINT REFERENCES companies(id) ON DELETE SET NULL,
	location     TEXT NOT NULL,
	type         TEXT NOT NULL,
	level        TEXT NOT NULL,
	category     TEXT NOT NULL,
	salary_min   INTEGER,
	salary_max   INTEGER,
	skills       TEXT[] NOT NULL DEFAULT '{}',
	requirements TEXT[] NOT NULL DEFAULT '{}',
	benefits     TEXT[] NOT NULL DEFAULT '{}',
	is_active    BOOLEAN NOT NULL DEFAULT TRUE,
	posted_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	expires_at   TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_jobs_active_posted ON jobs (is_active, posted_at DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_company_id ON jobs (company_id);

CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password      TEXT NOT NULL,
	full_name     TEXT NOT NULL,
	profile_image TEXT,
	bio           TEXT,
	location      TEXT,
	skills        TEXT[] NOT NULL DEFAULT '{}',
	experience    TEXT,
	is_recruiter  BOOLEAN NOT NULL DEFAULT FALSE,
	cv_url        TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS applications (
	id           BIGSERIAL PRIMARY KEY,
	user_id      BIGINT NOT NULL,
	job_id       BIGINT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'pending',
	cover_letter TEXT,
	applied_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications (job_id);
CREATE INDEX IF NOT EXISTS idx_applications_user_id ON applications (user_id);

CREATE TABLE IF NOT EXISTS bookmarks (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL,
	job_id     BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_bookmarks_user_job ON bookmarks (user_id, job_id);
`

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
