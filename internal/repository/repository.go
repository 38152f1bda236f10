// Package repository selects the storage backend configured for the process.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"jobflix-backend/config"
	"jobflix-backend/internal/domain"
	"jobflix-backend/internal/repository/memory"
	"jobflix-backend/internal/repository/postgres"
	"jobflix-backend/internal/repository/sqlite"
	"jobflix-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every store of one backend.
type Repositories struct {
	Driver       string
	Jobs         domain.JobRepository
	Companies    domain.CompanyRepository
	Applications domain.ApplicationRepository
	Bookmarks    domain.BookmarkRepository
	Users        domain.UserRepository

	migrate func(ctx context.Context) error
	ping    func(ctx context.Context) error
	close   func()
}

// New opens the backend named by cfg.StorageDriver.
func New(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return NewPostgres(pool), nil
	case config.StorageSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return NewSQLite(db), nil
	default:
		return NewMemory(memory.NewStore()), nil
	}
}

func NewMemory(store *memory.Store) *Repositories {
	return &Repositories{
		Driver:       config.StorageMemory,
		Jobs:         store.Jobs(),
		Companies:    store.Companies(),
		Applications: store.Applications(),
		Bookmarks:    store.Bookmarks(),
		Users:        store.Users(),
	}
}

func NewPostgres(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Driver:       config.StoragePostgres,
		Jobs:         postgres.NewJobRepository(pool),
		Companies:    postgres.NewCompanyRepository(pool),
		Applications: postgres.NewApplicationRepository(pool),
		Bookmarks:    postgres.NewBookmarkRepository(pool),
		Users:        postgres.NewUserRepository(pool),
		migrate:      func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
		ping:         pool.Ping,
		close:        pool.Close,
	}
}

func NewSQLite(db *sql.DB) *Repositories {
	return &Repositories{
		Driver:       config.StorageSQLite,
		Jobs:         sqlite.NewJobRepository(db),
		Companies:    sqlite.NewCompanyRepository(db),
		Applications: sqlite.NewApplicationRepository(db),
		Bookmarks:    sqlite.NewBookmarkRepository(db),
		Users:        sqlite.NewUserRepository(db),
		migrate:      func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
		ping:         db.PingContext,
		close:        func() { _ = db.Close() },
	}
}

// Migrate creates the schema. It is a no-op for the memory backend.
func (r *Repositories) Migrate(ctx context.Context) error {
	if r.migrate == nil {
		return nil
	}
	return r.migrate(ctx)
}

// Ping checks the backend is reachable.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}
