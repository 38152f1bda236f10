package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `id, name, description, industry, size, logo, website, location, founded, created_at`

type companyRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewCompanyRepository(db *pgxpool.Pool) domain.CompanyRepository {
	return &companyRepo{db: db, now: dbNow}
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Industry, &c.Size, &c.Logo, &c.Website, &c.Location, &c.Founded, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	c := domain.NewCompany(0, in, r.now())
	query := `INSERT INTO companies (name, description, industry, size, logo, website, location, founded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		c.Name, c.Description, c.Industry, c.Size, c.Logo, c.Website, c.Location, c.Founded, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("companies: insert: %w", err)
	}
	return &c, nil
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companies: get %d: %w", id, err)
	}
	return c, nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	return r.query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
}

func (r *companyRepo) Featured(ctx context.Context, limit int) ([]domain.Company, error) {
	if limit <= 0 {
		return r.List(ctx)
	}
	return r.query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id LIMIT $1`, limit)
}

func (r *companyRepo) Update(ctx context.Context, id int64, patch domain.CompanyPatch) (*domain.Company, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("companies: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	c, err := scanCompany(tx.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companies: lock %d: %w", id, err)
	}
	patch.Apply(c)

	query := `UPDATE companies SET name = $2, description = $3, industry = $4, size = $5, logo = $6,
		website = $7, location = $8, founded = $9 WHERE id = $1`
	_, err = tx.Exec(ctx, query, c.ID, c.Name, c.Description, c.Industry, c.Size, c.Logo, c.Website, c.Location, c.Founded)
	if err != nil {
		return nil, fmt.Errorf("companies: update %d: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("companies: commit: %w", err)
	}
	return c, nil
}

func (r *companyRepo) query(ctx context.Context, query string, args ...any) ([]domain.Company, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("companies: list: %w", err)
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}
