package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"
)

const companyColumns = `id, name, description, industry, size, logo, website, location, founded, created_at`

type companyRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewCompanyRepository(db *sql.DB) domain.CompanyRepository {
	return &companyRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Industry, &c.Size, &c.Logo, &c.Website, &c.Location, &c.Founded, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) Create(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	c := domain.NewCompany(0, in, r.now())
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO companies (name, description, industry, size, logo, website, location, founded, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Industry, c.Size, c.Logo, c.Website, c.Location, c.Founded, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("companies: insert: %w", err)
	}
	if c.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	c, err := scanCompany(r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companies: get %d: %w", id, err)
	}
	return c, nil
}

func (r *companyRepo) List(ctx context.Context) ([]domain.Company, error) {
	return r.Featured(ctx, -1)
}

// Featured returns the first limit companies by id. SQLite treats a negative LIMIT as none.
func (r *companyRepo) Featured(ctx context.Context, limit int) ([]domain.Company, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id LIMIT ?`, limit)
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

func (r *companyRepo) Update(ctx context.Context, id int64, patch domain.CompanyPatch) (*domain.Company, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("companies: begin: %w", err)
	}
	defer tx.Rollback()

	c, err := scanCompany(tx.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("companies: get %d: %w", id, err)
	}
	patch.Apply(c)

	_, err = tx.ExecContext(ctx, `
		UPDATE companies
		SET name = ?, description = ?, industry = ?, size = ?, logo = ?, website = ?, location = ?, founded = ?
		WHERE id = ?`,
		c.Name, c.Description, c.Industry, c.Size, c.Logo, c.Website, c.Location, c.Founded, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("companies: update %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("companies: commit: %w", err)
	}
	return c, nil
}
