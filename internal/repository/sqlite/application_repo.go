package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"
)

const applicationColumns = `id, user_id, job_id, status, cover_letter, applied_at`

type applicationRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewApplicationRepository(db *sql.DB) domain.ApplicationRepository {
	return &applicationRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var a domain.Application
	if err := row.Scan(&a.ID, &a.UserID, &a.JobID, &a.Status, &a.CoverLetter, &a.AppliedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) Create(ctx context.Context, in domain.ApplicationInput) (*domain.Application, error) {
	a := domain.NewApplication(0, in, r.now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (user_id, job_id, status, cover_letter, applied_at) VALUES (?, ?, ?, ?, ?)`,
		a.UserID, a.JobID, a.Status, a.CoverLetter, a.AppliedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("applications: insert: %w", err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	a, err := scanApplication(r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applications: get %d: %w", id, err)
	}
	return a, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE user_id = ? ORDER BY applied_at DESC, id ASC`, userID)
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = ? ORDER BY applied_at DESC, id ASC`, jobID)
}

func (r *applicationRepo) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET status = COALESCE(?, status), cover_letter = COALESCE(?, cover_letter)
		WHERE id = ?`,
		patch.Status, patch.CoverLetter, id,
	)
	if err != nil {
		return nil, fmt.Errorf("applications: update %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *applicationRepo) list(ctx context.Context, query string, id int64) ([]domain.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("applications: list: %w", err)
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *a)
	}
	return apps, rows.Err()
}
