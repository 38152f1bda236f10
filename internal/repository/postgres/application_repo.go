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

type applicationRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db, now: dbNow}
}

func (r *applicationRepo) Create(ctx context.Context, in domain.ApplicationInput) (*domain.Application, error) {
	app := domain.NewApplication(0, in, r.now())
	query := `INSERT INTO applications (user_id, job_id, status, cover_letter, applied_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query, app.UserID, app.JobID, app.Status, app.CoverLetter, app.AppliedAt).Scan(&app.ID)
	if err != nil {
		return nil, fmt.Errorf("applications: insert: %w", err)
	}
	return &app, nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT id, user_id, job_id, status, cover_letter, applied_at FROM applications WHERE id = $1`
	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(&app.ID, &app.UserID, &app.JobID, &app.Status, &app.CoverLetter, &app.AppliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applications: get %d: %w", id, err)
	}
	return &app, nil
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Application, error) {
	return r.list(ctx, "user_id", userID)
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(ctx, "job_id", jobID)
}

func (r *applicationRepo) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	query := `UPDATE applications SET
		status = COALESCE($2, status),
		cover_letter = COALESCE($3, cover_letter)
	WHERE id = $1
	RETURNING id, user_id, job_id, status, cover_letter, applied_at`
	var app domain.Application
	err := r.db.QueryRow(ctx, query, id, patch.Status, patch.CoverLetter).Scan(
		&app.ID, &app.UserID, &app.JobID, &app.Status, &app.CoverLetter, &app.AppliedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applications: update %d: %w", id, err)
	}
	return &app, nil
}

// list is only called with a fixed column name.
func (r *applicationRepo) list(ctx context.Context, column string, id int64) ([]domain.Application, error) {
	query := `SELECT id, user_id, job_id, status, cover_letter, applied_at FROM applications
              WHERE ` + column + ` = $1 ORDER BY applied_at DESC, id ASC`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("applications: list by %s: %w", column, err)
	}
	defer rows.Close()

	apps := make([]domain.Application, 0)
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(&app.ID, &app.UserID, &app.JobID, &app.Status, &app.CoverLetter, &app.AppliedAt); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
