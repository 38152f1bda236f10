package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `id, title, description, company, company_id, location, type, level, category,
	salary_min, salary_max, skills, requirements, benefits, is_active, posted_at, expires_at`

type jobRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db, now: dbNow}
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var skills, requirements, benefits []string
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Company, &job.CompanyID, &job.Location,
		&job.Type, &job.Level, &job.Category, &job.SalaryMin, &job.SalaryMax,
		pq.Array(&skills), pq.Array(&requirements), pq.Array(&benefits),
		&job.IsActive, &job.PostedAt, &job.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	job.Skills, job.Requirements, job.Benefits = orEmpty(skills), orEmpty(requirements), orEmpty(benefits)
	return &job, nil
}

func (r *jobRepo) Create(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	job := domain.NewJob(0, in, r.now())
	job.ExpiresAt = dbTimePtr(job.ExpiresAt)
	query := `INSERT INTO jobs (title, description, company, company_id, location, type, level, category,
		salary_min, salary_max, skills, requirements, benefits, is_active, posted_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.Title, job.Description, job.Company, job.CompanyID, job.Location, job.Type, job.Level, job.Category,
		job.SalaryMin, job.SalaryMax,
		pq.Array(orEmpty(job.Skills)), pq.Array(orEmpty(job.Requirements)), pq.Array(orEmpty(job.Benefits)),
		job.IsActive, job.PostedAt, job.ExpiresAt,
	).Scan(&job.ID)
	if err != nil {
		return nil, fmt.Errorf("jobs: insert: %w", err)
	}
	return &job, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobs: get %d: %w", id, err)
	}
	return job, nil
}

func (r *jobRepo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	where, args := buildJobFilter(filter)
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs`+where+` ORDER BY posted_at DESC, id ASC`, args...)
}

func (r *jobRepo) ListByCompany(ctx context.Context, companyID int64) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = $1 AND is_active = TRUE ORDER BY posted_at DESC, id ASC`
	return r.query(ctx, query, companyID)
}

// Update merges patch under a row lock so concurrent patches do not lose fields.
func (r *jobRepo) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("jobs: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	job, err := scanJob(tx.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobs: lock %d: %w", id, err)
	}
	patch.Apply(job)
	job.ExpiresAt = dbTimePtr(job.ExpiresAt)

	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		company = $4,
		company_id = $5,
		location = $6,
		type = $7,
		level = $8,
		category = $9,
		salary_min = $10,
		salary_max = $11,
		skills = $12,
		requirements = $13,
		benefits = $14,
		is_active = $15,
		expires_at = $16
	WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Company, job.CompanyID, job.Location, job.Type, job.Level,
		job.Category, job.SalaryMin, job.SalaryMax,
		pq.Array(orEmpty(job.Skills)), pq.Array(orEmpty(job.Requirements)), pq.Array(orEmpty(job.Benefits)),
		job.IsActive, job.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("jobs: update %d: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("jobs: commit: %w", err)
	}
	return job, nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("jobs: delete %d: %w", id, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *jobRepo) Categories(ctx context.Context) ([]domain.JobCategory, error) {
	query := `SELECT category, COUNT(*) FROM jobs WHERE is_active = TRUE GROUP BY category ORDER BY MIN(id)`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("jobs: categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.JobCategory, 0)
	for rows.Next() {
		var c domain.JobCategory
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		c.Icon = domain.CategoryIcon(c.Name)
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *jobRepo) query(ctx context.Context, query string, args ...any) ([]domain.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("jobs: list: %w", err)
	}
	defer rows.Close()

	jobs := make([]domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
