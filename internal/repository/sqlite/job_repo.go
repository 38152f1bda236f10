package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobflix-backend/internal/domain"
)

const jobColumns = `id, title, description, company, company_id, location, type, level, category,
	salary_min, salary_max, skills, requirements, benefits, is_active, posted_at, expires_at`

type jobRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewJobRepository(db *sql.DB) domain.JobRepository {
	return &jobRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var skills, requirements, benefits jsonList
	err := row.Scan(
		&job.ID, &job.Title, &job.Description, &job.Company, &job.CompanyID, &job.Location,
		&job.Type, &job.Level, &job.Category, &job.SalaryMin, &job.SalaryMax,
		&skills, &requirements, &benefits, &job.IsActive, &job.PostedAt, &job.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}
	job.Skills, job.Requirements, job.Benefits = skills, requirements, benefits
	return &job, nil
}

// buildJobFilter mirrors domain.JobFilter.Matches in SQL.
func buildJobFilter(filter domain.JobFilter) (string, []any) {
	clauses := []string{"is_active = 1"}
	var args []any

	if filter.Search != "" {
		clauses = append(clauses, `(contains_fold(title, ?) OR contains_fold(description, ?) OR contains_fold(company, ?)
			OR EXISTS (SELECT 1 FROM json_each(jobs.skills) WHERE contains_fold(json_each.value, ?)))`)
		args = append(args, filter.Search, filter.Search, filter.Search, filter.Search)
	}
	if filter.Location != "" {
		clauses = append(clauses, "contains_fold(location, ?)")
		args = append(args, filter.Location)
	}
	if filter.Type != "" {
		clauses = append(clauses, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Level != "" {
		clauses = append(clauses, "level = ?")
		args = append(args, filter.Level)
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if floor, ok := filter.MinSalary(); ok {
		clauses = append(clauses, "salary_max IS NOT NULL AND salary_max >= ?")
		args = append(args, floor)
	}
	if ceiling, ok := filter.MaxSalary(); ok {
		clauses = append(clauses, "salary_min IS NOT NULL AND salary_min <= ?")
		args = append(args, ceiling)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *jobRepo) Create(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	job := domain.NewJob(0, in, r.now())
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO jobs (title, description, company, company_id, location, type, level, category,
			salary_min, salary_max, skills, requirements, benefits, is_active, posted_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Title, job.Description, job.Company, job.CompanyID, job.Location, job.Type, job.Level, job.Category,
		job.SalaryMin, job.SalaryMax, jsonList(job.Skills), jsonList(job.Requirements), jsonList(job.Benefits),
		job.IsActive, job.PostedAt, job.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("jobs: insert: %w", err)
	}
	if job.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE company_id = ? AND is_active = 1 ORDER BY posted_at DESC, id ASC`
	return r.query(ctx, query, companyID)
}

func (r *jobRepo) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("jobs: begin: %w", err)
	}
	defer tx.Rollback()

	job, err := scanJob(tx.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("jobs: get %d: %w", id, err)
	}
	patch.Apply(job)

	_, err = tx.ExecContext(ctx, `
		UPDATE jobs
		SET title = ?, description = ?, company = ?, company_id = ?, location = ?, type = ?, level = ?,
			category = ?, salary_min = ?, salary_max = ?, skills = ?, requirements = ?, benefits = ?,
			is_active = ?, expires_at = ?
		WHERE id = ?`,
		job.Title, job.Description, job.Company, job.CompanyID, job.Location, job.Type, job.Level,
		job.Category, job.SalaryMin, job.SalaryMax, jsonList(job.Skills), jsonList(job.Requirements),
		jsonList(job.Benefits), job.IsActive, job.ExpiresAt, job.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("jobs: update %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("jobs: commit: %w", err)
	}
	return job, nil
}

func (r *jobRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("jobs: delete %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *jobRepo) Categories(ctx context.Context) ([]domain.JobCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COUNT(*) FROM jobs WHERE is_active = 1 GROUP BY category ORDER BY MIN(id)`)
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
	rows, err := r.db.QueryContext(ctx, query, args...)
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
