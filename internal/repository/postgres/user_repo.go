package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

const userColumns = `id, username, email, password, full_name, profile_image, bio, location, skills,
	experience, is_recruiter, cv_url, created_at`

type userRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db, now: dbNow}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var skills []string
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.ProfileImage, &u.Bio, &u.Location,
		pq.Array(&skills), &u.Experience, &u.IsRecruiter, &u.CVURL, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Skills = orEmpty(skills)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *userRepo) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	u := domain.NewUser(0, in, r.now())
	query := `INSERT INTO users (username, email, password, full_name, profile_image, bio, location, skills,
		experience, is_recruiter, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		u.Username, u.Email, u.Password, u.FullName, u.ProfileImage, u.Bio, u.Location,
		pq.Array(u.Skills), u.Experience, u.IsRecruiter, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("users: insert: %w", err)
	}
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *userRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("users: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	u, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("users: lock %d: %w", id, err)
	}
	patch.Apply(u)

	query := `UPDATE users SET email = $2, password = $3, full_name = $4, profile_image = $5, bio = $6,
		location = $7, skills = $8, experience = $9, is_recruiter = $10, cv_url = $11
	WHERE id = $1`
	_, err = tx.Exec(ctx, query,
		u.ID, u.Email, u.Password, u.FullName, u.ProfileImage, u.Bio, u.Location,
		pq.Array(u.Skills), u.Experience, u.IsRecruiter, u.CVURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("users: update %d: %w", id, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("users: commit: %w", err)
	}
	return u, nil
}

// getBy is only called with a fixed column name.
func (r *userRepo) getBy(ctx context.Context, column string, value any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = $1`, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("users: get by %s: %w", column, err)
	}
	return u, nil
}
