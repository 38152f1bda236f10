package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"
)

const userColumns = `id, username, email, password, full_name, profile_image, bio, location, skills,
	experience, is_recruiter, cv_url, created_at`

type userRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var skills jsonList
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.ProfileImage, &u.Bio, &u.Location,
		&skills, &u.Experience, &u.IsRecruiter, &u.CVURL, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Skills = skills
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	u := domain.NewUser(0, in, r.now())
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password, full_name, profile_image, bio, location, skills,
			experience, is_recruiter, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.Password, u.FullName, u.ProfileImage, u.Bio, u.Location,
		jsonList(u.Skills), u.Experience, u.IsRecruiter, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("users: insert: %w", err)
	}
	if u.ID, err = res.LastInsertId(); err != nil {
		return nil, err
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
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("users: begin: %w", err)
	}
	defer tx.Rollback()

	u, err := scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("users: get %d: %w", id, err)
	}
	patch.Apply(u)

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET email = ?, password = ?, full_name = ?, profile_image = ?, bio = ?, location = ?, skills = ?,
			experience = ?, is_recruiter = ?, cv_url = ?
		WHERE id = ?`,
		u.Email, u.Password, u.FullName, u.ProfileImage, u.Bio, u.Location, jsonList(u.Skills),
		u.Experience, u.IsRecruiter, u.CVURL, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("users: update %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("users: commit: %w", err)
	}
	return u, nil
}

// getBy is only called with a fixed column name.
func (r *userRepo) getBy(ctx context.Context, column string, value any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("users: get by %s: %w", column, err)
	}
	return u, nil
}
