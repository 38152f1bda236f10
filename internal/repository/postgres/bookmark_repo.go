package postgres

import (
	"context"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type bookmarkRepo struct {
	db  *pgxpool.Pool
	now func() time.Time
}

func NewBookmarkRepository(db *pgxpool.Pool) domain.BookmarkRepository {
	return &bookmarkRepo{db: db, now: dbNow}
}

func (r *bookmarkRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	query := `SELECT id, user_id, job_id, created_at FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC, id ASC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: list: %w", err)
	}
	defer rows.Close()

	bookmarks := make([]domain.Bookmark, 0)
	for rows.Next() {
		var b domain.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.JobID, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

func (r *bookmarkRepo) Create(ctx context.Context, in domain.BookmarkInput) (*domain.Bookmark, error) {
	b := domain.Bookmark{UserID: in.UserID, JobID: in.JobID, CreatedAt: r.now()}
	query := `INSERT INTO bookmarks (user_id, job_id, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRow(ctx, query, b.UserID, b.JobID, b.CreatedAt).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("bookmarks: insert: %w", err)
	}
	return &b, nil
}

// Delete removes the oldest bookmark on the pair.
func (r *bookmarkRepo) Delete(ctx context.Context, userID, jobID int64) (bool, error) {
	query := `DELETE FROM bookmarks WHERE id = (
		SELECT id FROM bookmarks WHERE user_id = $1 AND job_id = $2 ORDER BY id LIMIT 1
	)`
	result, err := r.db.Exec(ctx, query, userID, jobID)
	if err != nil {
		return false, fmt.Errorf("bookmarks: delete: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *bookmarkRepo) Exists(ctx context.Context, userID, jobID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = $1 AND job_id = $2)`
	if err := r.db.QueryRow(ctx, query, userID, jobID).Scan(&exists); err != nil {
		return false, fmt.Errorf("bookmarks: exists: %w", err)
	}
	return exists, nil
}
