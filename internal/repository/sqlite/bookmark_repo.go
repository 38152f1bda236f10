package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobflix-backend/internal/domain"
)

type bookmarkRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewBookmarkRepository(db *sql.DB) domain.BookmarkRepository {
	return &bookmarkRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func (r *bookmarkRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, job_id, created_at FROM bookmarks WHERE user_id = ? ORDER BY created_at DESC, id ASC`, userID)
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
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (user_id, job_id, created_at) VALUES (?, ?, ?)`, b.UserID, b.JobID, b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bookmarks: insert: %w", err)
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookmarkRepo) Delete(ctx context.Context, userID, jobID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = (
		SELECT id FROM bookmarks WHERE user_id = ? AND job_id = ? ORDER BY id LIMIT 1
	)`, userID, jobID)
	if err != nil {
		return false, fmt.Errorf("bookmarks: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *bookmarkRepo) Exists(ctx context.Context, userID, jobID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookmarks WHERE user_id = ? AND job_id = ?)`, userID, jobID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("bookmarks: exists: %w", err)
	}
	return exists, nil
}
