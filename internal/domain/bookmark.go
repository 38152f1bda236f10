package domain

import (
	"context"
	"time"
)

// Bookmark marks a job saved by a user. Nothing prevents the same (user, job) pair
// from being bookmarked twice.
type Bookmark struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	JobID     int64     `json:"jobId"`
	CreatedAt time.Time `json:"createdAt"`
}

type BookmarkInput struct {
	UserID int64
	JobID  int64
}

type BookmarkRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Bookmark, error)
	Create(ctx context.Context, in BookmarkInput) (*Bookmark, error)
	// Delete removes at most one bookmark for the pair and reports whether it did.
	Delete(ctx context.Context, userID, jobID int64) (bool, error)
	Exists(ctx context.Context, userID, jobID int64) (bool, error)
}

type BookmarkUsecase interface {
	AddBookmark(ctx context.Context, in BookmarkInput) (*Bookmark, error)
	RemoveBookmark(ctx context.Context, userID, jobID int64) error
	IsBookmarked(ctx context.Context, userID, jobID int64) (bool, error)
	ListBookmarks(ctx context.Context, userID int64) ([]Bookmark, error)
}
