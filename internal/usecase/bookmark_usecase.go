package usecase

import (
	"context"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/audit"
)

type bookmarkUsecase struct {
	bookmarkRepo domain.BookmarkRepository
	jobRepo      domain.JobRepository
	audit        *audit.Logger
}

func NewBookmarkUsecase(bookmarkRepo domain.BookmarkRepository, jobRepo domain.JobRepository, auditLog *audit.Logger) domain.BookmarkUsecase {
	return &bookmarkUsecase{
		bookmarkRepo: bookmarkRepo,
		jobRepo:      jobRepo,
		audit:        auditLog,
	}
}

// AddBookmark does not check for an existing bookmark on the same job.
func (u *bookmarkUsecase) AddBookmark(ctx context.Context, in domain.BookmarkInput) (*domain.Bookmark, error) {
	if _, err := u.jobRepo.GetByID(ctx, in.JobID); err != nil {
		return nil, storageError(err, "Job")
	}

	bookmark, err := u.bookmarkRepo.Create(ctx, in)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Record(ctx, audit.EventBookmarkCreated, "bookmark", bookmark.ID, map[string]any{
		"user_id": in.UserID,
		"job_id":  in.JobID,
	})
	return bookmark, nil
}

func (u *bookmarkUsecase) RemoveBookmark(ctx context.Context, userID, jobID int64) error {
	removed, err := u.bookmarkRepo.Delete(ctx, userID, jobID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !removed {
		return apperror.NotFound("Bookmark not found")
	}

	u.audit.Record(ctx, audit.EventBookmarkRemoved, "user", userID, map[string]any{"job_id": jobID})
	return nil
}

func (u *bookmarkUsecase) IsBookmarked(ctx context.Context, userID, jobID int64) (bool, error) {
	ok, err := u.bookmarkRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return ok, nil
}

func (u *bookmarkUsecase) ListBookmarks(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	bookmarks, err := u.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return bookmarks, nil
}
