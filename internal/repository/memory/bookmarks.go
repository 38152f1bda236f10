package memory

import (
	"context"
	"sort"

	"jobflix-backend/internal/domain"
)

type BookmarkRepository struct {
	s *Store
}

func (r *BookmarkRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Bookmark, 0)
	for _, id := range sortedKeys(r.s.bookmarks) {
		if b := r.s.bookmarks[id]; b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Create does not look for an existing bookmark on the same pair.
func (r *BookmarkRepository) Create(ctx context.Context, in domain.BookmarkInput) (*domain.Bookmark, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextBookmarkID++
	b := domain.Bookmark{
		ID:        r.s.nextBookmarkID,
		UserID:    in.UserID,
		JobID:     in.JobID,
		CreatedAt: r.s.now(),
	}
	r.s.bookmarks[b.ID] = b
	return &b, nil
}

// Delete removes the oldest bookmark on the pair.
func (r *BookmarkRepository) Delete(ctx context.Context, userID, jobID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range sortedKeys(r.s.bookmarks) {
		if b := r.s.bookmarks[id]; b.UserID == userID && b.JobID == jobID {
			delete(r.s.bookmarks, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *BookmarkRepository) Exists(ctx context.Context, userID, jobID int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.bookmarks {
		if b.UserID == userID && b.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}
