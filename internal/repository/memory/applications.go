package memory

import (
	"context"
	"sort"

	"jobflix-backend/internal/domain"
)

type ApplicationRepository struct {
	s *Store
}

func (r *ApplicationRepository) Create(ctx context.Context, in domain.ApplicationInput) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextApplicationID++
	app := domain.NewApplication(r.s.nextApplicationID, in, r.s.now())
	r.s.applications[app.ID] = app

	out := app.Clone()
	return &out, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := app.Clone()
	return &out, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(a domain.Application) bool { return a.UserID == userID }), nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r *ApplicationRepository) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	app, ok := r.s.applications[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&app)
	r.s.applications[id] = app

	out := app.Clone()
	return &out, nil
}

func (r *ApplicationRepository) collect(keep func(domain.Application) bool) []domain.Application {
	out := make([]domain.Application, 0)
	for _, id := range sortedKeys(r.s.applications) {
		app := r.s.applications[id]
		if keep(app) {
			out = append(out, app.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	return out
}
