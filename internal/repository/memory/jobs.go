package memory

import (
	"context"
	"sort"

	"jobflix-backend/internal/domain"
)

type JobRepository struct {
	s *Store
}

func (r *JobRepository) Create(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextJobID++
	job := domain.NewJob(r.s.nextJobID, in, r.s.now())
	r.s.jobs[job.ID] = job

	out := job.Clone()
	return &out, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	job, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := job.Clone()
	return &out, nil
}

// List returns the active jobs passing filter, newest first.
func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(filter.Matches), nil
}

func (r *JobRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.collect(func(j domain.Job) bool {
		return j.IsActive && j.CompanyID != nil && *j.CompanyID == companyID
	}), nil
}

func (r *JobRepository) Update(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job, ok := r.s.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&job)
	r.s.jobs[id] = job

	out := job.Clone()
	return &out, nil
}

func (r *JobRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs[id]; !ok {
		return false, nil
	}
	delete(r.s.jobs, id)
	return true, nil
}

func (r *JobRepository) Categories(ctx context.Context) ([]domain.JobCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	jobs := make([]domain.Job, 0, len(r.s.jobs))
	for _, id := range sortedKeys(r.s.jobs) {
		jobs = append(jobs, r.s.jobs[id])
	}
	return domain.AggregateCategories(jobs), nil
}

// collect must be called with the read lock held. Ties on PostedAt keep id order.
func (r *JobRepository) collect(keep func(domain.Job) bool) []domain.Job {
	out := make([]domain.Job, 0)
	for _, id := range sortedKeys(r.s.jobs) {
		job := r.s.jobs[id]
		if keep(job) {
			out = append(out, job.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PostedAt.After(out[j].PostedAt)
	})
	return out
}
