package memory

import (
	"context"

	"jobflix-backend/internal/domain"
)

type CompanyRepository struct {
	s *Store
}

func (r *CompanyRepository) Create(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextCompanyID++
	company := domain.NewCompany(r.s.nextCompanyID, in, r.s.now())
	r.s.companies[company.ID] = company

	out := company.Clone()
	return &out, nil
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	company, ok := r.s.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := company.Clone()
	return &out, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	return r.Featured(ctx, 0)
}

func (r *CompanyRepository) Update(ctx context.Context, id int64, patch domain.CompanyPatch) (*domain.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	company, ok := r.s.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(&company)
	r.s.companies[id] = company

	out := company.Clone()
	return &out, nil
}

// Featured returns the first limit companies by id. A limit <= 0 returns all of them.
func (r *CompanyRepository) Featured(ctx context.Context, limit int) ([]domain.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := sortedKeys(r.s.companies)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]domain.Company, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.companies[id].Clone())
	}
	return out, nil
}
