package usecase

import (
	"context"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/audit"
)

type companyUsecase struct {
	companyRepo domain.CompanyRepository
	jobRepo     domain.JobRepository
	catalog     domain.CatalogUsecase
	audit       *audit.Logger
}

func NewCompanyUsecase(companyRepo domain.CompanyRepository, jobRepo domain.JobRepository, catalog domain.CatalogUsecase, auditLog *audit.Logger) domain.CompanyUsecase {
	return &companyUsecase{
		companyRepo: companyRepo,
		jobRepo:     jobRepo,
		catalog:     catalog,
		audit:       auditLog,
	}
}

func (u *companyUsecase) CreateCompany(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	company, err := u.companyRepo.Create(ctx, in)
	if err != nil {
		return nil, storageError(err, "Company")
	}

	u.catalog.InvalidateFeatured(ctx)
	u.audit.Record(ctx, audit.EventCompanyCreated, "company", company.ID, map[string]any{"name": company.Name})
	return company, nil
}

func (u *companyUsecase) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "Company")
	}
	return company, nil
}

func (u *companyUsecase) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := u.companyRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return companies, nil
}

// UpdateCompany does not rewrite the display name cached on the company's jobs.
func (u *companyUsecase) UpdateCompany(ctx context.Context, id int64, patch domain.CompanyPatch) (*domain.Company, error) {
	company, err := u.companyRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError(err, "Company")
	}

	u.catalog.InvalidateFeatured(ctx)
	u.audit.Record(ctx, audit.EventCompanyUpdated, "company", company.ID, nil)
	return company, nil
}

func (u *companyUsecase) ListCompanyJobs(ctx context.Context, id int64) ([]domain.Job, error) {
	if _, err := u.companyRepo.GetByID(ctx, id); err != nil {
		return nil, storageError(err, "Company")
	}
	jobs, err := u.jobRepo.ListByCompany(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}
