package usecase

import (
	"context"
	"errors"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/audit"
)

type jobUsecase struct {
	jobRepo     domain.JobRepository
	companyRepo domain.CompanyRepository
	catalog     domain.CatalogUsecase
	audit       *audit.Logger
}

func NewJobUsecase(jobRepo domain.JobRepository, companyRepo domain.CompanyRepository, catalog domain.CatalogUsecase, auditLog *audit.Logger) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
		catalog:     catalog,
		audit:       auditLog,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, in domain.JobInput) (*domain.Job, error) {
	if err := checkSalaryRange(in.SalaryMin, in.SalaryMax); err != nil {
		return nil, err
	}

	if in.CompanyID != nil {
		company, err := u.resolveCompany(ctx, *in.CompanyID)
		if err != nil {
			return nil, err
		}
		// Company is only a display cache; fill it when the caller left it out.
		if in.Company == "" {
			in.Company = company.Name
		}
	}

	job, err := u.jobRepo.Create(ctx, in)
	if err != nil {
		return nil, storageError(err, "Job")
	}

	u.catalog.InvalidateCategories(ctx)
	u.audit.Record(ctx, audit.EventJobCreated, "job", job.ID, map[string]any{
		"title":    job.Title,
		"category": job.Category,
	})
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "Job")
	}
	return job, nil
}

func (u *jobUsecase) ListJobs(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	jobs, err := u.jobRepo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id int64, patch domain.JobPatch) (*domain.Job, error) {
	current, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "Job")
	}

	merged := current.Clone()
	patch.Apply(&merged)
	if err := checkSalaryRange(merged.SalaryMin, merged.SalaryMax); err != nil {
		return nil, err
	}
	if patch.CompanyID != nil {
		if _, err := u.resolveCompany(ctx, *patch.CompanyID); err != nil {
			return nil, err
		}
	}

	job, err := u.jobRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError(err, "Job")
	}

	u.catalog.InvalidateCategories(ctx)
	u.audit.Record(ctx, audit.EventJobUpdated, "job", job.ID, nil)
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id int64) error {
	removed, err := u.jobRepo.Delete(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !removed {
		return apperror.NotFound("Job not found")
	}

	u.catalog.InvalidateCategories(ctx)
	u.audit.Record(ctx, audit.EventJobDeleted, "job", id, nil)
	return nil
}

func (u *jobUsecase) resolveCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := u.companyRepo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.BadRequest("companyId does not reference an existing company")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return company, nil
}
