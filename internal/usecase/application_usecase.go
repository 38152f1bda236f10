package usecase

import (
	"context"
	"errors"
	"time"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/audit"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	audit           *audit.Logger
	now             func() time.Time
}

func NewApplicationUsecase(applicationRepo domain.ApplicationRepository, jobRepo domain.JobRepository, userRepo domain.UserRepository, auditLog *audit.Logger) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		audit:           auditLog,
		now:             time.Now,
	}
}

func (u *applicationUsecase) Apply(ctx context.Context, in domain.ApplicationInput) (*domain.Application, error) {
	if _, err := u.jobRepo.GetByID(ctx, in.JobID); err != nil {
		return nil, storageError(err, "Job")
	}
	if _, err := u.userRepo.GetByID(ctx, in.UserID); err != nil {
		return nil, storageError(err, "User")
	}

	app, err := u.applicationRepo.Create(ctx, in)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Record(ctx, audit.EventApplicationCreated, "application", app.ID, map[string]any{
		"user_id": app.UserID,
		"job_id":  app.JobID,
	})
	return app, nil
}

func (u *applicationUsecase) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	app, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "Application")
	}
	return app, nil
}

func (u *applicationUsecase) ListByUser(ctx context.Context, userID int64) ([]domain.Application, error) {
	apps, err := u.applicationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) ListByJob(ctx context.Context, jobID int64) ([]domain.Application, error) {
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, storageError(err, "Job")
	}
	apps, err := u.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) UpdateApplication(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	app, err := u.applicationRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError(err, "Application")
	}

	details := map[string]any{}
	if patch.Status != nil {
		details["status"] = app.Status
	}
	u.audit.Record(ctx, audit.EventApplicationUpdated, "application", app.ID, details)
	return app, nil
}

func (u *applicationUsecase) ExportByJob(ctx context.Context, jobID int64, format string) (*domain.ApplicationExport, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, storageError(err, "Job")
	}
	apps, err := u.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	rows := make([]exportRow, 0, len(apps))
	for _, app := range apps {
		row := exportRow{app: app}
		user, err := u.userRepo.GetByID(ctx, app.UserID)
		switch {
		case err == nil:
			row.user = user
		case !errors.Is(err, domain.ErrNotFound):
			return nil, apperror.Internal(err)
		}
		rows = append(rows, row)
	}

	var export *domain.ApplicationExport
	switch format {
	case "xlsx", "":
		export, err = exportExcel(job, rows, u.now())
	case "csv":
		export, err = exportCSV(job, rows, u.now())
	default:
		return nil, apperror.BadRequest("unsupported export format: " + format)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.Record(ctx, audit.EventApplicationsExported, "job", jobID, map[string]any{
		"format": format,
		"rows":   len(rows),
	})
	return export, nil
}
