package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"jobflix-backend/internal/domain"
	"jobflix-backend/internal/usecase"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject salaryMin above salaryMax", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), new(MockCatalog), audit.Nop())

		_, err := uc.CreateJob(ctx, domain.JobInput{Title: "Dev", SalaryMin: intPtr(60000), SalaryMax: intPtr(40000)})
		assertAppError(t, err, http.StatusBadRequest)
		jobRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject unknown companyId", func(t *testing.T) {
		companyRepo := new(MockCompanyRepo)
		companyRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)
		uc := usecase.NewJobUsecase(new(MockJobRepo), companyRepo, new(MockCatalog), audit.Nop())

		_, err := uc.CreateJob(ctx, domain.JobInput{Title: "Dev", CompanyID: int64Ptr(9)})
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should fill company name and invalidate categories", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		companyRepo := new(MockCompanyRepo)
		catalog := new(MockCatalog)

		companyRepo.On("GetByID", ctx, int64(2)).Return(&domain.Company{ID: 2, Name: "DesignStudio"}, nil)
		jobRepo.On("Create", ctx, mock.MatchedBy(func(in domain.JobInput) bool {
			return in.Company == "DesignStudio"
		})).Return(&domain.Job{ID: 1, Title: "UX Designer", Company: "DesignStudio"}, nil)
		catalog.On("InvalidateCategories", ctx).Return()

		uc := usecase.NewJobUsecase(jobRepo, companyRepo, catalog, audit.Nop())
		job, err := uc.CreateJob(ctx, domain.JobInput{Title: "UX Designer", CompanyID: int64Ptr(2)})

		require.NoError(t, err)
		assert.Equal(t, "DesignStudio", job.Company)
		jobRepo.AssertExpectations(t)
		catalog.AssertExpectations(t)
	})

	t.Run("Should keep an explicit company name", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		companyRepo := new(MockCompanyRepo)
		catalog := new(MockCatalog)

		companyRepo.On("GetByID", ctx, int64(2)).Return(&domain.Company{ID: 2, Name: "DesignStudio"}, nil)
		jobRepo.On("Create", ctx, mock.MatchedBy(func(in domain.JobInput) bool {
			return in.Company == "Design Studio Srl"
		})).Return(&domain.Job{ID: 1}, nil)
		catalog.On("InvalidateCategories", ctx).Return()

		uc := usecase.NewJobUsecase(jobRepo, companyRepo, catalog, audit.Nop())
		_, err := uc.CreateJob(ctx, domain.JobInput{Title: "UX", Company: "Design Studio Srl", CompanyID: int64Ptr(2)})
		require.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Should map storage failure to 500", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("disk full"))
		uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), new(MockCatalog), audit.Nop())

		_, err := uc.CreateJob(ctx, domain.JobInput{Title: "Dev"})
		assertAppError(t, err, http.StatusInternalServerError)
	})
}

func TestGetJob_NotFound(t *testing.T) {
	ctx := context.Background()
	jobRepo := new(MockJobRepo)
	jobRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.ErrNotFound)

	uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), new(MockCatalog), audit.Nop())
	_, err := uc.GetJob(ctx, 42)

	assertAppError(t, err, http.StatusNotFound)
	assert.Equal(t, "Job not found", err.Error())
}

func TestListJobs_PassesFilterThrough(t *testing.T) {
	ctx := context.Background()
	filter := domain.JobFilter{Search: "react", SalaryMin: intPtr(40000)}
	jobRepo := new(MockJobRepo)
	jobRepo.On("List", ctx, filter).Return([]domain.Job{{ID: 1}}, nil)

	uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), new(MockCatalog), audit.Nop())
	jobs, err := uc.ListJobs(ctx, filter)

	require.NoError(t, err)
	assert.Len(t, jobs, 1)
	jobRepo.AssertExpectations(t)
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()
	stored := &domain.Job{ID: 1, Title: "Dev", SalaryMin: intPtr(30000), SalaryMax: intPtr(50000), IsActive: true}

	t.Run("Should check the merged salary range", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)
		uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), new(MockCatalog), audit.Nop())

		_, err := uc.UpdateJob(ctx, 1, domain.JobPatch{SalaryMin: intPtr(60000)})
		assertAppError(t, err, http.StatusBadRequest)
		jobRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should update and invalidate categories", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		catalog := new(MockCatalog)
		patch := domain.JobPatch{Category: strPtr("Marketing")}

		jobRepo.On("GetByID", ctx, int64(1)).Return(stored, nil)
		jobRepo.On("Update", ctx, int64(1), patch).Return(&domain.Job{ID: 1, Category: "Marketing"}, nil)
		catalog.On("InvalidateCategories", ctx).Return()

		uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), catalog, audit.Nop())
		job, err := uc.UpdateJob(ctx, 1, patch)

		require.NoError(t, err)
		assert.Equal(t, "Marketing", job.Category)
		catalog.AssertExpectations(t)
	})

	t.Run("Should 404 on unknown job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("GetByID", ctx, int64(7)).Return(nil, domain.ErrNotFound)
		uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), new(MockCatalog), audit.Nop())

		_, err := uc.UpdateJob(ctx, 7, domain.JobPatch{Title: strPtr("x")})
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()

	jobRepo := new(MockJobRepo)
	catalog := new(MockCatalog)
	jobRepo.On("Delete", ctx, int64(1)).Return(true, nil).Once()
	jobRepo.On("Delete", ctx, int64(1)).Return(false, nil).Once()
	catalog.On("InvalidateCategories", ctx).Return().Once()

	uc := usecase.NewJobUsecase(jobRepo, new(MockCompanyRepo), catalog, audit.Nop())

	require.NoError(t, uc.DeleteJob(ctx, 1))
	assertAppError(t, uc.DeleteJob(ctx, 1), http.StatusNotFound)
	catalog.AssertExpectations(t)
}
