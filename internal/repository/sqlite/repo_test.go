package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func tickingClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func titles(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, Migrate(context.Background(), db))
}

func TestJobRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	companies := NewCompanyRepository(db)
	company, err := companies.Create(ctx, domain.CompanyInput{Name: "CloudTech Solutions", Size: domain.CompanySizeMedium})
	require.NoError(t, err)

	repo := &jobRepo{db: db, now: tickingClock()}

	inputs := []domain.JobInput{
		{
			Title: "Senior Frontend Developer", Description: "React", Company: "TechInnovate",
			Location: "Milano, Italia", Type: domain.JobTypeFullTime, Level: domain.JobLevelSenior,
			Category: "Sviluppo Software", SalaryMin: intPtr(45000), SalaryMax: intPtr(65000),
			Skills: []string{"React", "TypeScript"},
		},
		{
			Title: "Backend Developer", Description: "API scalabili", Company: "CloudTech Solutions",
			CompanyID: int64Ptr(company.ID), Location: "Torino, Italia", Type: domain.JobTypeRemote,
			Level: domain.JobLevelSenior, Category: "Sviluppo Software", SalaryMax: intPtr(70000),
			Skills: []string{"Node.js", "Kubernetes"},
		},
		{
			Title: "Financial Analyst", Description: "Analisi di bilancio al 100%", Company: "FinanceForward",
			Location: "Milano, Italia", Type: domain.JobTypeFullTime, Level: domain.JobLevelMid,
			Category: "Finanza", SalaryMin: intPtr(45000), Skills: []string{"Excel"},
		},
		{
			Title: "Archived", Description: "React", Company: "TechInnovate", Location: "Milano, Italia",
			Type: domain.JobTypeContract, Level: domain.JobLevelEntry, Category: "Marketing",
			SalaryMin: intPtr(1), SalaryMax: intPtr(999999), IsActive: boolPtr(false),
		},
	}
	for _, in := range inputs {
		_, err := repo.Create(ctx, in)
		require.NoError(t, err)
	}

	t.Run("Round trip", func(t *testing.T) {
		got, err := repo.GetByID(ctx, 2)
		require.NoError(t, err)
		want := domain.NewJob(2, inputs[1], got.PostedAt)
		assert.Equal(t, want.Skills, got.Skills)
		assert.Equal(t, want.Requirements, got.Requirements)
		assert.Equal(t, *want.CompanyID, *got.CompanyID)
		assert.Nil(t, got.SalaryMin)
		assert.Equal(t, 70000, *got.SalaryMax)
		assert.Nil(t, got.ExpiresAt)
		assert.True(t, got.IsActive)
	})

	tests := []struct {
		name   string
		filter domain.JobFilter
		want   []string
	}{
		{"Unfiltered newest first", domain.JobFilter{}, []string{"Financial Analyst", "Backend Developer", "Senior Frontend Developer"}},
		{"Case insensitive title", domain.JobFilter{Search: "BACKEND"}, []string{"Backend Developer"}},
		{"Skill match", domain.JobFilter{Search: "typescript"}, []string{"Senior Frontend Developer"}},
		{"Inactive excluded", domain.JobFilter{Search: "react"}, []string{"Senior Frontend Developer"}},
		{"Percent is literal", domain.JobFilter{Search: "100%"}, []string{"Financial Analyst"}},
		{"Location", domain.JobFilter{Location: "milano"}, []string{"Financial Analyst", "Senior Frontend Developer"}},
		{"Category exact", domain.JobFilter{Category: "Finanza"}, []string{"Financial Analyst"}},
		{"Salary floor", domain.JobFilter{SalaryMin: intPtr(40000)}, []string{"Backend Developer", "Senior Frontend Developer"}},
		{"Salary ceiling", domain.JobFilter{SalaryMax: intPtr(50000)}, []string{"Financial Analyst", "Senior Frontend Developer"}},
		{"Zero bounds ignored", domain.JobFilter{SalaryMin: intPtr(0)}, []string{"Financial Analyst", "Backend Developer", "Senior Frontend Developer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}

	t.Run("By company", func(t *testing.T) {
		got, err := repo.ListByCompany(ctx, company.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Backend Developer"}, titles(got))
	})

	t.Run("Categories", func(t *testing.T) {
		got, err := repo.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.JobCategory{
			{Name: "Sviluppo Software", Count: 2, Icon: "fas fa-code"},
			{Name: "Finanza", Count: 1, Icon: "fas fa-dollar-sign"},
		}, got)
	})

	t.Run("Update and delete", func(t *testing.T) {
		before, err := repo.GetByID(ctx, 1)
		require.NoError(t, err)

		updated, err := repo.Update(ctx, 1, domain.JobPatch{Title: strPtr("Lead Frontend"), Skills: []string{"Vue"}})
		require.NoError(t, err)
		assert.Equal(t, "Lead Frontend", updated.Title)
		assert.Equal(t, []string{"Vue"}, updated.Skills)
		assert.True(t, before.PostedAt.Equal(updated.PostedAt))

		_, err = repo.Update(ctx, 999, domain.JobPatch{})
		assert.ErrorIs(t, err, domain.ErrNotFound)

		removed, err := repo.Delete(ctx, 1)
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = repo.Delete(ctx, 1)
		require.NoError(t, err)
		assert.False(t, removed)

		_, err = repo.GetByID(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestCompanyRepository_Featured(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepository(newTestDB(t))

	for _, name := range []string{"TechInnovate", "CreativeHub", "FinanceForward", "CloudTech Solutions"} {
		_, err := repo.Create(ctx, domain.CompanyInput{Name: name, Size: domain.CompanySizeMedium, Founded: intPtr(2018)})
		require.NoError(t, err)
	}

	got, err := repo.Featured(ctx, domain.DefaultFeaturedLimit)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = repo.Featured(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "TechInnovate", got[0].Name)

	updated, err := repo.Update(ctx, 2, domain.CompanyPatch{Website: strPtr("https://creativehub.example")})
	require.NoError(t, err)
	assert.Equal(t, "CreativeHub", updated.Name)
	assert.Equal(t, "https://creativehub.example", *updated.Website)
	assert.Equal(t, 2018, *updated.Founded)
}

func TestBookmarkRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBookmarkRepository(newTestDB(t))

	first, err := repo.Create(ctx, domain.BookmarkInput{UserID: 1, JobID: 3})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.BookmarkInput{UserID: 1, JobID: 3})
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	removed, err := repo.Delete(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, removed)

	list, err = repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, first.ID, list[0].ID)

	exists, err := repo.Exists(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Delete(ctx, 1, 3)
	require.NoError(t, err)
	removed, err = repo.Delete(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestApplicationRepository(t *testing.T) {
	ctx := context.Background()
	repo := &applicationRepo{db: newTestDB(t), now: tickingClock()}

	a, err := repo.Create(ctx, domain.ApplicationInput{UserID: 1, JobID: 2})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, a.Status)
	_, err = repo.Create(ctx, domain.ApplicationInput{UserID: 5, JobID: 2, CoverLetter: strPtr("Ciao")})
	require.NoError(t, err)

	byJob, err := repo.ListByJob(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byJob, 2)
	assert.Equal(t, int64(5), byJob[0].UserID)

	updated, err := repo.Update(ctx, a.ID, domain.ApplicationPatch{Status: strPtr(domain.ApplicationStatusInterviewed)})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusInterviewed, updated.Status)
	assert.Nil(t, updated.CoverLetter)

	_, err = repo.Update(ctx, 404, domain.ApplicationPatch{Status: strPtr(domain.ApplicationStatusRejected)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	u, err := repo.Create(ctx, domain.UserInput{
		Username: "luca", Email: "luca@example.com", Password: "hash", FullName: "Luca Verdi",
		Skills: []string{"Python"},
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, domain.UserInput{Username: "luca", Email: "x@example.com", Password: "h", FullName: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	byEmail, err := repo.GetByEmail(ctx, "luca@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, []string{"Python"}, byEmail.Skills)
	assert.Equal(t, "hash", byEmail.Password)

	updated, err := repo.Update(ctx, u.ID, domain.UserPatch{CVURL: strPtr("/uploads/cv/1.pdf"), IsRecruiter: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/cv/1.pdf", *updated.CVURL)
	assert.True(t, updated.IsRecruiter)

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
