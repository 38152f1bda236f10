package memory_test

import (
	"context"
	"fmt"
	"testing"

	"jobflix-backend/internal/domain"
	"jobflix-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore(memory.WithClock(tickingClock())).Companies()

	for i := 1; i <= 4; i++ {
		_, err := repo.Create(ctx, domain.CompanyInput{
			Name:     fmt.Sprintf("Company %d", i),
			Industry: "Tecnologia",
			Size:     domain.CompanySizeMedium,
			Location: "Milano, Italia",
		})
		require.NoError(t, err)
	}

	t.Run("Featured returns all when fewer than the limit", func(t *testing.T) {
		got, err := repo.Featured(ctx, domain.DefaultFeaturedLimit)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("Featured is bounded and ordered by id", func(t *testing.T) {
		got, err := repo.Featured(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(2), got[1].ID)
	})

	t.Run("Update keeps createdAt", func(t *testing.T) {
		before, err := repo.GetByID(ctx, 3)
		require.NoError(t, err)

		after, err := repo.Update(ctx, 3, domain.CompanyPatch{Name: strPtr("Renamed"), Founded: intPtr(2001)})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", after.Name)
		assert.Equal(t, before.CreatedAt, after.CreatedAt)
		assert.Equal(t, before.Industry, after.Industry)
		require.NotNil(t, after.Founded)
		assert.Equal(t, 2001, *after.Founded)
	})

	t.Run("Missing company", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = repo.Update(ctx, 99, domain.CompanyPatch{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("List returns every company", func(t *testing.T) {
		got, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})
}

func TestBookmarkRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore(memory.WithClock(tickingClock())).Bookmarks()

	first, err := repo.Create(ctx, domain.BookmarkInput{UserID: 1, JobID: 10})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.BookmarkInput{UserID: 1, JobID: 10})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.BookmarkInput{UserID: 1, JobID: 11})
	require.NoError(t, err)

	t.Run("Duplicates are accepted", func(t *testing.T) {
		assert.NotEqual(t, first.ID, second.ID)
		got, err := repo.ListByUser(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, int64(11), got[0].JobID, "newest first")
	})

	t.Run("Delete removes one duplicate at a time", func(t *testing.T) {
		removed, err := repo.Delete(ctx, 1, 10)
		require.NoError(t, err)
		assert.True(t, removed)

		exists, err := repo.Exists(ctx, 1, 10)
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := repo.ListByUser(ctx, 1)
		require.NoError(t, err)
		for _, b := range got {
			assert.NotEqual(t, first.ID, b.ID, "the oldest match goes first")
		}

		removed, err = repo.Delete(ctx, 1, 10)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, 1, 10)
		require.NoError(t, err)
		assert.False(t, removed)

		exists, err = repo.Exists(ctx, 1, 10)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Other users are isolated", func(t *testing.T) {
		got, err := repo.ListByUser(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestApplicationRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore(memory.WithClock(tickingClock())).Applications()

	app, err := repo.Create(ctx, domain.ApplicationInput{UserID: 1, JobID: 5, CoverLetter: strPtr("Salve")})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusPending, app.Status)
	assert.False(t, app.AppliedAt.IsZero())

	_, err = repo.Create(ctx, domain.ApplicationInput{UserID: 2, JobID: 5, Status: domain.ApplicationStatusReviewing})
	require.NoError(t, err)

	t.Run("List by job newest first", func(t *testing.T) {
		got, err := repo.ListByJob(ctx, 5)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].UserID)
	})

	t.Run("List by user", func(t *testing.T) {
		got, err := repo.ListByUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, app.ID, got[0].ID)
	})

	t.Run("Status update keeps appliedAt", func(t *testing.T) {
		updated, err := repo.Update(ctx, app.ID, domain.ApplicationPatch{Status: strPtr(domain.ApplicationStatusAccepted)})
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, updated.Status)
		assert.Equal(t, app.AppliedAt, updated.AppliedAt)
		assert.Equal(t, "Salve", *updated.CoverLetter)
	})

	t.Run("Missing application", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 77)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore(memory.WithClock(tickingClock())).Users()

	user, err := repo.Create(ctx, domain.UserInput{
		Username: "giulia",
		Email:    "giulia@example.com",
		Password: "hash",
		FullName: "Giulia Bianchi",
		Skills:   []string{"Go"},
	})
	require.NoError(t, err)

	t.Run("Username and email are unique", func(t *testing.T) {
		_, err := repo.Create(ctx, domain.UserInput{Username: "giulia", Email: "other@example.com"})
		assert.ErrorIs(t, err, domain.ErrConflict)
		_, err = repo.Create(ctx, domain.UserInput{Username: "other", Email: "giulia@example.com"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("Lookups", func(t *testing.T) {
		byName, err := repo.GetByUsername(ctx, "giulia")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		byEmail, err := repo.GetByEmail(ctx, "giulia@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Update profile", func(t *testing.T) {
		updated, err := repo.Update(ctx, user.ID, domain.UserPatch{
			Bio:   strPtr("Sviluppatrice backend"),
			CVURL: strPtr("/uploads/cv/giulia.pdf"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Sviluppatrice backend", *updated.Bio)
		assert.Equal(t, "/uploads/cv/giulia.pdf", *updated.CVURL)
		assert.Equal(t, []string{"Go"}, updated.Skills)
	})

	t.Run("Email change cannot collide", func(t *testing.T) {
		other, err := repo.Create(ctx, domain.UserInput{Username: "marco", Email: "marco@example.com"})
		require.NoError(t, err)
		_, err = repo.Update(ctx, other.ID, domain.UserPatch{Email: strPtr("giulia@example.com")})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
