package usecase

import (
	"context"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/cache"
	"jobflix-backend/pkg/logger"
)

const (
	cacheKeyCategories = "categories"
	cacheKeyFeatured   = "companies:featured"
)

// CatalogCache is the subset of *cache.Cache the catalog reads through.
type CatalogCache interface {
	Get(ctx context.Context, name string, dest any) (bool, error)
	Generation(ctx context.Context, name string) (int64, error)
	SetIfGeneration(ctx context.Context, name string, gen int64, value any) (bool, error)
	Invalidate(ctx context.Context, name string) error
}

type catalogUsecase struct {
	jobRepo       domain.JobRepository
	companyRepo   domain.CompanyRepository
	cache         CatalogCache
	featuredLimit int
}

// NewCatalogUsecase serves categories and featured companies, read through c when it is
// enabled. A non-positive featuredLimit falls back to domain.DefaultFeaturedLimit.
func NewCatalogUsecase(jobRepo domain.JobRepository, companyRepo domain.CompanyRepository, c CatalogCache, featuredLimit int) domain.CatalogUsecase {
	if c == nil {
		c = cache.New(nil, 0, "")
	}
	if featuredLimit <= 0 {
		featuredLimit = domain.DefaultFeaturedLimit
	}
	return &catalogUsecase{
		jobRepo:       jobRepo,
		companyRepo:   companyRepo,
		cache:         c,
		featuredLimit: featuredLimit,
	}
}

func (u *catalogUsecase) Categories(ctx context.Context) ([]domain.JobCategory, error) {
	var cached []domain.JobCategory
	if u.readCache(ctx, cacheKeyCategories, &cached) {
		return cached, nil
	}

	gen, genOK := u.generation(ctx, cacheKeyCategories)
	categories, err := u.jobRepo.Categories(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if categories == nil {
		categories = []domain.JobCategory{}
	}
	if genOK {
		u.writeCache(ctx, cacheKeyCategories, gen, categories)
	}
	return categories, nil
}

func (u *catalogUsecase) FeaturedCompanies(ctx context.Context) ([]domain.Company, error) {
	var cached []domain.Company
	if u.readCache(ctx, cacheKeyFeatured, &cached) {
		return cached, nil
	}

	gen, genOK := u.generation(ctx, cacheKeyFeatured)
	companies, err := u.companyRepo.Featured(ctx, u.featuredLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	if genOK {
		u.writeCache(ctx, cacheKeyFeatured, gen, companies)
	}
	return companies, nil
}

func (u *catalogUsecase) InvalidateCategories(ctx context.Context) {
	u.invalidate(ctx, cacheKeyCategories)
}

func (u *catalogUsecase) InvalidateFeatured(ctx context.Context) {
	u.invalidate(ctx, cacheKeyFeatured)
}

// Cache failures never fail a request; the store stays the source of truth.
func (u *catalogUsecase) readCache(ctx context.Context, key string, dest any) bool {
	hit, err := u.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Log.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

// generation must be read before storage is; otherwise an invalidation landing
// between the two would go unnoticed.
func (u *catalogUsecase) generation(ctx context.Context, key string) (int64, bool) {
	gen, err := u.cache.Generation(ctx, key)
	if err != nil {
		logger.Log.Warn("cache generation read failed", "key", key, "error", err)
		return 0, false
	}
	return gen, true
}

func (u *catalogUsecase) writeCache(ctx context.Context, key string, gen int64, value any) {
	if _, err := u.cache.SetIfGeneration(ctx, key, gen, value); err != nil {
		logger.Log.Warn("cache write failed", "key", key, "error", err)
	}
}

func (u *catalogUsecase) invalidate(ctx context.Context, key string) {
	if err := u.cache.Invalidate(ctx, key); err != nil {
		logger.Log.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
