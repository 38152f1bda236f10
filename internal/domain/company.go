package domain

import (
	"context"
	"time"
)

// Company sizes
const (
	CompanySizeStartup = "startup"
	CompanySizeMedium  = "medium"
	CompanySizeLarge   = "large"
)

var CompanySizes = []string{CompanySizeStartup, CompanySizeMedium, CompanySizeLarge}

// DefaultFeaturedLimit is how many companies the home page features.
const DefaultFeaturedLimit = 6

type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	Size        string    `json:"size"`
	Logo        *string   `json:"logo"`
	Website     *string   `json:"website"`
	Location    string    `json:"location"`
	Founded     *int      `json:"founded"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CompanyInput struct {
	Name        string
	Description string
	Industry    string
	Size        string
	Logo        *string
	Website     *string
	Location    string
	Founded     *int
}

type CompanyPatch struct {
	Name        *string
	Description *string
	Industry    *string
	Size        *string
	Logo        *string
	Website     *string
	Location    *string
	Founded     *int
}

func NewCompany(id int64, in CompanyInput, createdAt time.Time) Company {
	return Company{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Industry:    in.Industry,
		Size:        in.Size,
		Logo:        cloneString(in.Logo),
		Website:     cloneString(in.Website),
		Location:    in.Location,
		Founded:     cloneInt(in.Founded),
		CreatedAt:   createdAt,
	}
}

func (p CompanyPatch) Apply(c *Company) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Industry != nil {
		c.Industry = *p.Industry
	}
	if p.Size != nil {
		c.Size = *p.Size
	}
	if p.Logo != nil {
		c.Logo = cloneString(p.Logo)
	}
	if p.Website != nil {
		c.Website = cloneString(p.Website)
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Founded != nil {
		c.Founded = cloneInt(p.Founded)
	}
}

func (c Company) Clone() Company {
	out := c
	out.Logo = cloneString(c.Logo)
	out.Website = cloneString(c.Website)
	out.Founded = cloneInt(c.Founded)
	return out
}

type CompanyRepository interface {
	Create(ctx context.Context, in CompanyInput) (*Company, error)
	GetByID(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, id int64, patch CompanyPatch) (*Company, error)
	// Featured returns at most limit companies in id order.
	Featured(ctx context.Context, limit int) ([]Company, error)
}

type CompanyUsecase interface {
	CreateCompany(ctx context.Context, in CompanyInput) (*Company, error)
	GetCompany(ctx context.Context, id int64) (*Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	UpdateCompany(ctx context.Context, id int64, patch CompanyPatch) (*Company, error)
	ListCompanyJobs(ctx context.Context, id int64) ([]Job, error)
}

// CatalogUsecase serves the aggregate views of the home page.
type CatalogUsecase interface {
	Categories(ctx context.Context) ([]JobCategory, error)
	FeaturedCompanies(ctx context.Context) ([]Company, error)
	InvalidateCategories(ctx context.Context)
	InvalidateFeatured(ctx context.Context)
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
