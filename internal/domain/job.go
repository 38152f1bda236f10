package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// Job types
const (
	JobTypeFullTime = "full-time"
	JobTypePartTime = "part-time"
	JobTypeContract = "contract"
	JobTypeRemote   = "remote"
)

// Job levels
const (
	JobLevelEntry     = "entry"
	JobLevelMid       = "mid"
	JobLevelSenior    = "senior"
	JobLevelExecutive = "executive"
)

var (
	JobTypes  = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote}
	JobLevels = []string{JobLevelEntry, JobLevelMid, JobLevelSenior, JobLevelExecutive}
)

// Job is a posted position. Company is a denormalized display name for CompanyID;
// the two are not kept in sync when a company is renamed.
type Job struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Company      string     `json:"company"`
	CompanyID    *int64     `json:"companyId"`
	Location     string     `json:"location"`
	Type         string     `json:"type"`
	Level        string     `json:"level"`
	Category     string     `json:"category"`
	SalaryMin    *int       `json:"salaryMin"`
	SalaryMax    *int       `json:"salaryMax"`
	Skills       []string   `json:"skills"`
	Requirements []string   `json:"requirements"`
	Benefits     []string   `json:"benefits"`
	IsActive     bool       `json:"isActive"`
	PostedAt     time.Time  `json:"postedAt"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

// JobInput holds the writable fields of a new job. IsActive defaults to true when nil.
type JobInput struct {
	Title        string
	Description  string
	Company      string
	CompanyID    *int64
	Location     string
	Type         string
	Level        string
	Category     string
	SalaryMin    *int
	SalaryMax    *int
	Skills       []string
	Requirements []string
	Benefits     []string
	IsActive     *bool
	ExpiresAt    *time.Time
}

// JobPatch is a partial update. Nil fields are left untouched.
type JobPatch struct {
	Title        *string
	Description  *string
	Company      *string
	CompanyID    *int64
	Location     *string
	Type         *string
	Level        *string
	Category     *string
	SalaryMin    *int
	SalaryMax    *int
	Skills       []string
	Requirements []string
	Benefits     []string
	IsActive     *bool
	ExpiresAt    *time.Time
}

// NewJob builds the stored form of in with the generated id and posting time.
func NewJob(id int64, in JobInput, postedAt time.Time) Job {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return Job{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Company:      in.Company,
		CompanyID:    cloneInt64(in.CompanyID),
		Location:     in.Location,
		Type:         in.Type,
		Level:        in.Level,
		Category:     in.Category,
		SalaryMin:    cloneInt(in.SalaryMin),
		SalaryMax:    cloneInt(in.SalaryMax),
		Skills:       listOf(in.Skills),
		Requirements: listOf(in.Requirements),
		Benefits:     listOf(in.Benefits),
		IsActive:     active,
		PostedAt:     postedAt,
		ExpiresAt:    cloneTime(in.ExpiresAt),
	}
}

// Apply merges p into j field by field. ID and PostedAt are never touched.
func (p JobPatch) Apply(j *Job) {
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Company != nil {
		j.Company = *p.Company
	}
	if p.CompanyID != nil {
		j.CompanyID = cloneInt64(p.CompanyID)
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.Type != nil {
		j.Type = *p.Type
	}
	if p.Level != nil {
		j.Level = *p.Level
	}
	if p.Category != nil {
		j.Category = *p.Category
	}
	if p.SalaryMin != nil {
		j.SalaryMin = cloneInt(p.SalaryMin)
	}
	if p.SalaryMax != nil {
		j.SalaryMax = cloneInt(p.SalaryMax)
	}
	if p.Skills != nil {
		j.Skills = cloneStrings(p.Skills)
	}
	if p.Requirements != nil {
		j.Requirements = cloneStrings(p.Requirements)
	}
	if p.Benefits != nil {
		j.Benefits = cloneStrings(p.Benefits)
	}
	if p.IsActive != nil {
		j.IsActive = *p.IsActive
	}
	if p.ExpiresAt != nil {
		j.ExpiresAt = cloneTime(p.ExpiresAt)
	}
}

// Clone returns a deep copy of j.
func (j Job) Clone() Job {
	c := j
	c.CompanyID = cloneInt64(j.CompanyID)
	c.SalaryMin = cloneInt(j.SalaryMin)
	c.SalaryMax = cloneInt(j.SalaryMax)
	c.Skills = cloneStrings(j.Skills)
	c.Requirements = cloneStrings(j.Requirements)
	c.Benefits = cloneStrings(j.Benefits)
	c.ExpiresAt = cloneTime(j.ExpiresAt)
	return c
}

// JobCategory is one row of the category aggregate shown on the home page.
type JobCategory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Icon  string `json:"icon"`
}

type JobRepository interface {
	Create(ctx context.Context, in JobInput) (*Job, error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]Job, error)
	ListByCompany(ctx context.Context, companyID int64) ([]Job, error)
	Update(ctx context.Context, id int64, patch JobPatch) (*Job, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Categories(ctx context.Context) ([]JobCategory, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, in JobInput) (*Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]Job, error)
	UpdateJob(ctx context.Context, id int64, patch JobPatch) (*Job, error)
	DeleteJob(ctx context.Context, id int64) error
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// listOf copies s, turning nil into an empty list.
func listOf(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
