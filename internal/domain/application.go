package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewing   = "reviewing"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

var ApplicationStatuses = []string{
	ApplicationStatusPending,
	ApplicationStatusReviewing,
	ApplicationStatusInterviewed,
	ApplicationStatusRejected,
	ApplicationStatusAccepted,
}

// Application represents a user's application to a job
type Application struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	JobID       int64     `json:"jobId"`
	Status      string    `json:"status"`
	CoverLetter *string   `json:"coverLetter"`
	AppliedAt   time.Time `json:"appliedAt"`
}

// ApplicationInput creates an application. Status defaults to pending when empty.
type ApplicationInput struct {
	UserID      int64
	JobID       int64
	Status      string
	CoverLetter *string
}

type ApplicationPatch struct {
	Status      *string
	CoverLetter *string
}

func NewApplication(id int64, in ApplicationInput, appliedAt time.Time) Application {
	status := in.Status
	if status == "" {
		status = ApplicationStatusPending
	}
	return Application{
		ID:          id,
		UserID:      in.UserID,
		JobID:       in.JobID,
		Status:      status,
		CoverLetter: cloneString(in.CoverLetter),
		AppliedAt:   appliedAt,
	}
}

func (p ApplicationPatch) Apply(a *Application) {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.CoverLetter != nil {
		a.CoverLetter = cloneString(p.CoverLetter)
	}
}

func (a Application) Clone() Application {
	c := a
	c.CoverLetter = cloneString(a.CoverLetter)
	return c
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, in ApplicationInput) (*Application, error)
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByUser(ctx context.Context, userID int64) ([]Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]Application, error)
	Update(ctx context.Context, id int64, patch ApplicationPatch) (*Application, error)
}

// ApplicationExport is a rendered spreadsheet of a job's applications.
type ApplicationExport struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	Apply(ctx context.Context, in ApplicationInput) (*Application, error)
	GetApplication(ctx context.Context, id int64) (*Application, error)
	ListByUser(ctx context.Context, userID int64) ([]Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]Application, error)
	UpdateApplication(ctx context.Context, id int64, patch ApplicationPatch) (*Application, error)
	ExportByJob(ctx context.Context, jobID int64, format string) (*ApplicationExport, error)
}
