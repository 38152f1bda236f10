package usecase

import (
	"errors"

	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
)

// storageError maps repository errors onto HTTP-facing app errors.
func storageError(err error, entity string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(entity + " not found")
	case errors.Is(err, domain.ErrConflict):
		return apperror.Conflict(entity + " already exists")
	default:
		return apperror.Internal(err)
	}
}

func checkSalaryRange(floor, ceiling *int) error {
	if floor != nil && ceiling != nil && *floor > *ceiling {
		return apperror.BadRequest("salaryMin cannot be greater than salaryMax")
	}
	return nil
}
