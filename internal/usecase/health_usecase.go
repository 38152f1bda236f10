package usecase

import (
	"context"

	"jobflix-backend/pkg/redis"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	storage Pinger
	driver  string
}

func NewHealthUsecase(storage Pinger, driver string) HealthUsecase {
	return &healthUsecase{storage: storage, driver: driver}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":  "ok",
		"storage": u.driver,
		"redis":   "disabled",
	}

	if err := u.storage.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["storage_error"] = err.Error()
	}

	if redis.IsAvailable() {
		if err := redis.HealthCheck(ctx); err != nil {
			status["status"] = "degraded"
			status["redis"] = "unreachable"
		} else {
			status["redis"] = "ok"
		}
	}
	return status
}
