package usecase

import (
	"context"
	"time"

	"job-portal-backend/internal/domain"
)

const (
	statusOK           = "ok"
	statusDegraded     = "degraded"
	statusDown         = "down"
	statusNotConfigure = "not_configured"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	db    Pinger
	redis func(ctx context.Context) error
}

// NewHealthUsecase reports database and Redis reachability. redisPing may
// be nil when Redis is not configured.
func NewHealthUsecase(db Pinger, redisPing func(ctx context.Context) error) domain.HealthUsecase {
	return &healthUsecase{db: db, redis: redisPing}
}

func (u *healthUsecase) Check(ctx context.Context) *domain.HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := &domain.HealthStatus{Status: statusOK, Database: statusOK, Redis: statusNotConfigure}
	if u.db == nil || u.db.Ping(ctx) != nil {
		status.Status = statusDegraded
		status.Database = statusDown
	}
	if u.redis != nil {
		status.Redis = statusOK
		if err := u.redis(ctx); err != nil {
			status.Redis = statusDown
		}
	}
	return status
}
