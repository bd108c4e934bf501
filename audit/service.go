// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogAccess(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, q Query) ([]AuditLog, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) LogAccess(ctx context.Context, log AuditLog) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = s.now().UTC()
	}
	return s.repo.LogAccess(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, q Query) ([]AuditLog, error) {
	if q.To.IsZero() {
		q.To = s.now()
	}
	if q.From.IsZero() {
		q.From = q.To.Add(-24 * time.Hour)
	}
	return s.repo.QueryLogs(ctx, q)
}
