package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

type AuditService struct {
	repo   ports.AuditRepository
	logger *logrus.Logger
}

func NewAuditService(repo ports.AuditRepository, logger *logrus.Logger) ports.AuditService {
	return &AuditService{
		repo:   repo,
		logger: logger,
	}
}

func (s *AuditService) LogAction(ctx context.Context, req *audit.CreateAuditLogRequest) error {
	auditLog := &audit.AuditLog{
		TenantID:   req.TenantID,
		ActorID:    req.ActorID,
		ActorRole:  req.ActorRole,
		Action:     string(req.Action),
		Timestamp:  time.Now(),
		Resource:   string(req.Resource),
		ResourceID: req.ResourceID,
		Details:    req.Details,
		IPAddress:  req.IPAddress,
		UserAgent:  req.UserAgent,
	}

	err := s.repo.Create(ctx, auditLog)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"tenant_id": req.TenantID, "actor_id": req.ActorID, "action": req.Action, "resource": req.Resource}).WithError(err).Error("failed to persist audit log")
		}
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"tenant_id": req.TenantID, "actor_id": req.ActorID, "action": req.Action, "resource": req.Resource, "resource_id": req.ResourceID}).Debug("audit log persisted")
	}
	return nil
}

func (s *AuditService) GetAuditLogs(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, int, error) {
	if filter == nil {
		filter = &audit.AuditLogFilter{}
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}

	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// PruneAuditLogs deletes entries older than retention. Retention under a day
// is rejected so a bad flag cannot wipe the trail.
func (s *AuditService) PruneAuditLogs(ctx context.Context, retention time.Duration) (int64, error) {
	if retention < 24*time.Hour {
		return 0, domain.Invalid("audit retention must be at least 24h")
	}
	cutoff := time.Now().Add(-retention)
	n, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"cutoff": cutoff.Format(time.RFC3339), "deleted": n}).Info("audit logs pruned")
	}
	return n, nil
}
