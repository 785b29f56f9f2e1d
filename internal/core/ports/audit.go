package ports

import (
	"context"
	"time"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
)

// AuditRepository persists the append-only trail of owner and operator actions.
type AuditRepository interface {
	Create(ctx context.Context, log *audit.AuditLog) error
	List(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, error)
	Count(ctx context.Context, filter *audit.AuditLogFilter) (int, error)
	// DeleteBefore removes entries recorded strictly before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type AuditService interface {
	LogAction(ctx context.Context, req *audit.CreateAuditLogRequest) error
	// GetAuditLogs returns one page of entries plus the total matching the filter.
	GetAuditLogs(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, int, error)
	PruneAuditLogs(ctx context.Context, retention time.Duration) (int64, error)
}
