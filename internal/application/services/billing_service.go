package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

type BillingService struct {
	repo    ports.BillingRepository
	tenants ports.TenantRepository
	logger  *logrus.Logger
	now     func() time.Time
}

func NewBillingService(repo ports.BillingRepository, tenants ports.TenantRepository, logger *logrus.Logger) *BillingService {
	return &BillingService{repo: repo, tenants: tenants, logger: logger, now: time.Now}
}

var _ ports.BillingService = (*BillingService)(nil)

func (s *BillingService) ListPlans(ctx context.Context) ([]*billing.Plan, error) {
	return s.repo.ListPlans(ctx)
}

// RecordPayment stores a completed payment and reactivates the tenant until
// the end of the paid period.
func (s *BillingService) RecordPayment(ctx context.Context, recordedBy uuid.UUID, req *billing.RecordPaymentRequest) (*billing.Payment, error) {
	var by *uuid.UUID
	if recordedBy != uuid.Nil {
		by = &recordedBy
	}
	p, err := req.Parsed(s.now(), by)
	if err != nil {
		return nil, err
	}
	if _, err := s.tenants.GetByID(ctx, p.TenantID); err != nil {
		return nil, err
	}
	if err := s.repo.RecordPayment(ctx, p); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"tenant_id":  p.TenantID,
			"payment_id": p.ID,
			"amount":     p.Amount,
			"period_end": p.PeriodEnd.Format("2006-01-02"),
		}).Info("payment recorded")
	}
	return p, nil
}

// SeedPlans upserts plans by name.
func (s *BillingService) SeedPlans(ctx context.Context, plans []*billing.Plan) error {
	for _, p := range plans {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || p.MaxProperties <= 0 {
			return domain.Invalid("plan name and max_properties are required")
		}
		if p.Currency == "" {
			p.Currency = billing.CurrencyLKR
		}
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = s.now()
		}
		if err := s.repo.UpsertPlan(ctx, p); err != nil {
			return err
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"plan": p.Name, "max_properties": p.MaxProperties}).Info("plan seeded")
		}
	}
	return nil
}
