package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/utils"
)

type SuperadminService struct {
	repo       ports.SuperadminRepository
	tenants    ports.TenantRepository
	properties ports.PropertyRepository
	billing    ports.BillingRepository
	logger     *logrus.Logger
	now        func() time.Time
}

func NewSuperadminService(repo ports.SuperadminRepository, tenants ports.TenantRepository, properties ports.PropertyRepository, billing ports.BillingRepository, logger *logrus.Logger) *SuperadminService {
	return &SuperadminService{repo: repo, tenants: tenants, properties: properties, billing: billing, logger: logger, now: time.Now}
}

var _ ports.SuperadminService = (*SuperadminService)(nil)

// Dashboard gathers platform totals plus recent and overdue tenants.
func (s *SuperadminService) Dashboard(ctx context.Context) (*superadmin.Dashboard, error) {
	d := &superadmin.Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalTenants, err = s.tenants.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalProperties, err = s.properties.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.ActiveTenants, err = s.tenants.CountByStatus(gctx, tenant.StatusActive)
		return err
	})
	g.Go(func() (err error) {
		d.SuspendedCount, err = s.tenants.CountByStatus(gctx, tenant.StatusSuspended)
		return err
	})
	g.Go(func() (err error) {
		d.RecentTenants, err = s.tenants.ListRecent(gctx, superadmin.RecentTenantsLimit)
		return err
	})
	g.Go(func() (err error) {
		d.OverdueTenants, err = s.tenants.ListOverdue(gctx, s.now(), superadmin.OverdueTenantsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// TenantDetail loads a tenant with its plan, properties and payment history.
func (s *SuperadminService) TenantDetail(ctx context.Context, tenantID uuid.UUID) (*superadmin.TenantDetail, error) {
	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	d := &superadmin.TenantDetail{Tenant: t}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Properties, err = s.properties.ListByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		d.Payments, err = s.billing.ListPayments(gctx, tenantID)
		return err
	})
	if t.SubscriptionPlanID != nil {
		g.Go(func() error {
			plan, err := s.billing.GetPlan(gctx, *t.SubscriptionPlanID)
			if err != nil {
				if s.logger != nil {
					s.logger.WithFields(logrus.Fields{"tenant_id": tenantID}).WithError(err).Warn("tenant plan lookup failed")
				}
				return nil
			}
			d.Plan = plan
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *SuperadminService) CreateSuperadmin(ctx context.Context, req *superadmin.CreateRequest) (*superadmin.Superadmin, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, domain.Invalid("Email, name and password are required.")
	}
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	sa := &superadmin.Superadmin{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, sa); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"superadmin_id": sa.ID, "email": sa.Email}).Info("superadmin created")
	}
	return sa, nil
}

func (s *SuperadminService) ListSuperadmins(ctx context.Context) ([]*superadmin.Superadmin, error) {
	return s.repo.List(ctx)
}
