package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/utils"
)

type TenantService struct {
	repo      ports.TenantRepository
	tokenRepo ports.TokenRepository
	logger    *logrus.Logger
	now       func() time.Time
}

func NewTenantService(repo ports.TenantRepository, tokenRepo ports.TokenRepository, logger *logrus.Logger) *TenantService {
	return &TenantService{repo: repo, tokenRepo: tokenRepo, logger: logger, now: time.Now}
}

var _ ports.TenantService = (*TenantService)(nil)

// Signup creates an active owner account.
func (s *TenantService) Signup(ctx context.Context, req *tenant.SignupRequest) (*tenant.Tenant, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.FullName)
	if email == "" || name == "" {
		return nil, domain.Invalid("Email, password and full name are required.")
	}
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &tenant.Tenant{
		ID:                 uuid.New(),
		Email:              email,
		PasswordHash:       hash,
		FullName:           name,
		SubscriptionStatus: tenant.StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		t.Phone = &phone
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"tenant_id": t.ID}).Info("tenant signed up")
	}
	return t, nil
}

func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus changes the subscription status. Cancelling a tenant also ends
// its dashboard sessions.
func (s *TenantService) UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes string) (*tenant.Tenant, error) {
	if !status.IsValid() {
		return nil, domain.Invalid("Invalid status")
	}
	var notesPtr *string
	if n := strings.TrimSpace(notes); n != "" {
		notesPtr = &n
	}
	if err := s.repo.UpdateStatus(ctx, id, status, notesPtr); err != nil {
		return nil, err
	}

	if status == tenant.StatusCancelled && s.tokenRepo != nil {
		if n, err := s.tokenRepo.DeleteSubjectTokenClaims(ctx, id, nil); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"tenant_id": id}).WithError(err).Warn("failed to end sessions of cancelled tenant")
			}
		} else if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"tenant_id": id, "sessions": n}).Info("ended sessions of cancelled tenant")
		}
	}

	return s.repo.GetByID(ctx, id)
}

func (s *TenantService) ListTenants(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
