// Package mocks holds function-field test doubles for the ports. A nil
// function field falls back to a harmless default.
package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/domain/inquiry"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

// TokenRepositoryMock is a lightweight mock for TokenRepository
type TokenRepositoryMock struct {
	StoreRefreshTokenFn        func(ctx context.Context, token string, rt *auth.RefreshToken) error
	GetRefreshTokenFn          func(ctx context.Context, token string) (*auth.RefreshToken, error)
	DeleteRefreshTokenFn       func(ctx context.Context, token string) error
	IsTokenBlacklistedFn       func(ctx context.Context, token string) (bool, error)
	BlacklistTokenFn           func(ctx context.Context, token string, expiresAt time.Time) error
	StoreTokenClaimsFn         func(ctx context.Context, tokenHash string, claims *auth.Claims, expiresAt time.Time) error
	GetTokenClaimsFn           func(ctx context.Context, tokenHash string) (*auth.Claims, error)
	UpdateTokenActivityFn      func(ctx context.Context, tokenHash, ipAddress, userAgent string) error
	DeleteTokenClaimsFn        func(ctx context.Context, tokenHash string) error
	DeleteSubjectTokenClaimsFn func(ctx context.Context, subjectID uuid.UUID, keepTokenHash *string) (int, error)

	ClaimRefreshRotationFn    func(ctx context.Context, token string, window time.Duration) (bool, error)
	CompleteRefreshRotationFn func(ctx context.Context, token string, tokens *auth.AuthTokens, window time.Duration) error
	GetRefreshRotationFn      func(ctx context.Context, token string) (*auth.AuthTokens, bool, error)
}

var _ ports.TokenRepository = (*TokenRepositoryMock)(nil)

func (m *TokenRepositoryMock) ClaimRefreshRotation(ctx context.Context, token string, window time.Duration) (bool, error) {
	if m.ClaimRefreshRotationFn != nil {
		return m.ClaimRefreshRotationFn(ctx, token, window)
	}
	return true, nil
}
func (m *TokenRepositoryMock) CompleteRefreshRotation(ctx context.Context, token string, tokens *auth.AuthTokens, window time.Duration) error {
	if m.CompleteRefreshRotationFn != nil {
		return m.CompleteRefreshRotationFn(ctx, token, tokens, window)
	}
	return nil
}
func (m *TokenRepositoryMock) GetRefreshRotation(ctx context.Context, token string) (*auth.AuthTokens, bool, error) {
	if m.GetRefreshRotationFn != nil {
		return m.GetRefreshRotationFn(ctx, token)
	}
	return nil, false, nil
}

func (m *TokenRepositoryMock) StoreRefreshToken(ctx context.Context, token string, rt *auth.RefreshToken) error {
	if m.StoreRefreshTokenFn != nil {
		return m.StoreRefreshTokenFn(ctx, token, rt)
	}
	return nil
}
func (m *TokenRepositoryMock) GetRefreshToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	if m.GetRefreshTokenFn != nil {
		return m.GetRefreshTokenFn(ctx, token)
	}
	return nil, fmt.Errorf("not found")
}
func (m *TokenRepositoryMock) DeleteRefreshToken(ctx context.Context, token string) error {
	if m.DeleteRefreshTokenFn != nil {
		return m.DeleteRefreshTokenFn(ctx, token)
	}
	return nil
}
func (m *TokenRepositoryMock) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if m.IsTokenBlacklistedFn != nil {
		return m.IsTokenBlacklistedFn(ctx, token)
	}
	return false, nil
}
func (m *TokenRepositoryMock) BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error {
	if m.BlacklistTokenFn != nil {
		return m.BlacklistTokenFn(ctx, token, expiresAt)
	}
	return nil
}
func (m *TokenRepositoryMock) StoreTokenClaims(ctx context.Context, tokenHash string, claims *auth.Claims, expiresAt time.Time) error {
	if m.StoreTokenClaimsFn != nil {
		return m.StoreTokenClaimsFn(ctx, tokenHash, claims, expiresAt)
	}
	return nil
}
func (m *TokenRepositoryMock) GetTokenClaims(ctx context.Context, tokenHash string) (*auth.Claims, error) {
	if m.GetTokenClaimsFn != nil {
		return m.GetTokenClaimsFn(ctx, tokenHash)
	}
	return nil, fmt.Errorf("not found")
}
func (m *TokenRepositoryMock) UpdateTokenActivity(ctx context.Context, tokenHash, ipAddress, userAgent string) error {
	if m.UpdateTokenActivityFn != nil {
		return m.UpdateTokenActivityFn(ctx, tokenHash, ipAddress, userAgent)
	}
	return nil
}
func (m *TokenRepositoryMock) DeleteTokenClaims(ctx context.Context, tokenHash string) error {
	if m.DeleteTokenClaimsFn != nil {
		return m.DeleteTokenClaimsFn(ctx, tokenHash)
	}
	return nil
}
func (m *TokenRepositoryMock) DeleteSubjectTokenClaims(ctx context.Context, subjectID uuid.UUID, keepTokenHash *string) (int, error) {
	if m.DeleteSubjectTokenClaimsFn != nil {
		return m.DeleteSubjectTokenClaimsFn(ctx, subjectID, keepTokenHash)
	}
	return 0, nil
}
func (m *TokenRepositoryMock) DeleteExpiredTokenClaims(ctx context.Context) error { return nil }

// ResetTokenRepositoryMock mocks ResetTokenRepository
type ResetTokenRepositoryMock struct {
	CreateFn     func(ctx context.Context, token *auth.ResetToken) error
	GetFn        func(ctx context.Context, token string) (*auth.ResetToken, error)
	MarkAsUsedFn func(ctx context.Context, tokenID uuid.UUID) error
}

var _ ports.ResetTokenRepository = (*ResetTokenRepositoryMock)(nil)

func (m *ResetTokenRepositoryMock) Create(ctx context.Context, token *auth.ResetToken) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token)
	}
	return nil
}
func (m *ResetTokenRepositoryMock) Get(ctx context.Context, token string) (*auth.ResetToken, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, token)
	}
	return nil, auth.ErrInvalidResetToken
}
func (m *ResetTokenRepositoryMock) MarkAsUsed(ctx context.Context, tokenID uuid.UUID) error {
	if m.MarkAsUsedFn != nil {
		return m.MarkAsUsedFn(ctx, tokenID)
	}
	return nil
}

// TenantRepositoryMock mocks TenantRepository
type TenantRepositoryMock struct {
	CreateFn         func(ctx context.Context, t *tenant.Tenant) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	GetByEmailFn     func(ctx context.Context, email string) (*tenant.Tenant, error)
	UpdatePasswordFn func(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes *string) error
	TouchLoginFn     func(ctx context.Context, id uuid.UUID, at time.Time) error
	ListFn           func(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, error)
	CountFn          func(ctx context.Context) (int, error)
	CountByStatusFn  func(ctx context.Context, status tenant.SubscriptionStatus) (int, error)
	ListRecentFn     func(ctx context.Context, limit int) ([]*tenant.Tenant, error)
	ListOverdueFn    func(ctx context.Context, now time.Time, limit int) ([]*tenant.Tenant, error)
}

var _ ports.TenantRepository = (*TenantRepositoryMock)(nil)

func (m *TenantRepositoryMock) Create(ctx context.Context, t *tenant.Tenant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}
func (m *TenantRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, tenant.ErrNotFound
}
func (m *TenantRepositoryMock) GetByEmail(ctx context.Context, email string) (*tenant.Tenant, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, tenant.ErrNotFound
}
func (m *TenantRepositoryMock) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, passwordHash)
	}
	return nil
}
func (m *TenantRepositoryMock) UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes *string) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status, notes)
	}
	return nil
}
func (m *TenantRepositoryMock) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.TouchLoginFn != nil {
		return m.TouchLoginFn(ctx, id, at)
	}
	return nil
}
func (m *TenantRepositoryMock) List(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, nil
}
func (m *TenantRepositoryMock) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}
func (m *TenantRepositoryMock) CountByStatus(ctx context.Context, status tenant.SubscriptionStatus) (int, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}
func (m *TenantRepositoryMock) ListRecent(ctx context.Context, limit int) ([]*tenant.Tenant, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}
	return nil, nil
}
func (m *TenantRepositoryMock) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*tenant.Tenant, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, now, limit)
	}
	return nil, nil
}

// SuperadminRepositoryMock mocks SuperadminRepository
type SuperadminRepositoryMock struct {
	CreateFn     func(ctx context.Context, s *superadmin.Superadmin) error
	GetByEmailFn func(ctx context.Context, email string) (*superadmin.Superadmin, error)
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*superadmin.Superadmin, error)
	ListFn       func(ctx context.Context) ([]*superadmin.Superadmin, error)
}

var _ ports.SuperadminRepository = (*SuperadminRepositoryMock)(nil)

func (m *SuperadminRepositoryMock) Create(ctx context.Context, s *superadmin.Superadmin) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}
func (m *SuperadminRepositoryMock) GetByEmail(ctx context.Context, email string) (*superadmin.Superadmin, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("not found")
}
func (m *SuperadminRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*superadmin.Superadmin, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *SuperadminRepositoryMock) List(ctx context.Context) ([]*superadmin.Superadmin, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

// PropertyRepositoryMock mocks PropertyRepository and SiteResolver
type PropertyRepositoryMock struct {
	CreateFn            func(ctx context.Context, p *property.Property) error
	GetByIDFn           func(ctx context.Context, id uuid.UUID) (*property.Property, error)
	GetBySlugFn         func(ctx context.Context, slug string) (*property.Property, error)
	GetByCustomDomainFn func(ctx context.Context, domain string) (*property.Property, error)
	UpdateFn            func(ctx context.Context, p *property.Property) error
	DeleteFn            func(ctx context.Context, id uuid.UUID) error
	ListByTenantFn      func(ctx context.Context, tenantID uuid.UUID) ([]*property.Property, error)
	CountByTenantFn     func(ctx context.Context, tenantID uuid.UUID) (int, error)
	CountFn             func(ctx context.Context) (int, error)
	SlugExistsFn        func(ctx context.Context, slug string) (bool, error)
	ResolveHostFn       func(ctx context.Context, host, slug string) (*property.Property, error)
	InvalidateFn        func(ctx context.Context, p *property.Property)
}

var (
	_ ports.PropertyRepository = (*PropertyRepositoryMock)(nil)
	_ ports.SiteResolver       = (*PropertyRepositoryMock)(nil)
)

func (m *PropertyRepositoryMock) Create(ctx context.Context, p *property.Property) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *PropertyRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, property.ErrNotFound
}
func (m *PropertyRepositoryMock) GetBySlug(ctx context.Context, slug string) (*property.Property, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}
	return nil, property.ErrNotFound
}
func (m *PropertyRepositoryMock) GetByCustomDomain(ctx context.Context, domain string) (*property.Property, error) {
	if m.GetByCustomDomainFn != nil {
		return m.GetByCustomDomainFn(ctx, domain)
	}
	return nil, property.ErrNotFound
}
func (m *PropertyRepositoryMock) Update(ctx context.Context, p *property.Property) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	return nil
}
func (m *PropertyRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *PropertyRepositoryMock) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*property.Property, error) {
	if m.ListByTenantFn != nil {
		return m.ListByTenantFn(ctx, tenantID)
	}
	return nil, nil
}
func (m *PropertyRepositoryMock) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	if m.CountByTenantFn != nil {
		return m.CountByTenantFn(ctx, tenantID)
	}
	return 0, nil
}
func (m *PropertyRepositoryMock) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}
func (m *PropertyRepositoryMock) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.SlugExistsFn != nil {
		return m.SlugExistsFn(ctx, slug)
	}
	return false, nil
}
func (m *PropertyRepositoryMock) ResolveHost(ctx context.Context, host, slug string) (*property.Property, error) {
	if m.ResolveHostFn != nil {
		return m.ResolveHostFn(ctx, host, slug)
	}
	return nil, property.ErrNotFound
}
func (m *PropertyRepositoryMock) Invalidate(ctx context.Context, p *property.Property) {
	if m.InvalidateFn != nil {
		m.InvalidateFn(ctx, p)
	}
}

// ChildRepositoryMock mocks any per-property content repository.
type ChildRepositoryMock[T any] struct {
	CreateFn         func(ctx context.Context, item *T) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*T, error)
	UpdateFn         func(ctx context.Context, item *T) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	ListByPropertyFn func(ctx context.Context, propertyID uuid.UUID) ([]*T, error)
}

func (m *ChildRepositoryMock[T]) Create(ctx context.Context, item *T) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	return nil
}
func (m *ChildRepositoryMock[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not found")
}
func (m *ChildRepositoryMock[T]) Update(ctx context.Context, item *T) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, item)
	}
	return nil
}
func (m *ChildRepositoryMock[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *ChildRepositoryMock[T]) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*T, error) {
	if m.ListByPropertyFn != nil {
		return m.ListByPropertyFn(ctx, propertyID)
	}
	return []*T{}, nil
}

// BookingRepositoryMock mocks BookingRepository
type BookingRepositoryMock struct {
	CreateIfAvailableFn  func(ctx context.Context, b *booking.Booking) error
	FindOverlappingFn    func(ctx context.Context, q booking.OverlapQuery) ([]*booking.Booking, error)
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByPropertyFn     func(ctx context.Context, propertyID uuid.UUID) ([]*booking.Booking, error)
	UpdateStatusFn       func(ctx context.Context, id uuid.UUID, status booking.Status) error
	ConfirmIfAvailableFn func(ctx context.Context, b *booking.Booking) error
	DeleteFn             func(ctx context.Context, id uuid.UUID) error
}

var _ ports.BookingRepository = (*BookingRepositoryMock)(nil)

func (m *BookingRepositoryMock) CreateIfAvailable(ctx context.Context, b *booking.Booking) error {
	if m.CreateIfAvailableFn != nil {
		return m.CreateIfAvailableFn(ctx, b)
	}
	return nil
}
func (m *BookingRepositoryMock) FindOverlapping(ctx context.Context, q booking.OverlapQuery) ([]*booking.Booking, error) {
	if m.FindOverlappingFn != nil {
		return m.FindOverlappingFn(ctx, q)
	}
	return nil, nil
}
func (m *BookingRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, booking.ErrNotFound
}
func (m *BookingRepositoryMock) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*booking.Booking, error) {
	if m.ListByPropertyFn != nil {
		return m.ListByPropertyFn(ctx, propertyID)
	}
	return nil, nil
}
func (m *BookingRepositoryMock) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}
func (m *BookingRepositoryMock) ConfirmIfAvailable(ctx context.Context, b *booking.Booking) error {
	if m.ConfirmIfAvailableFn != nil {
		return m.ConfirmIfAvailableFn(ctx, b)
	}
	return nil
}
func (m *BookingRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// InquiryRepositoryMock mocks InquiryRepository
type InquiryRepositoryMock struct {
	CreateFn         func(ctx context.Context, i *inquiry.Inquiry) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error)
	ListByPropertyFn func(ctx context.Context, propertyID uuid.UUID) ([]*inquiry.Inquiry, error)
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status inquiry.Status) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
}

var _ ports.InquiryRepository = (*InquiryRepositoryMock)(nil)

func (m *InquiryRepositoryMock) Create(ctx context.Context, i *inquiry.Inquiry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, i)
	}
	return nil
}
func (m *InquiryRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, inquiry.ErrNotFound
}
func (m *InquiryRepositoryMock) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*inquiry.Inquiry, error) {
	if m.ListByPropertyFn != nil {
		return m.ListByPropertyFn(ctx, propertyID)
	}
	return nil, nil
}
func (m *InquiryRepositoryMock) UpdateStatus(ctx context.Context, id uuid.UUID, status inquiry.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}
func (m *InquiryRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// BillingRepositoryMock mocks BillingRepository
type BillingRepositoryMock struct {
	ListPlansFn     func(ctx context.Context) ([]*billing.Plan, error)
	GetPlanFn       func(ctx context.Context, id uuid.UUID) (*billing.Plan, error)
	UpsertPlanFn    func(ctx context.Context, p *billing.Plan) error
	RecordPaymentFn func(ctx context.Context, p *billing.Payment) error
	ListPaymentsFn  func(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error)
}

var _ ports.BillingRepository = (*BillingRepositoryMock)(nil)

func (m *BillingRepositoryMock) ListPlans(ctx context.Context) ([]*billing.Plan, error) {
	if m.ListPlansFn != nil {
		return m.ListPlansFn(ctx)
	}
	return nil, nil
}
func (m *BillingRepositoryMock) GetPlan(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	if m.GetPlanFn != nil {
		return m.GetPlanFn(ctx, id)
	}
	return nil, billing.ErrPlanNotFound
}
func (m *BillingRepositoryMock) UpsertPlan(ctx context.Context, p *billing.Plan) error {
	if m.UpsertPlanFn != nil {
		return m.UpsertPlanFn(ctx, p)
	}
	return nil
}
func (m *BillingRepositoryMock) RecordPayment(ctx context.Context, p *billing.Payment) error {
	if m.RecordPaymentFn != nil {
		return m.RecordPaymentFn(ctx, p)
	}
	return nil
}
func (m *BillingRepositoryMock) ListPayments(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error) {
	if m.ListPaymentsFn != nil {
		return m.ListPaymentsFn(ctx, tenantID)
	}
	return nil, nil
}

// AuditRepositoryMock mocks AuditRepository
type AuditRepositoryMock struct {
	CreateFn func(ctx context.Context, log *audit.AuditLog) error
	ListFn   func(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, error)
	CountFn  func(ctx context.Context, filter *audit.AuditLogFilter) (int, error)

	DeleteBeforeFn func(ctx context.Context, cutoff time.Time) (int64, error)
}

var _ ports.AuditRepository = (*AuditRepositoryMock)(nil)

func (m *AuditRepositoryMock) Create(ctx context.Context, log *audit.AuditLog) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, log)
	}
	return nil
}
func (m *AuditRepositoryMock) List(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, nil
}
func (m *AuditRepositoryMock) Count(ctx context.Context, filter *audit.AuditLogFilter) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}
func (m *AuditRepositoryMock) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteBeforeFn != nil {
		return m.DeleteBeforeFn(ctx, cutoff)
	}
	return 0, nil
}
