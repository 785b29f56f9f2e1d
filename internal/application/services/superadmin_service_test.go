package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/mocks"
	"github.com/simpleoutings/homestay/internal/utils"
)

func TestSuperadminDashboard(t *testing.T) {
	tenants := &mocks.TenantRepositoryMock{
		CountFn: func(ctx context.Context) (int, error) { return 12, nil },
		CountByStatusFn: func(ctx context.Context, s tenant.SubscriptionStatus) (int, error) {
			if s == tenant.StatusActive {
				return 9, nil
			}
			return 2, nil
		},
		ListRecentFn: func(ctx context.Context, limit int) ([]*tenant.Tenant, error) {
			assert.Equal(t, superadmin.RecentTenantsLimit, limit)
			return []*tenant.Tenant{{ID: uuid.New()}}, nil
		},
		ListOverdueFn: func(ctx context.Context, now time.Time, limit int) ([]*tenant.Tenant, error) {
			assert.Equal(t, superadmin.OverdueTenantsLimit, limit)
			return []*tenant.Tenant{{ID: uuid.New()}, {ID: uuid.New()}}, nil
		},
	}
	props := &mocks.PropertyRepositoryMock{CountFn: func(ctx context.Context) (int, error) { return 15, nil }}
	svc := impl.NewSuperadminService(&mocks.SuperadminRepositoryMock{}, tenants, props, &mocks.BillingRepositoryMock{}, nil)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, d.TotalTenants)
	assert.Equal(t, 15, d.TotalProperties)
	assert.Equal(t, 9, d.ActiveTenants)
	assert.Equal(t, 2, d.SuspendedCount)
	assert.Len(t, d.RecentTenants, 1)
	assert.Len(t, d.OverdueTenants, 2)
}

func TestSuperadminDashboard_Error(t *testing.T) {
	tenants := &mocks.TenantRepositoryMock{CountFn: func(ctx context.Context) (int, error) { return 0, errors.New("db down") }}
	svc := impl.NewSuperadminService(&mocks.SuperadminRepositoryMock{}, tenants, &mocks.PropertyRepositoryMock{}, &mocks.BillingRepositoryMock{}, nil)

	_, err := svc.Dashboard(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestTenantDetail(t *testing.T) {
	planID := uuid.New()
	tenants := &mocks.TenantRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
		return &tenant.Tenant{ID: id, SubscriptionPlanID: &planID}, nil
	}}
	props := &mocks.PropertyRepositoryMock{ListByTenantFn: func(ctx context.Context, id uuid.UUID) ([]*property.Property, error) {
		return []*property.Property{{ID: uuid.New(), TenantID: id}}, nil
	}}
	bill := &mocks.BillingRepositoryMock{
		GetPlanFn: func(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
			return &billing.Plan{ID: id, Name: "Pro"}, nil
		},
		ListPaymentsFn: func(ctx context.Context, id uuid.UUID) ([]*billing.Payment, error) {
			return []*billing.Payment{{ID: uuid.New(), TenantID: id}}, nil
		},
	}
	svc := impl.NewSuperadminService(&mocks.SuperadminRepositoryMock{}, tenants, props, bill, nil)

	d, err := svc.TenantDetail(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, d.Plan)
	assert.Equal(t, "Pro", d.Plan.Name)
	assert.Len(t, d.Properties, 1)
	assert.Len(t, d.Payments, 1)
}

func TestTenantDetail_MissingPlanIsTolerated(t *testing.T) {
	planID := uuid.New()
	tenants := &mocks.TenantRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
		return &tenant.Tenant{ID: id, SubscriptionPlanID: &planID}, nil
	}}
	svc := impl.NewSuperadminService(&mocks.SuperadminRepositoryMock{}, tenants, &mocks.PropertyRepositoryMock{}, &mocks.BillingRepositoryMock{}, nil)

	d, err := svc.TenantDetail(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, d.Plan)

	svc = impl.NewSuperadminService(&mocks.SuperadminRepositoryMock{}, &mocks.TenantRepositoryMock{}, &mocks.PropertyRepositoryMock{}, &mocks.BillingRepositoryMock{}, nil)
	_, err = svc.TenantDetail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSuperadmin(t *testing.T) {
	var stored *superadmin.Superadmin
	repo := &mocks.SuperadminRepositoryMock{CreateFn: func(ctx context.Context, s *superadmin.Superadmin) error { stored = s; return nil }}
	svc := impl.NewSuperadminService(repo, &mocks.TenantRepositoryMock{}, &mocks.PropertyRepositoryMock{}, &mocks.BillingRepositoryMock{}, nil)

	sa, err := svc.CreateSuperadmin(context.Background(), &superadmin.CreateRequest{Email: " Ops@Example.com ", Name: "Ops", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Same(t, stored, sa)
	assert.Equal(t, "ops@example.com", sa.Email)
	assert.True(t, utils.CheckPassword(sa.PasswordHash, "s3cret-pass"))

	_, err = svc.CreateSuperadmin(context.Background(), &superadmin.CreateRequest{Email: "a@b.c", Name: "A", Password: "short"})
	assert.ErrorIs(t, err, utils.ErrPasswordTooShort)

	_, err = svc.CreateSuperadmin(context.Background(), &superadmin.CreateRequest{Email: "", Name: "A", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
