package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
)

// TenantRepository defines the interface for tenant (owner account) data operations
type TenantRepository interface {
	Create(ctx context.Context, t *tenant.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*tenant.Tenant, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes *string) error
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status tenant.SubscriptionStatus) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*tenant.Tenant, error)
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*tenant.Tenant, error)
}

// TenantService defines the interface for tenant business logic
type TenantService interface {
	Signup(ctx context.Context, req *tenant.SignupRequest) (*tenant.Tenant, error)
	GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes string) (*tenant.Tenant, error)
	ListTenants(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, int, error)
}
