package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
)

// SuperadminRepository defines the interface for platform operator accounts.
type SuperadminRepository interface {
	Create(ctx context.Context, s *superadmin.Superadmin) error
	GetByEmail(ctx context.Context, email string) (*superadmin.Superadmin, error)
	GetByID(ctx context.Context, id uuid.UUID) (*superadmin.Superadmin, error)
	List(ctx context.Context) ([]*superadmin.Superadmin, error)
}

// SuperadminService provides the platform operator views.
type SuperadminService interface {
	Dashboard(ctx context.Context) (*superadmin.Dashboard, error)
	TenantDetail(ctx context.Context, tenantID uuid.UUID) (*superadmin.TenantDetail, error)
	CreateSuperadmin(ctx context.Context, req *superadmin.CreateRequest) (*superadmin.Superadmin, error)
	ListSuperadmins(ctx context.Context) ([]*superadmin.Superadmin, error)
}
