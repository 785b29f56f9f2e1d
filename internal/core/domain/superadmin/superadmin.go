package superadmin

import (
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
)

// Superadmin is a platform operator. Superadmins live apart from tenants and
// never own properties.
type Superadmin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// Dashboard summarises platform state for the operator home page.
type Dashboard struct {
	TotalTenants    int              `json:"totalTenants"`
	TotalProperties int              `json:"totalProperties"`
	ActiveTenants   int              `json:"activeTenants"`
	SuspendedCount  int              `json:"suspendedTenants"`
	RecentTenants   []*tenant.Tenant `json:"recentTenants"`
	OverdueTenants  []*tenant.Tenant `json:"overdueTenants"`
}

const (
	RecentTenantsLimit  = 5
	OverdueTenantsLimit = 10
)

// TenantDetail is a tenant with everything a superadmin needs to manage billing.
type TenantDetail struct {
	Tenant     *tenant.Tenant       `json:"tenant"`
	Plan       *billing.Plan        `json:"plan,omitempty"`
	Properties []*property.Property `json:"properties"`
	Payments   []*billing.Payment   `json:"payments"`
}

// TenantSummary is a row in the tenant list.
type TenantSummary struct {
	*tenant.Tenant
	PropertyCount int `json:"property_count" db:"property_count"`
}
