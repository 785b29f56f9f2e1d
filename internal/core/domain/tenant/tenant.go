package tenant

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain"
)

// Tenant is a property owner account. One tenant owns one or more homestay
// sites and is billed through a subscription plan.
type Tenant struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	Email              string             `json:"email" db:"email"`
	PasswordHash       string             `json:"-" db:"password_hash"`
	FullName           string             `json:"full_name" db:"full_name"`
	Phone              *string            `json:"phone,omitempty" db:"phone"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status" db:"subscription_status"`
	SubscriptionPlanID *uuid.UUID         `json:"subscription_plan_id,omitempty" db:"subscription_plan_id"`
	NextPaymentDue     *time.Time         `json:"next_payment_due,omitempty" db:"next_payment_due"`
	Notes              *string            `json:"notes,omitempty" db:"notes"`
	LastLoginAt        *time.Time         `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

type SubscriptionStatus string

const (
	StatusActive    SubscriptionStatus = "active"
	StatusSuspended SubscriptionStatus = "suspended"
	StatusCancelled SubscriptionStatus = "cancelled"
)

var ErrNotFound = domain.NotFound("Tenant not found")

func (s SubscriptionStatus) IsValid() bool {
	return slices.Contains([]SubscriptionStatus{StatusActive, StatusSuspended, StatusCancelled}, s)
}

// SiteVisible reports whether the tenant's public sites may be served.
func (t *Tenant) SiteVisible() bool {
	return t.SubscriptionStatus == StatusActive
}

// CanLogin reports whether the owner may sign in to the dashboard. Suspended
// owners keep dashboard access so they can see why their site is offline.
func (t *Tenant) CanLogin() bool {
	return t.SubscriptionStatus != StatusCancelled
}

// IsOverdue reports whether an active tenant has passed its payment due date.
func (t *Tenant) IsOverdue(now time.Time) bool {
	return t.SubscriptionStatus == StatusActive && t.NextPaymentDue != nil && t.NextPaymentDue.Before(now)
}

// SignupRequest creates a new owner account.
type SignupRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	FullName string `json:"full_name" form:"fullName" validate:"required"`
	Phone    string `json:"phone,omitempty" form:"phone"`
}

// UpdateStatusRequest is sent by a superadmin to change a tenant's subscription status.
type UpdateStatusRequest struct {
	UserID string             `json:"userId"`
	Status SubscriptionStatus `json:"status"`
	Notes  string             `json:"notes,omitempty"`
}
