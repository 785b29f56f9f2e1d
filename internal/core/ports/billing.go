package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/billing"
)

// BillingRepository stores subscription plans and manually recorded payments.
type BillingRepository interface {
	ListPlans(ctx context.Context) ([]*billing.Plan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*billing.Plan, error)
	UpsertPlan(ctx context.Context, p *billing.Plan) error
	// RecordPayment inserts the payment and, in the same transaction, advances the
	// tenant's next due date to the period end and reactivates the tenant.
	RecordPayment(ctx context.Context, p *billing.Payment) error
	ListPayments(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error)
}

// BillingService defines billing business logic.
type BillingService interface {
	ListPlans(ctx context.Context) ([]*billing.Plan, error)
	RecordPayment(ctx context.Context, recordedBy uuid.UUID, req *billing.RecordPaymentRequest) (*billing.Payment, error)
	SeedPlans(ctx context.Context, plans []*billing.Plan) error
}
