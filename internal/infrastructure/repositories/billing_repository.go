package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

const (
	planColumns    = `id, name, description, price_monthly, currency, max_properties, features, is_active, created_at`
	paymentColumns = `id, tenant_id, amount, currency, status, payment_method, payment_date, period_start,
		period_end, reference_number, notes, recorded_by, created_at`
)

type billingRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewBillingRepository(database *db.Database, logger *logrus.Logger) ports.BillingRepository {
	return &billingRepository{db: database, logger: logger}
}

// ListPlans returns active plans, cheapest first.
func (r *billingRepository) ListPlans(ctx context.Context) ([]*billing.Plan, error) {
	out := []*billing.Plan{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT `+planColumns+` FROM subscription_plans WHERE is_active ORDER BY price_monthly`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return out, nil
}

func (r *billingRepository) GetPlan(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	var p billing.Plan
	if err := r.db.DB.GetContext(ctx, &p, `SELECT `+planColumns+` FROM subscription_plans WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", notFound(err, billing.ErrPlanNotFound))
	}
	return &p, nil
}

// UpsertPlan inserts or updates a plan by name. The stored id is written back to p.
func (r *billingRepository) UpsertPlan(ctx context.Context, p *billing.Plan) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	rows, err := r.db.DB.NamedQueryContext(ctx, `
		INSERT INTO subscription_plans (id, name, description, price_monthly, currency, max_properties, features, is_active)
		VALUES (:id, :name, :description, :price_monthly, :currency, :max_properties, :features, :is_active)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			price_monthly = EXCLUDED.price_monthly,
			currency = EXCLUDED.currency,
			max_properties = EXCLUDED.max_properties,
			features = EXCLUDED.features,
			is_active = EXCLUDED.is_active
		RETURNING id`, p)
	if err != nil {
		return fmt.Errorf("failed to upsert plan %q: %w", p.Name, err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&p.ID); err != nil {
			return fmt.Errorf("failed to read plan id: %w", err)
		}
	}
	return rows.Err()
}

func (r *billingRepository) RecordPayment(ctx context.Context, p *billing.Payment) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (:id, :tenant_id, :amount, :currency, :status, :payment_method, :payment_date, :period_start,
			:period_end, :reference_number, :notes, :recorded_by, :created_at)`, p)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE tenants SET next_payment_due = $2, subscription_status = $3, updated_at = NOW()
		WHERE id = $1`, p.TenantID, p.PeriodEnd, tenant.StatusActive)
	if err != nil {
		return fmt.Errorf("failed to advance tenant due date: %w", err)
	}
	if err := expectOneRow(res, tenant.ErrNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"tenant_id": p.TenantID, "payment_id": p.ID, "amount": p.Amount}).Info("db: payment recorded")
	}
	return nil
}

// ListPayments returns a tenant's payments, newest first.
func (r *billingRepository) ListPayments(ctx context.Context, tenantID uuid.UUID) ([]*billing.Payment, error) {
	out := []*billing.Payment{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT `+paymentColumns+` FROM payments WHERE tenant_id = $1 ORDER BY payment_date DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return out, nil
}
