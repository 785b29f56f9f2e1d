package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

const tenantColumns = `id, email, password_hash, full_name, phone, subscription_status,
	subscription_plan_id, next_payment_due, notes, last_login_at, created_at, updated_at`

// TenantRepository implements the tenant repository interface
type TenantRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(database *db.Database, logger *logrus.Logger) ports.TenantRepository {
	return &TenantRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	query := `
		INSERT INTO tenants (id, email, password_hash, full_name, phone, subscription_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.DB.ExecContext(ctx, query,
		t.ID, strings.ToLower(t.Email), t.PasswordHash, t.FullName, t.Phone, t.SubscriptionStatus, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "") {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.DB.GetContext(ctx, &t, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", notFound(err, tenant.ErrNotFound))
	}
	return &t, nil
}

// GetByEmail retrieves a tenant by email, case-insensitively
func (r *TenantRepository) GetByEmail(ctx context.Context, email string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.DB.GetContext(ctx, &t, `SELECT `+tenantColumns+` FROM tenants WHERE email = $1`, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", notFound(err, tenant.ErrNotFound))
	}
	return &t, nil
}

func (r *TenantRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := r.db.DB.ExecContext(ctx,
		`UPDATE tenants SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return expectOneRow(res, tenant.ErrNotFound)
}

// UpdateStatus sets the subscription status. Notes are only overwritten when given.
func (r *TenantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes *string) error {
	res, err := r.db.DB.ExecContext(ctx, `
		UPDATE tenants
		SET subscription_status = $2, notes = COALESCE($3, notes), updated_at = NOW()
		WHERE id = $1`, id, status, notes)
	if err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"tenant_id": id, "status": status}).Debug("db: tenant status updated")
	}
	return expectOneRow(res, tenant.ErrNotFound)
}

func (r *TenantRepository) TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.DB.ExecContext(ctx, `UPDATE tenants SET last_login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("failed to record login: %w", err)
	}
	return nil
}

// List retrieves tenants with their property counts, newest first
func (r *TenantRepository) List(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, error) {
	query := `
		SELECT t.id, t.email, t.password_hash, t.full_name, t.phone, t.subscription_status,
			t.subscription_plan_id, t.next_payment_due, t.notes, t.last_login_at, t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM properties p WHERE p.tenant_id = t.id) AS property_count
		FROM tenants t
		ORDER BY t.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.DB.QueryxContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []*superadmin.TenantSummary{}
	for rows.Next() {
		s := &superadmin.TenantSummary{Tenant: &tenant.Tenant{}}
		if err := rows.StructScan(s); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tenants: %w", err)
	}

	return tenants, nil
}

// Count returns the total number of tenants
func (r *TenantRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM tenants`); err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

func (r *TenantRepository) CountByStatus(ctx context.Context, status tenant.SubscriptionStatus) (int, error) {
	var count int
	if err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM tenants WHERE subscription_status = $1`, status); err != nil {
		return 0, fmt.Errorf("failed to count tenants: %w", err)
	}
	return count, nil
}

func (r *TenantRepository) ListRecent(ctx context.Context, limit int) ([]*tenant.Tenant, error) {
	tenants := []*tenant.Tenant{}
	err := r.db.DB.SelectContext(ctx, &tenants,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent tenants: %w", err)
	}
	return tenants, nil
}

// ListOverdue returns active tenants whose next payment is due before now,
// most overdue first.
func (r *TenantRepository) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*tenant.Tenant, error) {
	tenants := []*tenant.Tenant{}
	err := r.db.DB.SelectContext(ctx, &tenants, `
		SELECT `+tenantColumns+` FROM tenants
		WHERE subscription_status = $1 AND next_payment_due < $2
		ORDER BY next_payment_due ASC
		LIMIT $3`, tenant.StatusActive, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue tenants: %w", err)
	}
	return tenants, nil
}
