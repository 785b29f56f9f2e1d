package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/mocks"
)

func TestRecordPayment(t *testing.T) {
	tenantID, adminID := uuid.New(), uuid.New()
	var stored *billing.Payment
	repo := &mocks.BillingRepositoryMock{RecordPaymentFn: func(ctx context.Context, p *billing.Payment) error { stored = p; return nil }}
	tenants := &mocks.TenantRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
		return &tenant.Tenant{ID: id}, nil
	}}
	svc := impl.NewBillingService(repo, tenants, nil)

	p, err := svc.RecordPayment(context.Background(), adminID, &billing.RecordPaymentRequest{
		UserID:        tenantID.String(),
		Amount:        2500,
		PaymentMethod: "bank transfer",
		PeriodStart:   "2030-01-01",
		PeriodEnd:     "2030-02-01",
	})
	require.NoError(t, err)
	assert.Same(t, stored, p)
	assert.Equal(t, tenantID, p.TenantID)
	assert.Equal(t, billing.PaymentCompleted, p.Status)
	assert.Equal(t, billing.CurrencyLKR, p.Currency)
	require.NotNil(t, p.RecordedBy)
	assert.Equal(t, adminID, *p.RecordedBy)
	assert.Nil(t, p.ReferenceNumber)
}

func TestRecordPayment_Invalid(t *testing.T) {
	svc := impl.NewBillingService(&mocks.BillingRepositoryMock{}, &mocks.TenantRepositoryMock{}, nil)
	valid := uuid.NewString()

	cases := map[string]*billing.RecordPaymentRequest{
		"missing tenant": {Amount: 1, PeriodStart: "2030-01-01", PeriodEnd: "2030-02-01"},
		"zero amount":    {UserID: valid, PeriodStart: "2030-01-01", PeriodEnd: "2030-02-01"},
		"bad tenant id":  {UserID: "abc", Amount: 1, PeriodStart: "2030-01-01", PeriodEnd: "2030-02-01"},
		"period order":   {UserID: valid, Amount: 1, PeriodStart: "2030-02-01", PeriodEnd: "2030-01-01"},
		"bad date":       {UserID: valid, Amount: 1, PeriodStart: "Jan 1", PeriodEnd: "2030-01-01"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.RecordPayment(context.Background(), uuid.New(), req)
			assert.ErrorIs(t, err, domain.ErrInvalid)
		})
	}
}

func TestRecordPayment_UnknownTenant(t *testing.T) {
	svc := impl.NewBillingService(&mocks.BillingRepositoryMock{}, &mocks.TenantRepositoryMock{}, nil)
	_, err := svc.RecordPayment(context.Background(), uuid.Nil, &billing.RecordPaymentRequest{
		UserID: uuid.NewString(), Amount: 1, PeriodStart: "2030-01-01", PeriodEnd: "2030-02-01",
	})
	assert.ErrorIs(t, err, tenant.ErrNotFound)
}

func TestSeedPlans(t *testing.T) {
	var upserted []*billing.Plan
	repo := &mocks.BillingRepositoryMock{UpsertPlanFn: func(ctx context.Context, p *billing.Plan) error {
		upserted = append(upserted, p)
		return nil
	}}
	svc := impl.NewBillingService(repo, &mocks.TenantRepositoryMock{}, nil)

	err := svc.SeedPlans(context.Background(), []*billing.Plan{
		{Name: " Basic ", PriceMonthly: 2500, MaxProperties: 1},
		{Name: "Pro", PriceMonthly: 5000, MaxProperties: 3, Currency: "USD"},
	})
	require.NoError(t, err)
	require.Len(t, upserted, 2)
	assert.Equal(t, "Basic", upserted[0].Name)
	assert.Equal(t, billing.CurrencyLKR, upserted[0].Currency)
	assert.Equal(t, "USD", upserted[1].Currency)
	assert.NotEqual(t, uuid.Nil, upserted[0].ID)
	assert.False(t, upserted[0].CreatedAt.IsZero())

	err = svc.SeedPlans(context.Background(), []*billing.Plan{{Name: "Broken"}})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
