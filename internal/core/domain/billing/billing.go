package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/simpleoutings/homestay/internal/core/domain"
)

const CurrencyLKR = "LKR"

// Plan is a subscription tier. MaxProperties caps how many sites a tenant may own.
type Plan struct {
	ID            uuid.UUID      `json:"id" db:"id" yaml:"-"`
	Name          string         `json:"name" db:"name" yaml:"name"`
	Description   *string        `json:"description,omitempty" db:"description" yaml:"description"`
	PriceMonthly  float64        `json:"price_monthly" db:"price_monthly" yaml:"price_monthly"`
	Currency      string         `json:"currency" db:"currency" yaml:"currency"`
	MaxProperties int            `json:"max_properties" db:"max_properties" yaml:"max_properties"`
	Features      pq.StringArray `json:"features" db:"features" yaml:"features"`
	IsActive      bool           `json:"is_active" db:"is_active" yaml:"-"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at" yaml:"-"`
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	TenantID        uuid.UUID     `json:"tenant_id" db:"tenant_id"`
	Amount          float64       `json:"amount" db:"amount"`
	Currency        string        `json:"currency" db:"currency"`
	Status          PaymentStatus `json:"status" db:"status"`
	PaymentMethod   *string       `json:"payment_method,omitempty" db:"payment_method"`
	PaymentDate     time.Time     `json:"payment_date" db:"payment_date"`
	PeriodStart     time.Time     `json:"period_start" db:"period_start"`
	PeriodEnd       time.Time     `json:"period_end" db:"period_end"`
	ReferenceNumber *string       `json:"reference_number,omitempty" db:"reference_number"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	RecordedBy      *uuid.UUID    `json:"recorded_by,omitempty" db:"recorded_by"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

var (
	ErrMissingFields = domain.Invalid("Missing required fields")
	ErrInvalidPeriod = domain.Invalid("Payment period end must be after its start")
	ErrPlanNotFound  = domain.NotFound("Subscription plan not found")
)

// RecordPaymentRequest is a manual payment entered by a superadmin.
type RecordPaymentRequest struct {
	UserID          string  `json:"userId"`
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"paymentMethod"`
	PeriodStart     string  `json:"periodStart"`
	PeriodEnd       string  `json:"periodEnd"`
	ReferenceNumber string  `json:"referenceNumber"`
	Notes           string  `json:"notes"`
}

// Parsed validates the request and builds the payment row it describes.
func (r *RecordPaymentRequest) Parsed(now time.Time, recordedBy *uuid.UUID) (*Payment, error) {
	if strings.TrimSpace(r.UserID) == "" || r.Amount <= 0 || r.PeriodStart == "" || r.PeriodEnd == "" {
		return nil, ErrMissingFields
	}
	tenantID, err := uuid.Parse(r.UserID)
	if err != nil {
		return nil, ErrMissingFields
	}
	start, err := parseDay(r.PeriodStart)
	if err != nil {
		return nil, domain.Invalid("Invalid period start")
	}
	end, err := parseDay(r.PeriodEnd)
	if err != nil {
		return nil, domain.Invalid("Invalid period end")
	}
	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}
	return &Payment{
		ID:              uuid.New(),
		TenantID:        tenantID,
		Amount:          r.Amount,
		Currency:        CurrencyLKR,
		Status:          PaymentCompleted,
		PaymentMethod:   optional(r.PaymentMethod),
		PaymentDate:     now,
		PeriodStart:     start,
		PeriodEnd:       end,
		ReferenceNumber: optional(r.ReferenceNumber),
		Notes:           optional(r.Notes),
		RecordedBy:      recordedBy,
		CreatedAt:       now,
	}, nil
}

func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
