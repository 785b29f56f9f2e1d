package inquiry

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain"
)

type Inquiry struct {
	ID         uuid.UUID `json:"id" db:"id"`
	PropertyID uuid.UUID `json:"property_id" db:"property_id"`
	GuestName  string    `json:"guest_name" db:"guest_name"`
	GuestEmail string    `json:"guest_email" db:"guest_email"`
	GuestPhone *string   `json:"guest_phone,omitempty" db:"guest_phone"`
	Message    string    `json:"message" db:"message"`
	Status     Status    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type Status string

const (
	StatusUnread  Status = "unread"
	StatusRead    Status = "read"
	StatusReplied Status = "replied"
)

func (s Status) IsValid() bool {
	return slices.Contains([]Status{StatusUnread, StatusRead, StatusReplied}, s)
}

// ThankYou is returned to the guest after a successful submission.
const ThankYou = "Thank you for your inquiry! We'll get back to you soon."

var (
	ErrNotFound      = domain.NotFound("Inquiry not found")
	ErrMissingFields = domain.Invalid("Please fill in all required fields")
	ErrInvalidStatus = domain.Invalid("Invalid inquiry status")
	ErrNotOwner      = domain.Forbidden("You don't have permission to update this inquiry")
)

type CreateRequest struct {
	PropertyID uuid.UUID `json:"-"`
	GuestName  string    `json:"guest_name" form:"guestName"`
	GuestEmail string    `json:"guest_email" form:"guestEmail"`
	GuestPhone string    `json:"guest_phone" form:"guestPhone"`
	Message    string    `json:"message" form:"message"`
}

func (r *CreateRequest) Validate() error {
	if r.PropertyID == uuid.Nil || strings.TrimSpace(r.GuestName) == "" ||
		strings.TrimSpace(r.GuestEmail) == "" || strings.TrimSpace(r.Message) == "" {
		return ErrMissingFields
	}
	return nil
}
