package ports

import (
	"context"
	"time"
)

// InquiryEmail carries the fields rendered into inquiry emails.
type InquiryEmail struct {
	PropertyName string
	OwnerEmail   string
	GuestName    string
	GuestEmail   string
	GuestPhone   string
	Message      string
}

// BookingEmail carries the fields rendered into the owner's booking notification.
type BookingEmail struct {
	PropertyName    string
	OwnerEmail      string
	RoomType        string
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	NumberOfGuests  int
	CheckIn         time.Time
	CheckOut        time.Time
	SpecialRequests string
}

// EmailService defines the interface for email operations.
// Implementations return domain.ErrNotConfigured when no provider key is set.
type EmailService interface {
	SendInquiryNotification(ctx context.Context, msg *InquiryEmail) error
	SendInquiryAutoResponse(ctx context.Context, msg *InquiryEmail) error
	SendBookingNotification(ctx context.Context, msg *BookingEmail) error
	SendPasswordReset(ctx context.Context, email, name, resetURL string) error
}
