package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// CreateIfAvailable inserts b unless a confirmed booking overlaps its dates.
	// The check and insert are serialized per property.
	CreateIfAvailable(ctx context.Context, b *booking.Booking) error
	FindOverlapping(ctx context.Context, q booking.OverlapQuery) ([]*booking.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error
	// ConfirmIfAvailable marks the booking confirmed unless another confirmed booking overlaps it.
	ConfirmIfAvailable(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingExporter writes bookings as a spreadsheet.
type BookingExporter interface {
	Export(w io.Writer, p *property.Property, rooms map[uuid.UUID]string, bookings []*booking.Booking) error
}

// BookingService defines booking business logic for guests and owners.
type BookingService interface {
	CheckAvailability(ctx context.Context, propertyID uuid.UUID, roomID *uuid.UUID, checkIn, checkOut string) (*booking.Availability, error)
	CreateBooking(ctx context.Context, p *property.Property, req *booking.CreateRequest) (*booking.Booking, error)

	ListBookings(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*booking.Booking, error)
	UpdateStatus(ctx context.Context, ownerID, bookingID uuid.UUID, status booking.Status) (*booking.Booking, error)
	DeleteBooking(ctx context.Context, ownerID, bookingID uuid.UUID) error
	ExportBookings(ctx context.Context, ownerID, propertyID uuid.UUID, w io.Writer) (*property.Property, error)
}
