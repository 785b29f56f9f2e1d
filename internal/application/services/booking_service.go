package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

type BookingService struct {
	repo       ports.BookingRepository
	properties ports.PropertyService
	rooms      ports.RoomRepository
	tenants    ports.TenantRepository
	email      ports.EmailService
	exporter   ports.BookingExporter
	logger     *logrus.Logger
	now        func() time.Time
}

// BookingDeps groups the collaborators of BookingService.
type BookingDeps struct {
	Bookings   ports.BookingRepository
	Properties ports.PropertyService
	Rooms      ports.RoomRepository
	Tenants    ports.TenantRepository
	Email      ports.EmailService
	Exporter   ports.BookingExporter
	Logger     *logrus.Logger
}

func NewBookingService(deps BookingDeps) *BookingService {
	return &BookingService{
		repo:       deps.Bookings,
		properties: deps.Properties,
		rooms:      deps.Rooms,
		tenants:    deps.Tenants,
		email:      deps.Email,
		exporter:   deps.Exporter,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

var _ ports.BookingService = (*BookingService)(nil)

// CheckAvailability reports whether any confirmed booking overlaps the stay.
func (s *BookingService) CheckAvailability(ctx context.Context, propertyID uuid.UUID, roomID *uuid.UUID, checkIn, checkOut string) (*booking.Availability, error) {
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return nil, booking.ErrMissingFields
	}
	rng, err := booking.ParseRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	clashes, err := s.repo.FindOverlapping(ctx, booking.OverlapQuery{PropertyID: propertyID, RoomID: roomID, Range: rng})
	if err != nil {
		return nil, err
	}
	if len(clashes) > 0 {
		return &booking.Availability{Available: false, Message: domain.Message(booking.ErrDatesUnavailable, "")}, nil
	}
	return &booking.Availability{Available: true}, nil
}

// CreateBooking validates the request and stores a pending booking. The
// overlap check and insert happen atomically in the repository.
func (s *BookingService) CreateBooking(ctx context.Context, p *property.Property, req *booking.CreateRequest) (*booking.Booking, error) {
	req.PropertyID = p.ID
	v, err := req.Validate(s.now())
	if err != nil {
		return nil, err
	}

	var room *property.Room
	if v.RoomID != nil {
		room, err = s.rooms.GetByID(ctx, *v.RoomID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, booking.ErrRoomMismatch
			}
			return nil, err
		}
		if room.PropertyID != p.ID {
			return nil, booking.ErrRoomMismatch
		}
		if req.NumberOfGuests > room.Capacity {
			return nil, booking.ErrOverCapacity
		}
	}

	b := &booking.Booking{
		ID:              uuid.New(),
		PropertyID:      p.ID,
		RoomID:          v.RoomID,
		CheckIn:         v.Range.CheckIn,
		CheckOut:        v.Range.CheckOut,
		GuestName:       strings.TrimSpace(req.GuestName),
		GuestEmail:      property.OptionalString(req.GuestEmail),
		GuestPhone:      strings.TrimSpace(req.GuestPhone),
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: property.OptionalString(req.SpecialRequests),
		Status:          booking.StatusPending,
		CreatedAt:       s.now(),
	}
	if err := s.repo.CreateIfAvailable(ctx, b); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"property_id": p.ID, "booking_id": b.ID}).Info("booking created")
	}

	s.notifyOwner(ctx, p, room, b)
	return b, nil
}

func (s *BookingService) notifyOwner(ctx context.Context, p *property.Property, room *property.Room, b *booking.Booking) {
	if s.email == nil {
		return
	}
	owner, err := s.tenants.GetByID(ctx, p.TenantID)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"property_id": p.ID}).WithError(err).Warn("booking notification skipped: owner lookup failed")
		}
		return
	}
	msg := &ports.BookingEmail{
		PropertyName:   p.Name,
		OwnerEmail:     owner.Email,
		GuestName:      b.GuestName,
		GuestPhone:     b.GuestPhone,
		NumberOfGuests: b.NumberOfGuests,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
	}
	if room != nil {
		msg.RoomType = room.Type
	}
	if b.GuestEmail != nil {
		msg.GuestEmail = *b.GuestEmail
	}
	if b.SpecialRequests != nil {
		msg.SpecialRequests = *b.SpecialRequests
	}
	if err := s.email.SendBookingNotification(ctx, msg); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"booking_id": b.ID}).WithError(err).Warn("failed to send booking notification")
	}
}

func (s *BookingService) ListBookings(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*booking.Booking, error) {
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}
	return s.repo.ListByProperty(ctx, propertyID)
}

// owned loads a booking and checks that ownerID owns its property.
func (s *BookingService) owned(ctx context.Context, ownerID, bookingID uuid.UUID) (*booking.Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, b.PropertyID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, booking.ErrNotOwner
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus changes a booking's status. Confirming re-checks availability
// against the other confirmed bookings.
func (s *BookingService) UpdateStatus(ctx context.Context, ownerID, bookingID uuid.UUID, status booking.Status) (*booking.Booking, error) {
	if !status.IsValid() {
		return nil, booking.ErrInvalidStatus
	}
	b, err := s.owned(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == status {
		return b, nil
	}
	if status == booking.StatusConfirmed {
		err = s.repo.ConfirmIfAvailable(ctx, b)
	} else {
		err = s.repo.UpdateStatus(ctx, bookingID, status)
	}
	if err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, ownerID, bookingID uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, bookingID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, bookingID)
}

// ExportBookings writes the property's bookings as an xlsx workbook to w.
func (s *BookingService) ExportBookings(ctx context.Context, ownerID, propertyID uuid.UUID, w io.Writer) (*property.Property, error) {
	p, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Type
	}
	if err := s.exporter.Export(w, p, names, list); err != nil {
		return nil, err
	}
	return p, nil
}
