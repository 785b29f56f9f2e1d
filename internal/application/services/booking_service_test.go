package services_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/mocks"
)

type exporterFunc func(w io.Writer, p *property.Property, rooms map[uuid.UUID]string, list []*booking.Booking) error

func (f exporterFunc) Export(w io.Writer, p *property.Property, rooms map[uuid.UUID]string, list []*booking.Booking) error {
	return f(w, p, rooms, list)
}

type bookingFixture struct {
	svc      *impl.BookingService
	repo     *mocks.BookingRepositoryMock
	props    *mocks.PropertyServiceMock
	rooms    *mocks.ChildRepositoryMock[property.Room]
	email    *mocks.EmailServiceMock
	exported []*booking.Booking
	site     *property.Property
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		repo:  &mocks.BookingRepositoryMock{},
		props: &mocks.PropertyServiceMock{},
		rooms: &mocks.ChildRepositoryMock[property.Room]{},
		email: &mocks.EmailServiceMock{},
		site:  &property.Property{ID: uuid.New(), TenantID: uuid.New(), Name: "Sunrise Villa", Slug: "sunrise"},
	}
	tenants := &mocks.TenantRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
		return &tenant.Tenant{ID: id, Email: "owner@example.com"}, nil
	}}
	f.svc = impl.NewBookingService(impl.BookingDeps{
		Bookings:   f.repo,
		Properties: f.props,
		Rooms:      f.rooms,
		Tenants:    tenants,
		Email:      f.email,
		Exporter: exporterFunc(func(w io.Writer, p *property.Property, rooms map[uuid.UUID]string, list []*booking.Booking) error {
			f.exported = list
			_, err := w.Write([]byte("xlsx"))
			return err
		}),
	})
	return f
}

func day(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func TestCheckAvailability(t *testing.T) {
	f := newBookingFixture()
	roomID := uuid.New()
	var got booking.OverlapQuery
	f.repo.FindOverlappingFn = func(ctx context.Context, q booking.OverlapQuery) ([]*booking.Booking, error) {
		got = q
		return nil, nil
	}

	avail, err := f.svc.CheckAvailability(context.Background(), f.site.ID, &roomID, "2030-01-10", "2030-01-12")
	require.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Equal(t, f.site.ID, got.PropertyID)
	assert.Equal(t, &roomID, got.RoomID)

	f.repo.FindOverlappingFn = func(ctx context.Context, q booking.OverlapQuery) ([]*booking.Booking, error) {
		return []*booking.Booking{{ID: uuid.New()}}, nil
	}
	avail, err = f.svc.CheckAvailability(context.Background(), f.site.ID, nil, "2030-01-10", "2030-01-12")
	require.NoError(t, err)
	assert.False(t, avail.Available)
	assert.Equal(t, "Selected dates are not available", avail.Message)
}

func TestCheckAvailability_BadInput(t *testing.T) {
	f := newBookingFixture()
	_, err := f.svc.CheckAvailability(context.Background(), f.site.ID, nil, "", "2030-01-12")
	assert.ErrorIs(t, err, booking.ErrMissingFields)
	_, err = f.svc.CheckAvailability(context.Background(), f.site.ID, nil, "2030-01-12", "2030-01-12")
	assert.ErrorIs(t, err, booking.ErrInvalidDates)
	_, err = f.svc.CheckAvailability(context.Background(), f.site.ID, nil, "soon", "2030-01-12")
	assert.ErrorIs(t, err, booking.ErrInvalidDate)
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture()
	room := &property.Room{ID: uuid.New(), PropertyID: f.site.ID, Type: "Deluxe", Capacity: 3}
	f.rooms.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.Room, error) { return room, nil }
	var stored *booking.Booking
	f.repo.CreateIfAvailableFn = func(ctx context.Context, b *booking.Booking) error { stored = b; return nil }

	b, err := f.svc.CreateBooking(context.Background(), f.site, &booking.CreateRequest{
		RoomID:     room.ID.String(),
		CheckIn:    day(3),
		CheckOut:   day(5),
		GuestName:  " Nimal ",
		GuestPhone: "+94 77 000 0000",
		GuestEmail: "nimal@example.com",
	})
	require.NoError(t, err)
	assert.Same(t, stored, b)
	assert.Equal(t, booking.StatusPending, b.Status)
	assert.Equal(t, "Nimal", b.GuestName)
	assert.Equal(t, 1, b.NumberOfGuests, "guest count defaults to one")

	require.Len(t, f.email.Bookings, 1)
	msg := f.email.Bookings[0]
	assert.Equal(t, "owner@example.com", msg.OwnerEmail)
	assert.Equal(t, "Deluxe", msg.RoomType)
	assert.Equal(t, "nimal@example.com", msg.GuestEmail)
}

func TestCreateBooking_Rejections(t *testing.T) {
	f := newBookingFixture()
	otherRoom := &property.Room{ID: uuid.New(), PropertyID: uuid.New(), Capacity: 2}
	smallRoom := &property.Room{ID: uuid.New(), PropertyID: f.site.ID, Capacity: 2}
	f.rooms.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*property.Room, error) {
		switch id {
		case otherRoom.ID:
			return otherRoom, nil
		case smallRoom.ID:
			return smallRoom, nil
		}
		return nil, property.ErrRoomNotFound
	}

	base := func() *booking.CreateRequest {
		return &booking.CreateRequest{CheckIn: day(3), CheckOut: day(4), GuestName: "A", GuestPhone: "1"}
	}
	cases := []struct {
		name string
		mod  func(r *booking.CreateRequest)
		want error
	}{
		{"missing phone", func(r *booking.CreateRequest) { r.GuestPhone = "" }, booking.ErrMissingFields},
		{"past check-in", func(r *booking.CreateRequest) { r.CheckIn = day(-2) }, booking.ErrCheckInPast},
		{"reversed dates", func(r *booking.CreateRequest) { r.CheckIn, r.CheckOut = day(5), day(3) }, booking.ErrInvalidDates},
		{"room of another property", func(r *booking.CreateRequest) { r.RoomID = otherRoom.ID.String() }, booking.ErrRoomMismatch},
		{"unknown room", func(r *booking.CreateRequest) { r.RoomID = uuid.NewString() }, booking.ErrRoomMismatch},
		{"over capacity", func(r *booking.CreateRequest) { r.RoomID = smallRoom.ID.String(); r.NumberOfGuests = 3 }, booking.ErrOverCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mod(req)
			_, err := f.svc.CreateBooking(context.Background(), f.site, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.email.Bookings)
}

func TestCreateBooking_DatesTaken(t *testing.T) {
	f := newBookingFixture()
	f.repo.CreateIfAvailableFn = func(ctx context.Context, b *booking.Booking) error { return booking.ErrDatesUnavailable }

	_, err := f.svc.CreateBooking(context.Background(), f.site, &booking.CreateRequest{CheckIn: day(1), CheckOut: day(2), GuestName: "A", GuestPhone: "1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.email.Bookings)
}

func TestCreateBooking_EmailFailureIsIgnored(t *testing.T) {
	f := newBookingFixture()
	f.email.Err = errors.New("smtp down")

	_, err := f.svc.CreateBooking(context.Background(), f.site, &booking.CreateRequest{CheckIn: day(1), CheckOut: day(2), GuestName: "A", GuestPhone: "1"})
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	f := newBookingFixture()
	b := &booking.Booking{ID: uuid.New(), PropertyID: f.site.ID, Status: booking.StatusPending}
	f.repo.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*booking.Booking, error) { return b, nil }
	confirmed, updated := 0, 0
	f.repo.ConfirmIfAvailableFn = func(ctx context.Context, got *booking.Booking) error { confirmed++; return nil }
	f.repo.UpdateStatusFn = func(ctx context.Context, id uuid.UUID, s booking.Status) error { updated++; return nil }

	_, err := f.svc.UpdateStatus(context.Background(), f.site.TenantID, b.ID, "ARCHIVED")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)

	got, err := f.svc.UpdateStatus(context.Background(), f.site.TenantID, b.ID, booking.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, got.Status)
	assert.Equal(t, 1, confirmed)

	// Same status is a no-op.
	_, err = f.svc.UpdateStatus(context.Background(), f.site.TenantID, b.ID, booking.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, 1, confirmed)

	_, err = f.svc.UpdateStatus(context.Background(), f.site.TenantID, b.ID, booking.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
}

func TestUpdateStatus_NotOwner(t *testing.T) {
	f := newBookingFixture()
	f.props.GetOwnedPropertyFn = notOwner
	f.repo.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
		return &booking.Booking{ID: id, PropertyID: uuid.New(), Status: booking.StatusPending}, nil
	}

	_, err := f.svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), booking.StatusConfirmed)
	assert.ErrorIs(t, err, booking.ErrNotOwner)
	assert.ErrorIs(t, f.svc.DeleteBooking(context.Background(), uuid.New(), uuid.New()), booking.ErrNotOwner)
}

func TestExportBookings(t *testing.T) {
	f := newBookingFixture()
	list := []*booking.Booking{{ID: uuid.New()}, {ID: uuid.New()}}
	f.repo.ListByPropertyFn = func(ctx context.Context, id uuid.UUID) ([]*booking.Booking, error) { return list, nil }
	f.props.GetOwnedPropertyFn = func(ctx context.Context, ownerID, id uuid.UUID) (*property.Property, error) { return f.site, nil }

	var buf bytes.Buffer
	p, err := f.svc.ExportBookings(context.Background(), f.site.TenantID, f.site.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, f.site, p)
	assert.Equal(t, list, f.exported)
	assert.Equal(t, "xlsx", buf.String())
}
