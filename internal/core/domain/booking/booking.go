package booking

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain"
)

type Booking struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	PropertyID      uuid.UUID  `json:"property_id" db:"property_id"`
	RoomID          *uuid.UUID `json:"room_id,omitempty" db:"room_id"`
	CheckIn         time.Time  `json:"check_in" db:"check_in"`
	CheckOut        time.Time  `json:"check_out" db:"check_out"`
	GuestName       string     `json:"guest_name" db:"guest_name"`
	GuestEmail      *string    `json:"guest_email,omitempty" db:"guest_email"`
	GuestPhone      string     `json:"guest_phone" db:"guest_phone"`
	NumberOfGuests  int        `json:"number_of_guests" db:"number_of_guests"`
	SpecialRequests *string    `json:"special_requests,omitempty" db:"special_requests"`
	Status          Status     `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) IsValid() bool {
	return slices.Contains([]Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}, s)
}

var (
	ErrNotFound         = domain.NotFound("Booking not found")
	ErrMissingFields    = domain.Invalid("Please fill in all required fields")
	ErrInvalidDates     = domain.Invalid("Check-out date must be after check-in date")
	ErrCheckInPast      = domain.Invalid("Check-in date cannot be in the past")
	ErrInvalidDate      = domain.Invalid("Invalid date format")
	ErrInvalidStatus    = domain.Invalid("Invalid booking status")
	ErrRoomMismatch     = domain.Invalid("Selected room does not belong to this property")
	ErrOverCapacity     = domain.Invalid("Number of guests exceeds room capacity")
	ErrDatesUnavailable = domain.Conflict("Selected dates are not available")
	ErrNotOwner         = domain.Forbidden("You don't have permission to update this booking")
)

// Range is a closed stay interval. Both ends are inclusive, so a stay that
// starts on another stay's check-out day overlaps it.
type Range struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Overlaps reports whether existing collides with candidate: existing starts
// inside candidate, ends inside candidate, or encloses it.
func Overlaps(existing, candidate Range) bool {
	startsInside := !existing.CheckIn.Before(candidate.CheckIn) && !existing.CheckIn.After(candidate.CheckOut)
	endsInside := !existing.CheckOut.Before(candidate.CheckIn) && !existing.CheckOut.After(candidate.CheckOut)
	encloses := !existing.CheckIn.After(candidate.CheckIn) && !existing.CheckOut.Before(candidate.CheckOut)
	return startsInside || endsInside || encloses
}

// Blocks reports whether b prevents a new stay in r. Only confirmed bookings
// hold dates; when roomID is set only bookings of that room count.
func (b *Booking) Blocks(r Range, roomID *uuid.UUID) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	if roomID != nil && (b.RoomID == nil || *b.RoomID != *roomID) {
		return false
	}
	return Overlaps(Range{CheckIn: b.CheckIn, CheckOut: b.CheckOut}, r)
}

// OverlapQuery selects confirmed bookings that would collide with a stay.
type OverlapQuery struct {
	PropertyID uuid.UUID
	RoomID     *uuid.UUID
	Range      Range
	ExcludeID  *uuid.UUID
}

// CreateRequest is the public booking form.
type CreateRequest struct {
	PropertyID      uuid.UUID `json:"-"`
	RoomID          string    `json:"room_id" form:"roomId"`
	CheckIn         string    `json:"check_in" form:"checkIn"`
	CheckOut        string    `json:"check_out" form:"checkOut"`
	GuestName       string    `json:"guest_name" form:"guestName"`
	GuestEmail      string    `json:"guest_email" form:"guestEmail"`
	GuestPhone      string    `json:"guest_phone" form:"guestPhone"`
	NumberOfGuests  int       `json:"number_of_guests" form:"numberOfGuests"`
	SpecialRequests string    `json:"special_requests" form:"specialRequests"`
}

// Validated is the parsed, checked form of a CreateRequest.
type Validated struct {
	RoomID *uuid.UUID
	Range  Range
}

// Validate checks required fields and date ordering. now is used to reject
// stays that begin before today.
func (r *CreateRequest) Validate(now time.Time) (*Validated, error) {
	if r.PropertyID == uuid.Nil || strings.TrimSpace(r.CheckIn) == "" || strings.TrimSpace(r.CheckOut) == "" ||
		strings.TrimSpace(r.GuestName) == "" || strings.TrimSpace(r.GuestPhone) == "" {
		return nil, ErrMissingFields
	}
	rng, err := ParseRange(r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, err
	}
	if rng.CheckIn.Before(StartOfDay(now)) {
		return nil, ErrCheckInPast
	}
	v := &Validated{Range: rng}
	if id := strings.TrimSpace(r.RoomID); id != "" {
		roomID, err := uuid.Parse(id)
		if err != nil {
			return nil, ErrRoomMismatch
		}
		v.RoomID = &roomID
	}
	if r.NumberOfGuests <= 0 {
		r.NumberOfGuests = 1
	}
	return v, nil
}

// ParseRange parses check-in and check-out dates and requires check-in < check-out.
func ParseRange(checkIn, checkOut string) (Range, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return Range{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return Range{}, err
	}
	if !in.Before(out) {
		return Range{}, ErrInvalidDates
	}
	return Range{CheckIn: in, CheckOut: out}, nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}

func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Availability is the answer to an availability query.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}
