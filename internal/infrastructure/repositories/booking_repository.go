package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

const bookingColumns = `id, property_id, room_id, check_in, check_out, guest_name, guest_email,
	guest_phone, number_of_guests, special_requests, status, created_at`

// overlapCandidates narrows to bookings of property $1 touching the closed
// window [$2, $3]. Status, room scope and exclusion are decided by
// booking.Blocks on the fetched rows.
const overlapCandidates = `SELECT ` + bookingColumns + ` FROM bookings
	WHERE property_id = $1
	  AND check_in <= $3 AND check_out >= $2`

// BookingRepository implements ports.BookingRepository over Postgres.
type BookingRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewBookingRepository(database *db.Database, logger *logrus.Logger) ports.BookingRepository {
	return &BookingRepository{db: database, logger: logger}
}

// CreateIfAvailable checks for overlaps and inserts inside one transaction
// holding a per-property advisory lock.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *booking.Booking) error {
	return r.withPropertyLock(ctx, b.PropertyID, func(tx *sqlx.Tx) error {
		clash, err := r.overlapping(ctx, tx, booking.OverlapQuery{
			PropertyID: b.PropertyID,
			RoomID:     b.RoomID,
			Range:      booking.Range{CheckIn: b.CheckIn, CheckOut: b.CheckOut},
		})
		if err != nil {
			return err
		}
		if len(clash) > 0 {
			return booking.ErrDatesUnavailable
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO bookings (`+bookingColumns+`)
			VALUES (:id, :property_id, :room_id, :check_in, :check_out, :guest_name, :guest_email,
				:guest_phone, :number_of_guests, :special_requests, :status, :created_at)`, b)
		if err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}
		return nil
	})
}

// ConfirmIfAvailable re-runs the overlap check, excluding b itself, before
// marking b confirmed.
func (r *BookingRepository) ConfirmIfAvailable(ctx context.Context, b *booking.Booking) error {
	return r.withPropertyLock(ctx, b.PropertyID, func(tx *sqlx.Tx) error {
		clash, err := r.overlapping(ctx, tx, booking.OverlapQuery{
			PropertyID: b.PropertyID,
			RoomID:     b.RoomID,
			Range:      booking.Range{CheckIn: b.CheckIn, CheckOut: b.CheckOut},
			ExcludeID:  &b.ID,
		})
		if err != nil {
			return err
		}
		if len(clash) > 0 {
			return booking.ErrDatesUnavailable
		}
		res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, b.ID, booking.StatusConfirmed)
		if err != nil {
			return fmt.Errorf("failed to confirm booking: %w", err)
		}
		return expectOneRow(res, booking.ErrNotFound)
	})
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, q booking.OverlapQuery) ([]*booking.Booking, error) {
	return r.overlapping(ctx, r.db.DB, q)
}

func (r *BookingRepository) overlapping(ctx context.Context, qx sqlx.QueryerContext, q booking.OverlapQuery) ([]*booking.Booking, error) {
	var candidates []*booking.Booking
	err := sqlx.SelectContext(ctx, qx, &candidates, overlapCandidates, q.PropertyID, q.Range.CheckIn, q.Range.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping bookings: %w", err)
	}
	out := []*booking.Booking{}
	for _, b := range candidates {
		if q.ExcludeID != nil && b.ID == *q.ExcludeID {
			continue
		}
		if b.Blocks(q.Range, q.RoomID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BookingRepository) withPropertyLock(ctx context.Context, propertyID uuid.UUID, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, propertyID.String()); err != nil {
		return fmt.Errorf("failed to lock property bookings: %w", err)
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var b booking.Booking
	if err := r.db.DB.GetContext(ctx, &b, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", notFound(err, booking.ErrNotFound))
	}
	return &b, nil
}

func (r *BookingRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*booking.Booking, error) {
	out := []*booking.Booking{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT `+bookingColumns+` FROM bookings WHERE property_id = $1 ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	res, err := r.db.DB.ExecContext(ctx, `UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return expectOneRow(res, booking.ErrNotFound)
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return expectOneRow(res, booking.ErrNotFound)
}
