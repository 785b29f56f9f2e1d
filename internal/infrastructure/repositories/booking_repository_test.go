package repositories_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
	"github.com/simpleoutings/homestay/internal/infrastructure/repositories"
)

var bookingCols = []string{"id", "property_id", "room_id", "check_in", "check_out", "guest_name", "guest_email",
	"guest_phone", "number_of_guests", "special_requests", "status", "created_at"}

func newMockDB(t *testing.T) (*db.Database, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &db.Database{DB: sqlx.NewDb(sqlDB, "postgres")}, mock
}

func sampleBooking() *booking.Booking {
	room := uuid.New()
	return &booking.Booking{
		ID:             uuid.New(),
		PropertyID:     uuid.New(),
		RoomID:         &room,
		CheckIn:        time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2030, 1, 12, 0, 0, 0, 0, time.UTC),
		GuestName:      "Budi",
		NumberOfGuests: 2,
		Status:         booking.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestBookingRepository_CreateIfAvailable(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)
	b := sampleBooking()

	mock.ExpectBegin()
	mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).WithArgs(b.PropertyID.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM bookings\s+WHERE property_id = \$1\s+AND check_in <= \$3 AND check_out >= \$2$`).
		WithArgs(b.PropertyID, b.CheckIn, b.CheckOut).
		WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateIfAvailable(context.Background(), b))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CreateIfAvailableClash(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)
	b := sampleBooking()

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM bookings`).WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
		uuid.NewString(), b.PropertyID.String(), b.RoomID.String(), b.CheckOut, b.CheckOut.AddDate(0, 0, 2),
		"Sari", nil, "", 1, nil, "CONFIRMED", time.Now(),
	))
	mock.ExpectRollback()

	err := repo.CreateIfAvailable(context.Background(), b)
	assert.ErrorIs(t, err, booking.ErrDatesUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_LockFailureRollsBack(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	err := repo.CreateIfAvailable(context.Background(), sampleBooking())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock timeout")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ConfirmIfAvailableExcludesItself(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)
	b := sampleBooking()

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM bookings`).
		WithArgs(b.PropertyID, b.CheckIn, b.CheckOut).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			b.ID.String(), b.PropertyID.String(), b.RoomID.String(), b.CheckIn, b.CheckOut,
			b.GuestName, nil, "", b.NumberOfGuests, nil, "CONFIRMED", b.CreatedAt,
		))
	mock.ExpectExec(`UPDATE bookings SET status = \$2 WHERE id = \$1`).
		WithArgs(b.ID, booking.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ConfirmIfAvailable(context.Background(), b))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ConfirmMissingBooking(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM bookings`).WillReturnRows(sqlmock.NewRows(bookingCols))
	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.ConfirmIfAvailable(context.Background(), sampleBooking()), booking.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByIDNotFound(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)
	id := uuid.New()

	mock.ExpectQuery(`FROM bookings WHERE id = \$1`).WithArgs(id).WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, booking.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_DeleteMissing(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)

	mock.ExpectExec(`DELETE FROM bookings`).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), booking.ErrNotFound)
}

func TestBookingRepository_FindOverlapping(t *testing.T) {
	property := uuid.New()
	roomA, roomB := uuid.New(), uuid.New()
	day := func(d int) time.Time { return time.Date(2030, 3, d, 0, 0, 0, 0, time.UTC) }
	stay := booking.Range{CheckIn: day(10), CheckOut: day(12)}

	row := func(room *uuid.UUID, in, out time.Time, status string) []driver.Value {
		var roomVal driver.Value
		if room != nil {
			roomVal = room.String()
		}
		return []driver.Value{uuid.NewString(), property.String(), roomVal, in, out,
			"Sari", nil, "", 1, nil, status, time.Now()}
	}

	tests := []struct {
		name    string
		roomID  *uuid.UUID
		row     []driver.Value
		clashes bool
	}{
		{"same-day turnover at check-in", &roomA, row(&roomA, day(8), day(10), "CONFIRMED"), true},
		{"same-day turnover at check-out", &roomA, row(&roomA, day(12), day(14), "CONFIRMED"), true},
		{"existing stay encloses the request", &roomA, row(&roomA, day(9), day(13), "CONFIRMED"), true},
		{"request encloses the existing stay", &roomA, row(&roomA, day(11), day(11), "CONFIRMED"), true},
		{"other room does not block a room request", &roomA, row(&roomB, day(10), day(12), "CONFIRMED"), false},
		{"other room blocks a whole-property request", nil, row(&roomB, day(10), day(12), "CONFIRMED"), true},
		{"whole-property booking does not block a room request", &roomA, row(nil, day(10), day(12), "CONFIRMED"), false},
		{"pending booking holds no dates", &roomA, row(&roomA, day(10), day(12), "PENDING"), false},
		{"cancelled booking holds no dates", nil, row(&roomA, day(10), day(12), "CANCELLED"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database, mock := newMockDB(t)
			repo := repositories.NewBookingRepository(database, nil)

			mock.ExpectQuery(`FROM bookings\s+WHERE property_id = \$1\s+AND check_in <= \$3 AND check_out >= \$2$`).
				WithArgs(property, stay.CheckIn, stay.CheckOut).
				WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(tt.row...))

			got, err := repo.FindOverlapping(context.Background(), booking.OverlapQuery{
				PropertyID: property, RoomID: tt.roomID, Range: stay,
			})
			require.NoError(t, err)
			if tt.clashes {
				assert.Len(t, got, 1)
			} else {
				assert.Empty(t, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_ConfirmIfAvailableClashesWithAnotherBooking(t *testing.T) {
	database, mock := newMockDB(t)
	repo := repositories.NewBookingRepository(database, nil)
	b := sampleBooking()

	mock.ExpectBegin()
	mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM bookings`).WillReturnRows(sqlmock.NewRows(bookingCols).
		AddRow(b.ID.String(), b.PropertyID.String(), b.RoomID.String(), b.CheckIn, b.CheckOut,
			b.GuestName, nil, "", b.NumberOfGuests, nil, "CONFIRMED", b.CreatedAt).
		AddRow(uuid.NewString(), b.PropertyID.String(), b.RoomID.String(), b.CheckIn.AddDate(0, 0, -3), b.CheckIn,
			"Sari", nil, "", 1, nil, "CONFIRMED", time.Now()))
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.ConfirmIfAvailable(context.Background(), b), booking.ErrDatesUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}
