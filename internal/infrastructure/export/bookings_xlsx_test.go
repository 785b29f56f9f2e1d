package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
)

func TestBookingXLSX_Export(t *testing.T) {
	roomID := uuid.New()
	email := "guest@example.com"
	in := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)
	bookings := []*booking.Booking{
		{
			ID:             uuid.New(),
			RoomID:         &roomID,
			CheckIn:        in,
			CheckOut:       in.AddDate(0, 0, 2),
			GuestName:      "Nimal",
			GuestEmail:     &email,
			GuestPhone:     "+94771234567",
			NumberOfGuests: 2,
			Status:         booking.StatusConfirmed,
			CreatedAt:      in.AddDate(0, 0, -10),
		},
		{
			ID:             uuid.New(),
			CheckIn:        in.AddDate(0, 0, 5),
			CheckOut:       in.AddDate(0, 0, 6),
			GuestName:      "Kamala",
			GuestPhone:     "+94770000000",
			NumberOfGuests: 1,
			Status:         booking.StatusPending,
		},
	}

	var buf bytes.Buffer
	err := NewBookingXLSX().Export(&buf, &property.Property{Name: "Hill Cottage"}, map[uuid.UUID]string{roomID: "Deluxe"}, bookings)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(bookingSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, bookingHeader, rows[0])
	assert.Equal(t, "CONFIRMED", rows[1][1])
	assert.Equal(t, "Deluxe", rows[1][2])
	assert.Equal(t, "2026-11-03", rows[1][3])
	assert.Equal(t, "2", rows[1][5])
	assert.Equal(t, "guest@example.com", rows[1][9])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "Kamala", rows[2][7])
}
