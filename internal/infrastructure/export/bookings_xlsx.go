// Package export renders owner data as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

const bookingSheet = "Bookings"

var bookingHeader = []string{
	"Booking ID",
	"Status",
	"Room",
	"Check-in",
	"Check-out",
	"Nights",
	"Guests",
	"Guest Name",
	"Guest Phone",
	"Guest Email",
	"Special Requests",
	"Created At",
}

var bookingColumnWidths = []float64{38, 12, 18, 12, 12, 8, 8, 22, 18, 26, 40, 20}

// BookingXLSX writes bookings to an .xlsx workbook.
type BookingXLSX struct{}

func NewBookingXLSX() *BookingXLSX { return &BookingXLSX{} }

var _ ports.BookingExporter = (*BookingXLSX)(nil)

// Export writes one header row followed by one row per booking.
func (BookingXLSX) Export(w io.Writer, p *property.Property, rooms map[uuid.UUID]string, bookings []*booking.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)
	if err := f.SetDocProps(&excelize.DocProperties{Title: p.Name + " bookings", Creator: p.Name}); err != nil {
		return fmt.Errorf("failed to set document properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(bookingSheet, "A1", &bookingHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(bookingHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(bookingSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	for i, width := range bookingColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(bookingSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, b := range bookings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := bookingRow(b, rooms)
		if err := f.SetSheetRow(bookingSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func bookingRow(b *booking.Booking, rooms map[uuid.UUID]string) []any {
	room := ""
	if b.RoomID != nil {
		room = rooms[*b.RoomID]
	}
	nights := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	return []any{
		b.ID.String(),
		string(b.Status),
		room,
		b.CheckIn.Format("2006-01-02"),
		b.CheckOut.Format("2006-01-02"),
		nights,
		b.NumberOfGuests,
		b.GuestName,
		b.GuestPhone,
		deref(b.GuestEmail),
		deref(b.SpecialRequests),
		b.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
