package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) checkAvailability(c echo.Context) error {
	site, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	var roomID *uuid.UUID
	if v := c.QueryParam("room_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid room_id")
		}
		roomID = &id
	}
	avail, err := s.bookingSvc.CheckAvailability(c.Request().Context(), site.ID, roomID, c.QueryParam("check_in"), c.QueryParam("check_out"))
	if err != nil {
		return helpers.HTTPError(err, "Failed to check availability")
	}
	return c.JSON(http.StatusOK, avail)
}

func (s *Server) createBooking(c echo.Context) error {
	site, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	var req booking.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	b, err := s.bookingSvc.CreateBooking(c.Request().Context(), site, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to create booking")
	}
	bookingsCreated.Inc()

	s.audit(c, auditEntry{
		tenantID: &site.TenantID, action: audit.ActionCreate, resource: audit.ResourceBooking, resourceID: &b.ID,
		details: map[string]any{"property_id": site.ID, "check_in": b.CheckIn.Format(time.DateOnly), "check_out": b.CheckOut.Format(time.DateOnly)},
	})
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "booking": b})
}

func (s *Server) listBookings(c echo.Context) error {
	ownerID, propertyID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	list, err := s.bookingSvc.ListBookings(c.Request().Context(), ownerID, propertyID)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load bookings")
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) exportBookings(c echo.Context) error {
	ownerID, propertyID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	p, err := s.bookingSvc.ExportBookings(c.Request().Context(), ownerID, propertyID, &buf)
	if err != nil {
		return helpers.HTTPError(err, "Failed to export bookings")
	}
	s.ownerAudit(c, audit.ActionExport, audit.ResourceBooking, propertyID, map[string]any{"bytes": buf.Len()})

	name := fmt.Sprintf("%s-bookings-%s.xlsx", p.Slug, time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) updateBookingStatus(c echo.Context) error {
	ownerID, bookingID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req struct {
		Status booking.Status `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	b, err := s.bookingSvc.UpdateStatus(c.Request().Context(), ownerID, bookingID, req.Status)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"booking_id": bookingID, "status": req.Status}).WithError(err).Debug("booking status change rejected")
		}
		return helpers.HTTPError(err, "Failed to update booking")
	}
	s.ownerAudit(c, audit.ActionStatusChange, audit.ResourceBooking, b.ID, map[string]any{"status": b.Status})
	return c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBooking(c echo.Context) error {
	ownerID, bookingID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	if err := s.bookingSvc.DeleteBooking(c.Request().Context(), ownerID, bookingID); err != nil {
		return helpers.HTTPError(err, "Failed to delete booking")
	}
	s.ownerAudit(c, audit.ActionDelete, audit.ResourceBooking, bookingID, nil)
	return c.NoContent(http.StatusNoContent)
}
