package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/inquiry"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

func (s *Server) submitInquiry(c echo.Context) error {
	site, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	var req inquiry.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	i, err := s.inquirySvc.Submit(c.Request().Context(), site, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to submit inquiry. Please try again.")
	}
	inquiriesCreated.Inc()

	s.audit(c, auditEntry{
		tenantID: &site.TenantID, action: audit.ActionCreate, resource: audit.ResourceInquiry, resourceID: &i.ID,
		details: map[string]any{"property_id": site.ID},
	})
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "message": inquiry.ThankYou})
}

func (s *Server) listInquiries(c echo.Context) error {
	ownerID, propertyID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	list, err := s.inquirySvc.ListInquiries(c.Request().Context(), ownerID, propertyID)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load inquiries")
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) updateInquiryStatus(c echo.Context) error {
	ownerID, inquiryID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req struct {
		Status inquiry.Status `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	i, err := s.inquirySvc.UpdateStatus(c.Request().Context(), ownerID, inquiryID, req.Status)
	if err != nil {
		return helpers.HTTPError(err, "Failed to update inquiry")
	}
	s.ownerAudit(c, audit.ActionStatusChange, audit.ResourceInquiry, i.ID, map[string]any{"status": i.Status})
	return c.JSON(http.StatusOK, i)
}

func (s *Server) deleteInquiry(c echo.Context) error {
	ownerID, inquiryID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	if err := s.inquirySvc.DeleteInquiry(c.Request().Context(), ownerID, inquiryID); err != nil {
		return helpers.HTTPError(err, "Failed to delete inquiry")
	}
	s.ownerAudit(c, audit.ActionDelete, audit.ResourceInquiry, inquiryID, nil)
	return c.NoContent(http.StatusNoContent)
}
