package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

func (s *Server) superadminLogin(c echo.Context) error {
	var req auth.LoginRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}
	tokens, sa, err := s.authSvc.SuperadminLogin(c.Request().Context(), &req)
	if err != nil {
		return helpers.HTTPError(err, "Login failed")
	}
	s.audit(c, auditEntry{
		actorID: &sa.ID, actorRole: auth.RoleSuperadmin,
		action: audit.ActionLogin, resource: audit.ResourceSession, resourceID: &sa.ID,
	})
	return c.JSON(http.StatusOK, map[string]any{"tokens": tokens, "superadmin": sa})
}

// superadminVerify lets the operator console check a stored token.
func (s *Server) superadminVerify(c echo.Context) error {
	token, ok := helpers.GetBearerToken(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	claims, err := s.authSvc.ValidateToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if claims.Role != auth.RoleSuperadmin {
		return c.JSON(http.StatusOK, map[string]any{"isSuperadmin": false})
	}
	return c.JSON(http.StatusOK, map[string]any{"isSuperadmin": true, "superadmin": claims.Principal()})
}

func (s *Server) superadminDashboard(c echo.Context) error {
	d, err := s.superadminSvc.Dashboard(c.Request().Context())
	if err != nil {
		return helpers.HTTPError(err, "Failed to load dashboard")
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) listTenants(c echo.Context) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return err
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	list, total, err := s.tenantService.ListTenants(c.Request().Context(), limit, offset)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load tenants")
	}
	return c.JSON(http.StatusOK, map[string]any{"tenants": list, "total": total})
}

func (s *Server) getTenantDetail(c echo.Context) error {
	id, err := helpers.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	d, err := s.superadminSvc.TenantDetail(c.Request().Context(), id)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load tenant")
	}
	return c.JSON(http.StatusOK, d)
}

func (s *Server) updateTenantStatus(c echo.Context) error {
	actorID, err := helpers.GetSubjectIDFromContext(c)
	if err != nil {
		return err
	}
	var req tenant.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.UserID) == "" || req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}
	tenantID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	t, err := s.tenantService.UpdateStatus(c.Request().Context(), tenantID, req.Status, req.Notes)
	if err != nil {
		return helpers.HTTPError(err, "Failed to update status")
	}
	s.audit(c, auditEntry{
		tenantID: &tenantID, actorID: &actorID, actorRole: auth.RoleSuperadmin,
		action: audit.ActionStatusChange, resource: audit.ResourceTenant, resourceID: &tenantID,
		details: map[string]any{"status": req.Status, "notes": req.Notes},
	})
	return c.JSON(http.StatusOK, map[string]any{"success": true, "tenant": t})
}

func (s *Server) recordPayment(c echo.Context) error {
	actorID, err := helpers.GetSubjectIDFromContext(c)
	if err != nil {
		return err
	}
	var req billing.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := s.billingSvc.RecordPayment(c.Request().Context(), actorID, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to record payment")
	}
	s.audit(c, auditEntry{
		tenantID: &p.TenantID, actorID: &actorID, actorRole: auth.RoleSuperadmin,
		action: audit.ActionPayment, resource: audit.ResourcePayment, resourceID: &p.ID,
		details: map[string]any{"amount": p.Amount, "period_end": p.PeriodEnd},
	})
	return c.JSON(http.StatusOK, map[string]any{"success": true, "payment": p})
}

func (s *Server) listPlans(c echo.Context) error {
	plans, err := s.billingSvc.ListPlans(c.Request().Context())
	if err != nil {
		return helpers.HTTPError(err, "Failed to load plans")
	}
	return c.JSON(http.StatusOK, plans)
}
