package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

type auditEntry struct {
	tenantID   *uuid.UUID
	actorID    *uuid.UUID
	actorRole  auth.Role
	action     audit.AuditAction
	resource   audit.AuditResource
	resourceID *uuid.UUID
	details    map[string]any
}

// audit records e. Failures are logged by the audit service and otherwise ignored.
func (s *Server) audit(c echo.Context, e auditEntry) {
	if s.auditSvc == nil {
		return
	}
	_ = s.auditSvc.LogAction(c.Request().Context(), &audit.CreateAuditLogRequest{
		TenantID:   e.tenantID,
		ActorID:    e.actorID,
		ActorRole:  e.actorRole.String(),
		Action:     e.action,
		Resource:   e.resource,
		ResourceID: e.resourceID,
		Details:    e.details,
		IPAddress:  c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	})
}

// ownerAudit records an owner mutation on one of their resources.
func (s *Server) ownerAudit(c echo.Context, action audit.AuditAction, resource audit.AuditResource, resourceID uuid.UUID, details map[string]any) {
	ownerID, ok := helpers.GetSubjectIDRaw(c)
	if !ok {
		return
	}
	s.audit(c, auditEntry{
		tenantID: &ownerID, actorID: &ownerID, actorRole: auth.RoleOwner,
		action: action, resource: resource, resourceID: &resourceID, details: details,
	})
}

func (s *Server) getAuditLogs(c echo.Context) error {
	filter, err := auditFilterFromQuery(c)
	if err != nil {
		return err
	}
	logs, total, err := s.auditSvc.GetAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load audit logs")
	}
	return c.JSON(http.StatusOK, map[string]any{"logs": logs, "total": total})
}

// getOwnAuditLogs is scoped to the caller's tenant regardless of the filter sent.
func (s *Server) getOwnAuditLogs(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	filter, err := auditFilterFromQuery(c)
	if err != nil {
		return err
	}
	filter.TenantID = &ownerID
	logs, total, err := s.auditSvc.GetAuditLogs(c.Request().Context(), filter)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load audit logs")
	}
	return c.JSON(http.StatusOK, map[string]any{"logs": logs, "total": total})
}

func auditFilterFromQuery(c echo.Context) (*audit.AuditLogFilter, error) {
	f := &audit.AuditLogFilter{}
	bad := func(name string) error {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	for name, dst := range map[string]**uuid.UUID{"tenant_id": &f.TenantID, "actor_id": &f.ActorID, "resource_id": &f.ResourceID} {
		if v := c.QueryParam(name); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				return nil, bad(name)
			}
			*dst = &id
		}
	}
	if v := c.QueryParam("action"); v != "" {
		a := audit.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource"); v != "" {
		r := audit.AuditResource(v)
		f.Resource = &r
	}
	for name, dst := range map[string]**time.Time{"start_time": &f.StartTime, "end_time": &f.EndTime} {
		if v := c.QueryParam(name); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, bad(name)
			}
			*dst = &t
		}
	}
	var err error
	if f.Limit, err = queryInt(c, "limit", 50); err != nil {
		return nil, err
	}
	if f.Offset, err = queryInt(c, "offset", 0); err != nil {
		return nil, err
	}
	return f, nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}
