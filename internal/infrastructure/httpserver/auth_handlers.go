package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

type sessionResponse struct {
	*auth.AuthTokens
	Tenant *tenant.Tenant `json:"tenant,omitempty"`
}

func (s *Server) signup(c echo.Context) error {
	var req tenant.SignupRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}
	t, err := s.tenantService.Signup(c.Request().Context(), &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to create account")
	}

	tokens, err := s.authSvc.GenerateTokens(c.Request().Context(), auth.Principal{ID: t.ID, Email: t.Email, Name: t.FullName, Role: auth.RoleOwner})
	if err != nil {
		return helpers.HTTPError(err, "Account created but sign-in failed. Please log in.")
	}
	s.config.Cookies.SetSessionCookies(c, tokens)

	s.audit(c, auditEntry{tenantID: &t.ID, actorID: &t.ID, actorRole: auth.RoleOwner, action: audit.ActionSignup, resource: audit.ResourceTenant, resourceID: &t.ID})
	return c.JSON(http.StatusCreated, sessionResponse{AuthTokens: tokens, Tenant: t})
}

func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}

	tokens, t, err := s.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return helpers.HTTPError(err, "Login failed")
	}
	s.config.Cookies.SetSessionCookies(c, tokens)

	s.audit(c, auditEntry{
		tenantID: &t.ID, actorID: &t.ID, actorRole: auth.RoleOwner,
		action: audit.ActionLogin, resource: audit.ResourceSession, resourceID: &t.ID,
		details: map[string]any{"method": "password"},
	})
	return c.JSON(http.StatusOK, sessionResponse{AuthTokens: tokens, Tenant: t})
}

func (s *Server) refreshToken(c echo.Context) error {
	var req struct {
		RefreshToken string `json:"refresh_token" form:"refresh_token"`
	}
	_ = c.Bind(&req)
	if req.RefreshToken == "" {
		req.RefreshToken = helpers.RefreshTokenFrom(c)
	}
	if req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	tokens, err := s.authSvc.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		s.config.Cookies.ClearSessionCookies(c)
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}
	s.config.Cookies.SetSessionCookies(c, tokens)
	return c.JSON(http.StatusOK, tokens)
}

func (s *Server) logout(c echo.Context) error {
	subjectID, err := helpers.GetSubjectIDFromContext(c)
	if err != nil {
		return err
	}
	token, _ := helpers.GetAccessTokenRaw(c)
	role, _ := helpers.GetRoleRaw(c)

	if err := s.authSvc.Logout(c.Request().Context(), subjectID, token, helpers.RefreshTokenFrom(c)); err != nil {
		return helpers.HTTPError(err, "failed to logout")
	}
	s.config.Cookies.ClearSessionCookies(c)

	var tenantID *uuid.UUID
	if role == auth.RoleOwner {
		tenantID = &subjectID
	}
	s.audit(c, auditEntry{
		tenantID: tenantID, actorID: &subjectID, actorRole: role,
		action: audit.ActionLogout, resource: audit.ResourceSession, resourceID: &subjectID,
		details: map[string]any{"token_hash": s.authSvc.GetTokenHash(token)},
	})
	return c.NoContent(http.StatusOK)
}

func (s *Server) requestPasswordReset(c echo.Context) error {
	var req auth.ResetPasswordRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := s.authSvc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return helpers.HTTPError(err, "Failed to send reset email")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "If an account exists for that email, a password reset link has been sent.",
	})
}

func (s *Server) updatePassword(c echo.Context) error {
	var req auth.UpdatePasswordRequest
	if err := helpers.BindAndValidate(c, &req); err != nil {
		return err
	}
	if err := s.authSvc.ResetPassword(c.Request().Context(), req.Token, req.Password); err != nil {
		return helpers.HTTPError(err, "Failed to update password")
	}
	s.config.Cookies.ClearSessionCookies(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated. Please log in with your new password."})
}

func (s *Server) me(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	t, err := s.tenantService.GetTenant(c.Request().Context(), ownerID)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load account")
	}
	return c.JSON(http.StatusOK, t)
}

// dashboardHome is the landing view of the dashboard: the owner and their sites.
func (s *Server) dashboardHome(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	t, err := s.tenantService.GetTenant(ctx, ownerID)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load account")
	}
	props, err := s.propertySvc.ListProperties(ctx, ownerID)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load properties")
	}
	return c.JSON(http.StatusOK, map[string]any{"tenant": t, "properties": props})
}
