package helpers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/permission"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
)

func GetSubjectIDFromContext(c echo.Context) (uuid.UUID, error) {
	id, ok := GetSubjectIDRaw(c)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}

// GetOwnerIDFromContext returns the signed-in property owner.
func GetOwnerIDFromContext(c echo.Context) (uuid.UUID, error) {
	id, err := GetSubjectIDFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	if r, _ := GetRoleRaw(c); r != auth.RoleOwner {
		return uuid.Nil, echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}
	return id, nil
}

func GetRoleFromContext(c echo.Context) (auth.Role, error) {
	r, ok := GetRoleRaw(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid role context")
	}
	return r, nil
}

func GetPermissionsFromContext(c echo.Context) ([]permission.Permission, error) {
	p, ok := GetPermissionsRaw(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "permissions not found")
	}
	return p, nil
}

func GetClaimsFromContext(c echo.Context) (*auth.Claims, error) {
	cl, ok := GetClaimsRaw(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return cl, nil
}

func GetSiteFromContext(c echo.Context) (*property.Property, error) {
	p, ok := GetSiteRaw(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "site unavailable")
	}
	return p, nil
}

// GetBearerToken returns the token of an "Authorization: Bearer" header.
func GetBearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// GetAccessToken reads the access token from the Authorization header,
// falling back to the session cookie.
func GetAccessToken(c echo.Context) (string, error) {
	if token, ok := GetBearerToken(c); ok {
		return token, nil
	}
	if ck, err := c.Cookie(AccessCookie); err == nil && ck.Value != "" {
		return ck.Value, nil
	}
	return "", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
}

// ParamUUID parses a uuid path parameter.
func ParamUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
