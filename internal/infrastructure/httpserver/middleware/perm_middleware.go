package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/permission"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

type PermMiddleware struct{}

func NewPermMiddleware() *PermMiddleware { return &PermMiddleware{} }

func (m *PermMiddleware) RequirePermission(p permission.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			perms, err := helpers.GetPermissionsFromContext(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing permissions")
			}
			if !permission.HasPermission(perms, p) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

func (m *PermMiddleware) RequireAnyPermission(perms ...permission.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			existing, err := helpers.GetPermissionsFromContext(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing permissions")
			}
			if !permission.HasAnyPermission(existing, perms...) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
