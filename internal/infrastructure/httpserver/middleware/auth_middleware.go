package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/permission"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

type JWTMiddleware struct {
	authService ports.AuthService
	logger      *logrus.Logger
}

func NewJWTMiddleware(authService ports.AuthService, logger *logrus.Logger) *JWTMiddleware {
	return &JWTMiddleware{authService: authService, logger: logger}
}

// RequireJWT validates the bearer or cookie token, enforces the session
// timeout and sets the subject context. When roles are given the subject
// must hold one of them.
func (m *JWTMiddleware) RequireJWT(roles ...auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := helpers.GetAccessToken(c)
			if err != nil {
				return err
			}

			claims, err := m.authService.StartSession(c.Request().Context(), tokenString, c.RealIP(), c.Request().UserAgent())
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path, "error": err.Error()}).Warn("JWT validation failed")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}

			helpers.SetSubjectID(c, claims.SubjectID)
			helpers.SetRole(c, claims.Role)
			helpers.SetEmail(c, claims.Email)
			helpers.SetClaims(c, claims)
			helpers.SetAccessToken(c, tokenString)
			helpers.SetPermissions(c, permission.ForRole(claims.Role))

			if m.logger != nil {
				m.logger.WithFields(logrus.Fields{"subject_id": claims.SubjectID, "role": claims.Role}).Debug("jwt validated and subject context set")
			}
			return next(c)
		}
	}
}
