package middleware

import (
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

// SiteMiddleware resolves the :host path parameter to a public site.
type SiteMiddleware struct {
	siteService ports.SiteService
	logger      *logrus.Logger
}

func NewSiteMiddleware(siteService ports.SiteService, logger *logrus.Logger) *SiteMiddleware {
	return &SiteMiddleware{siteService: siteService, logger: logger}
}

func (m *SiteMiddleware) ResolveSite() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			host, err := url.PathUnescape(c.Param("host"))
			if err != nil {
				host = c.Param("host")
			}
			p, err := m.siteService.ResolveSite(c.Request().Context(), host)
			if err != nil {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"host": host}).WithError(err).Debug("site not resolved")
				}
				return helpers.HTTPError(err, "Failed to load site")
			}
			helpers.SetSite(c, p)
			return next(c)
		}
	}
}
