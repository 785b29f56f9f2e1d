package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

// getSite returns everything the public page of the resolved site renders.
func (s *Server) getSite(c echo.Context) error {
	p, err := helpers.GetSiteFromContext(c)
	if err != nil {
		return err
	}
	site, err := s.siteSvc.GetSite(c.Request().Context(), p)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load site")
	}
	return c.JSON(http.StatusOK, site)
}
