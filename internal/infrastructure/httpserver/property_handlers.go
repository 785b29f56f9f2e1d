package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

func (s *Server) createProperty(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	var req property.CreatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	p, err := s.propertySvc.CreateProperty(c.Request().Context(), ownerID, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to create property")
	}
	s.ownerAudit(c, audit.ActionCreate, audit.ResourceProperty, p.ID, map[string]any{"slug": p.Slug})
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) listProperties(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	props, err := s.propertySvc.ListProperties(c.Request().Context(), ownerID)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load properties")
	}
	return c.JSON(http.StatusOK, props)
}

func (s *Server) getProperty(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	site, err := s.propertySvc.GetProperty(c.Request().Context(), ownerID, id)
	if err != nil {
		return helpers.HTTPError(err, "Failed to load property")
	}
	return c.JSON(http.StatusOK, site)
}

// updateProperty accepts the multipart edit form. Text fields that are not
// submitted keep their value; logo, heroImage and aboutImage are optional files.
func (s *Server) updateProperty(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParamUUID(c, "id")
	if err != nil {
		return err
	}

	req := &property.UpdatePropertyRequest{
		Name:               helpers.FormString(c, "name"),
		CustomDomain:       helpers.FormString(c, "customDomain"),
		Description:        helpers.FormString(c, "description"),
		HeroTitle:          helpers.FormString(c, "heroTitle"),
		HeroSubtitle:       helpers.FormString(c, "heroSubtitle"),
		AboutTitle:         helpers.FormString(c, "aboutTitle"),
		AboutContent:       helpers.FormString(c, "aboutContent"),
		Address:            helpers.FormString(c, "address"),
		Phone:              helpers.FormString(c, "phone"),
		Email:              helpers.FormString(c, "email"),
		WhatsappNumber:     helpers.FormString(c, "whatsappNumber"),
		FooterBio:          helpers.FormString(c, "footerBio"),
		ConnectTitle:       helpers.FormString(c, "connectTitle"),
		ConnectDescription: helpers.FormString(c, "connectDescription"),
		LocationAddress:    helpers.FormString(c, "locationAddress"),
	}
	if req.SocialLinks, err = formJSON(c, "socialLinks"); err != nil {
		return err
	}
	if req.ThemeConfig, err = formJSON(c, "themeConfig"); err != nil {
		return err
	}

	images := &ports.PropertyImages{}
	if images.Logo, err = helpers.FormUpload(c, "logo"); err != nil {
		return err
	}
	if images.HeroImage, err = helpers.FormUpload(c, "heroImage"); err != nil {
		return err
	}
	if images.AboutImage, err = helpers.FormUpload(c, "aboutImage"); err != nil {
		return err
	}

	p, err := s.propertySvc.UpdateProperty(c.Request().Context(), ownerID, id, req, images)
	if err != nil {
		return helpers.HTTPError(err, "Failed to update property")
	}
	s.ownerAudit(c, audit.ActionUpdate, audit.ResourceProperty, p.ID, nil)
	return c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProperty(c echo.Context) error {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := helpers.ParamUUID(c, "id")
	if err != nil {
		return err
	}
	if err := s.propertySvc.DeleteProperty(c.Request().Context(), ownerID, id); err != nil {
		return helpers.HTTPError(err, "Failed to delete property")
	}
	s.ownerAudit(c, audit.ActionDelete, audit.ResourceProperty, id, nil)
	return c.NoContent(http.StatusNoContent)
}

// formJSON decodes a form field holding a JSON object. Absent or blank
// fields yield nil.
func formJSON(c echo.Context, field string) (property.JSONMap, error) {
	raw := helpers.FormString(c, field)
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var m property.JSONMap
	if err := json.Unmarshal([]byte(*raw), &m); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+field)
	}
	return m, nil
}
