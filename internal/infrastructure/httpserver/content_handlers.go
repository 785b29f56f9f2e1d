package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

// ownerAndID reads the signed-in owner and the :id path parameter.
func ownerAndID(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	ownerID, err := helpers.GetOwnerIDFromContext(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := helpers.ParamUUID(c, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return ownerID, id, nil
}

func (s *Server) addRoom(c echo.Context) error {
	ownerID, propertyID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req property.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	image, err := helpers.FormUpload(c, "image")
	if err != nil {
		return err
	}
	room, err := s.contentSvc.AddRoom(c.Request().Context(), ownerID, propertyID, &req, image)
	if err != nil {
		return helpers.HTTPError(err, "Failed to add room")
	}
	s.ownerAudit(c, audit.ActionCreate, audit.ResourceRoom, room.ID, map[string]any{"property_id": propertyID})
	return c.JSON(http.StatusCreated, room)
}

func (s *Server) updateRoom(c echo.Context) error {
	ownerID, roomID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req property.RoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	image, err := helpers.FormUpload(c, "image")
	if err != nil {
		return err
	}
	room, err := s.contentSvc.UpdateRoom(c.Request().Context(), ownerID, roomID, &req, image)
	if err != nil {
		return helpers.HTTPError(err, "Failed to update room")
	}
	s.ownerAudit(c, audit.ActionUpdate, audit.ResourceRoom, room.ID, nil)
	return c.JSON(http.StatusOK, room)
}

func (s *Server) deleteRoom(c echo.Context) error {
	ownerID, roomID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	if err := s.contentSvc.DeleteRoom(c.Request().Context(), ownerID, roomID); err != nil {
		return helpers.HTTPError(err, "Failed to delete room")
	}
	s.ownerAudit(c, audit.ActionDelete, audit.ResourceRoom, roomID, nil)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) addAmenity(c echo.Context) error {
	ownerID, propertyID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req property.AmenityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a, err := s.contentSvc.AddAmenity(c.Request().Context(), ownerID, propertyID, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to add amenity")
	}
	s.ownerAudit(c, audit.ActionCreate, audit.ResourceAmenity, a.ID, map[string]any{"property_id": propertyID})
	return c.JSON(http.StatusCreated, a)
}

func (s *Server) updateAmenity(c echo.Context) error {
	ownerID, amenityID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req property.AmenityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a, err := s.contentSvc.UpdateAmenity(c.Request().Context(), ownerID, amenityID, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to update amenity")
	}
	s.ownerAudit(c, audit.ActionUpdate, audit.ResourceAmenity, a.ID, nil)
	return c.JSON(http.StatusOK, a)
}

func (s *Server) deleteAmenity(c echo.Context) error {
	ownerID, amenityID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	if err := s.contentSvc.DeleteAmenity(c.Request().Context(), ownerID, amenityID); err != nil {
		return helpers.HTTPError(err, "Failed to delete amenity")
	}
	s.ownerAudit(c, audit.ActionDelete, audit.ResourceAmenity, amenityID, nil)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) addTestimonial(c echo.Context) error {
	ownerID, propertyID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req property.TestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	t, err := s.contentSvc.AddTestimonial(c.Request().Context(), ownerID, propertyID, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to add testimonial")
	}
	s.ownerAudit(c, audit.ActionCreate, audit.ResourceTestimonial, t.ID, map[string]any{"property_id": propertyID})
	return c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTestimonial(c echo.Context) error {
	ownerID, testimonialID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	var req property.TestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	t, err := s.contentSvc.UpdateTestimonial(c.Request().Context(), ownerID, testimonialID, &req)
	if err != nil {
		return helpers.HTTPError(err, "Failed to update testimonial")
	}
	s.ownerAudit(c, audit.ActionUpdate, audit.ResourceTestimonial, t.ID, nil)
	return c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTestimonial(c echo.Context) error {
	ownerID, testimonialID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	if err := s.contentSvc.DeleteTestimonial(c.Request().Context(), ownerID, testimonialID); err != nil {
		return helpers.HTTPError(err, "Failed to delete testimonial")
	}
	s.ownerAudit(c, audit.ActionDelete, audit.ResourceTestimonial, testimonialID, nil)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) addGalleryImage(c echo.Context) error {
	ownerID, propertyID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	image, err := helpers.FormUpload(c, "image")
	if err != nil {
		return err
	}
	img, err := s.contentSvc.AddGalleryImage(c.Request().Context(), ownerID, propertyID, image, c.FormValue("alt"))
	if err != nil {
		return helpers.HTTPError(err, "Failed to upload image")
	}
	s.ownerAudit(c, audit.ActionCreate, audit.ResourceGallery, img.ID, map[string]any{"property_id": propertyID})
	return c.JSON(http.StatusCreated, img)
}

func (s *Server) deleteGalleryImage(c echo.Context) error {
	ownerID, imageID, err := ownerAndID(c)
	if err != nil {
		return err
	}
	if err := s.contentSvc.DeleteGalleryImage(c.Request().Context(), ownerID, imageID); err != nil {
		return helpers.HTTPError(err, "Failed to delete image")
	}
	s.ownerAudit(c, audit.ActionDelete, audit.ResourceGallery, imageID, nil)
	return c.NoContent(http.StatusNoContent)
}
