package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

// ContentService manages the sections of a site. Every mutation checks
// ownership through the parent property.
type ContentService struct {
	properties ports.PropertyService
	repos      ContentRepos
	images     ports.ImageService
	logger     *logrus.Logger
}

func NewContentService(properties ports.PropertyService, repos ContentRepos, images ports.ImageService, logger *logrus.Logger) *ContentService {
	return &ContentService{properties: properties, repos: repos, images: images, logger: logger}
}

var _ ports.ContentService = (*ContentService)(nil)

func (s *ContentService) AddRoom(ctx context.Context, ownerID, propertyID uuid.UUID, req *property.RoomRequest, image *ports.Upload) (*property.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}
	room := &property.Room{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		Type:        strings.TrimSpace(req.Type),
		Description: property.OptionalString(req.Description),
		PriceLKR:    req.PriceLKR,
		Capacity:    req.Capacity,
		Features:    pq.StringArray(property.ParseFeatures(req.Features)),
	}
	if image != nil {
		url, err := s.images.Store(ctx, image, FolderRooms)
		if err != nil {
			return nil, err
		}
		room.Image = &url
	}
	if err := s.repos.Rooms.Create(ctx, room); err != nil {
		if room.Image != nil {
			s.images.Remove(ctx, *room.Image)
		}
		return nil, err
	}
	return room, nil
}

func (s *ContentService) UpdateRoom(ctx context.Context, ownerID, roomID uuid.UUID, req *property.RoomRequest, image *ports.Upload) (*property.Room, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	room, err := s.repos.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, ownerID, room.PropertyID, "room"); err != nil {
		return nil, err
	}

	var oldImage string
	if image != nil {
		url, err := s.images.Store(ctx, image, FolderRooms)
		if err != nil {
			return nil, err
		}
		if room.Image != nil {
			oldImage = *room.Image
		}
		room.Image = &url
	}
	room.Type = strings.TrimSpace(req.Type)
	room.Description = property.OptionalString(req.Description)
	room.PriceLKR = req.PriceLKR
	room.Capacity = req.Capacity
	room.Features = pq.StringArray(property.ParseFeatures(req.Features))

	if err := s.repos.Rooms.Update(ctx, room); err != nil {
		if image != nil {
			s.images.Remove(ctx, *room.Image)
		}
		return nil, err
	}
	s.images.Remove(ctx, oldImage)
	return room, nil
}

func (s *ContentService) DeleteRoom(ctx context.Context, ownerID, roomID uuid.UUID) error {
	room, err := s.repos.Rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if err := s.checkOwner(ctx, ownerID, room.PropertyID, "room"); err != nil {
		return err
	}
	if err := s.repos.Rooms.Delete(ctx, roomID); err != nil {
		return err
	}
	if room.Image != nil {
		s.images.Remove(ctx, *room.Image)
	}
	return nil
}

func (s *ContentService) AddAmenity(ctx context.Context, ownerID, propertyID uuid.UUID, req *property.AmenityRequest) (*property.Amenity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, property.ErrAmenityName
	}
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}
	a := &property.Amenity{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		Name:        name,
		Icon:        property.OptionalString(req.Icon),
		Description: property.OptionalString(req.Description),
	}
	if err := s.repos.Amenities.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ContentService) UpdateAmenity(ctx context.Context, ownerID, amenityID uuid.UUID, req *property.AmenityRequest) (*property.Amenity, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, property.ErrAmenityName
	}
	a, err := s.repos.Amenities.GetByID(ctx, amenityID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, ownerID, a.PropertyID, "amenity"); err != nil {
		return nil, err
	}
	a.Name = name
	a.Icon = property.OptionalString(req.Icon)
	a.Description = property.OptionalString(req.Description)
	if err := s.repos.Amenities.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *ContentService) DeleteAmenity(ctx context.Context, ownerID, amenityID uuid.UUID) error {
	a, err := s.repos.Amenities.GetByID(ctx, amenityID)
	if err != nil {
		return err
	}
	if err := s.checkOwner(ctx, ownerID, a.PropertyID, "amenity"); err != nil {
		return err
	}
	return s.repos.Amenities.Delete(ctx, amenityID)
}

func (s *ContentService) AddTestimonial(ctx context.Context, ownerID, propertyID uuid.UUID, req *property.TestimonialRequest) (*property.Testimonial, error) {
	content, author := strings.TrimSpace(req.Content), strings.TrimSpace(req.Author)
	if content == "" || author == "" {
		return nil, property.ErrTestimonialBody
	}
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}
	t := &property.Testimonial{
		ID:         uuid.New(),
		PropertyID: propertyID,
		Content:    content,
		Author:     author,
		Location:   property.OptionalString(req.Location),
	}
	if err := s.repos.Testimonials.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ContentService) UpdateTestimonial(ctx context.Context, ownerID, testimonialID uuid.UUID, req *property.TestimonialRequest) (*property.Testimonial, error) {
	content, author := strings.TrimSpace(req.Content), strings.TrimSpace(req.Author)
	if content == "" || author == "" {
		return nil, property.ErrTestimonialBody
	}
	t, err := s.repos.Testimonials.GetByID(ctx, testimonialID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, ownerID, t.PropertyID, "testimonial"); err != nil {
		return nil, err
	}
	t.Content = content
	t.Author = author
	t.Location = property.OptionalString(req.Location)
	if err := s.repos.Testimonials.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *ContentService) DeleteTestimonial(ctx context.Context, ownerID, testimonialID uuid.UUID) error {
	t, err := s.repos.Testimonials.GetByID(ctx, testimonialID)
	if err != nil {
		return err
	}
	if err := s.checkOwner(ctx, ownerID, t.PropertyID, "testimonial"); err != nil {
		return err
	}
	return s.repos.Testimonials.Delete(ctx, testimonialID)
}

func (s *ContentService) AddGalleryImage(ctx context.Context, ownerID, propertyID uuid.UUID, image *ports.Upload, alt string) (*property.GalleryImage, error) {
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}
	url, err := s.images.Store(ctx, image, FolderGallery)
	if err != nil {
		return nil, err
	}
	g := &property.GalleryImage{
		ID:         uuid.New(),
		PropertyID: propertyID,
		URL:        url,
		Alt:        property.OptionalString(alt),
	}
	if err := s.repos.Gallery.Create(ctx, g); err != nil {
		s.images.Remove(ctx, url)
		return nil, err
	}
	return g, nil
}

// DeleteGalleryImage removes the row and the CDN object behind it.
func (s *ContentService) DeleteGalleryImage(ctx context.Context, ownerID, imageID uuid.UUID) error {
	g, err := s.repos.Gallery.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.checkOwner(ctx, ownerID, g.PropertyID, "image"); err != nil {
		return err
	}
	if err := s.repos.Gallery.Delete(ctx, imageID); err != nil {
		return err
	}
	s.images.Remove(ctx, g.URL)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"property_id": g.PropertyID, "image_id": imageID}).Debug("gallery image deleted")
	}
	return nil
}

func (s *ContentService) checkOwner(ctx context.Context, ownerID, propertyID uuid.UUID, what string) error {
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return property.NotOwned(what)
		}
		return err
	}
	return nil
}
