package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/property"
)

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	Create(ctx context.Context, p *property.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error)
	GetBySlug(ctx context.Context, slug string) (*property.Property, error)
	GetByCustomDomain(ctx context.Context, domain string) (*property.Property, error)
	Update(ctx context.Context, p *property.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*property.Property, error)
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)
	Count(ctx context.Context) (int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// SiteResolver maps a request host to the property served on it.
type SiteResolver interface {
	// ResolveHost tries an exact custom domain match first, then slug.
	ResolveHost(ctx context.Context, host, slug string) (*property.Property, error)
	Invalidate(ctx context.Context, p *property.Property)
}

// ChildRepository stores one kind of per-property content (rooms, amenities,
// testimonials, gallery images).
type ChildRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*T, error)
}

type (
	RoomRepository        = ChildRepository[property.Room]
	AmenityRepository     = ChildRepository[property.Amenity]
	TestimonialRepository = ChildRepository[property.Testimonial]
	GalleryRepository     = ChildRepository[property.GalleryImage]
)

// PropertyImages are the optional image uploads of the property edit form.
type PropertyImages struct {
	Logo       *Upload
	HeroImage  *Upload
	AboutImage *Upload
}

// PropertyService defines the dashboard operations on an owner's sites.
type PropertyService interface {
	CreateProperty(ctx context.Context, ownerID uuid.UUID, req *property.CreatePropertyRequest) (*property.Property, error)
	UpdateProperty(ctx context.Context, ownerID, id uuid.UUID, req *property.UpdatePropertyRequest, images *PropertyImages) (*property.Property, error)
	GetProperty(ctx context.Context, ownerID, id uuid.UUID) (*property.Site, error)
	ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*property.Property, error)
	DeleteProperty(ctx context.Context, ownerID, id uuid.UUID) error

	// GetOwnedProperty loads a property and checks that ownerID owns it.
	GetOwnedProperty(ctx context.Context, ownerID, id uuid.UUID) (*property.Property, error)
}

// SiteService serves public tenant sites.
type SiteService interface {
	// ResolveSite returns the property served on host, or property.ErrSiteUnavailable.
	ResolveSite(ctx context.Context, host string) (*property.Property, error)
	GetSite(ctx context.Context, p *property.Property) (*property.Site, error)
}

// ContentService manages rooms, amenities, testimonials and gallery images.
type ContentService interface {
	AddRoom(ctx context.Context, ownerID, propertyID uuid.UUID, req *property.RoomRequest, image *Upload) (*property.Room, error)
	UpdateRoom(ctx context.Context, ownerID, roomID uuid.UUID, req *property.RoomRequest, image *Upload) (*property.Room, error)
	DeleteRoom(ctx context.Context, ownerID, roomID uuid.UUID) error

	AddAmenity(ctx context.Context, ownerID, propertyID uuid.UUID, req *property.AmenityRequest) (*property.Amenity, error)
	UpdateAmenity(ctx context.Context, ownerID, amenityID uuid.UUID, req *property.AmenityRequest) (*property.Amenity, error)
	DeleteAmenity(ctx context.Context, ownerID, amenityID uuid.UUID) error

	AddTestimonial(ctx context.Context, ownerID, propertyID uuid.UUID, req *property.TestimonialRequest) (*property.Testimonial, error)
	UpdateTestimonial(ctx context.Context, ownerID, testimonialID uuid.UUID, req *property.TestimonialRequest) (*property.Testimonial, error)
	DeleteTestimonial(ctx context.Context, ownerID, testimonialID uuid.UUID) error

	AddGalleryImage(ctx context.Context, ownerID, propertyID uuid.UUID, image *Upload, alt string) (*property.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, ownerID, imageID uuid.UUID) error
}
