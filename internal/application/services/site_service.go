package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

// SiteService resolves hosts to public sites and loads their content.
type SiteService struct {
	resolver    ports.SiteResolver
	tenants     ports.TenantRepository
	rooms       ports.RoomRepository
	amenities   ports.AmenityRepository
	testimonial ports.TestimonialRepository
	gallery     ports.GalleryRepository
	logger      *logrus.Logger
}

// ContentRepos groups the per-property content repositories.
type ContentRepos struct {
	Rooms        ports.RoomRepository
	Amenities    ports.AmenityRepository
	Testimonials ports.TestimonialRepository
	Gallery      ports.GalleryRepository
}

func NewSiteService(resolver ports.SiteResolver, tenants ports.TenantRepository, content ContentRepos, logger *logrus.Logger) *SiteService {
	return &SiteService{
		resolver:    resolver,
		tenants:     tenants,
		rooms:       content.Rooms,
		amenities:   content.Amenities,
		testimonial: content.Testimonials,
		gallery:     content.Gallery,
		logger:      logger,
	}
}

var _ ports.SiteService = (*SiteService)(nil)

// SlugFromHost returns the first DNS label of host, without any port.
func SlugFromHost(host string) string {
	host = NormalizeHost(host)
	label, _, _ := strings.Cut(host, ".")
	return label
}

// NormalizeHost lowercases host and strips the port.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.TrimSuffix(host, ".")
}

// ResolveSite finds the property for host. Sites of tenants that are not
// active are reported as unavailable.
func (s *SiteService) ResolveSite(ctx context.Context, host string) (*property.Property, error) {
	host = NormalizeHost(host)
	if host == "" {
		return nil, property.ErrSiteUnavailable
	}
	p, err := s.resolver.ResolveHost(ctx, host, SlugFromHost(host))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, property.ErrSiteUnavailable
		}
		return nil, err
	}

	t, err := s.tenants.GetByID(ctx, p.TenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, property.ErrSiteUnavailable
		}
		return nil, err
	}
	if !t.SiteVisible() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"host": host, "tenant_id": t.ID, "status": t.SubscriptionStatus}).Debug("site hidden for inactive tenant")
		}
		return nil, property.ErrSiteUnavailable
	}
	return p, nil
}

// GetSite loads every content section of p concurrently.
func (s *SiteService) GetSite(ctx context.Context, p *property.Property) (*property.Site, error) {
	return loadSite(ctx, p, ContentRepos{Rooms: s.rooms, Amenities: s.amenities, Testimonials: s.testimonial, Gallery: s.gallery})
}

func loadSite(ctx context.Context, p *property.Property, repos ContentRepos) (*property.Site, error) {
	site := &property.Site{Property: p}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		site.Rooms, err = repos.Rooms.ListByProperty(gctx, p.ID)
		return err
	})
	g.Go(func() (err error) {
		site.Amenities, err = repos.Amenities.ListByProperty(gctx, p.ID)
		return err
	})
	g.Go(func() (err error) {
		site.Testimonials, err = repos.Testimonials.ListByProperty(gctx, p.ID)
		return err
	})
	g.Go(func() (err error) {
		site.Gallery, err = repos.Gallery.ListByProperty(gctx, p.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return site, nil
}
