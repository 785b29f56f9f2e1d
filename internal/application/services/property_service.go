package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

type PropertyService struct {
	repo    ports.PropertyRepository
	tenants ports.TenantRepository
	billing ports.BillingRepository
	content ContentRepos
	images  ports.ImageService
	logger  *logrus.Logger
	now     func() time.Time
}

// PropertyDeps groups the collaborators of PropertyService.
type PropertyDeps struct {
	Properties ports.PropertyRepository
	Tenants    ports.TenantRepository
	Billing    ports.BillingRepository
	Content    ContentRepos
	Images     ports.ImageService
	Logger     *logrus.Logger
}

func NewPropertyService(deps PropertyDeps) *PropertyService {
	return &PropertyService{
		repo:    deps.Properties,
		tenants: deps.Tenants,
		billing: deps.Billing,
		content: deps.Content,
		images:  deps.Images,
		logger:  deps.Logger,
		now:     time.Now,
	}
}

var _ ports.PropertyService = (*PropertyService)(nil)

func (s *PropertyService) CreateProperty(ctx context.Context, ownerID uuid.UUID, req *property.CreatePropertyRequest) (*property.Property, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkPlanLimit(ctx, ownerID); err != nil {
		return nil, err
	}

	taken, err := s.repo.SlugExists(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, property.ErrSlugTaken
	}

	now := s.now()
	p := &property.Property{
		ID:          uuid.New(),
		TenantID:    ownerID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: property.OptionalString(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"tenant_id": ownerID, "property_id": p.ID, "slug": p.Slug}).Info("property created")
	}
	return p, nil
}

// checkPlanLimit enforces max_properties of the tenant's plan. Tenants
// without a plan are not limited.
func (s *PropertyService) checkPlanLimit(ctx context.Context, ownerID uuid.UUID) error {
	t, err := s.tenants.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if t.SubscriptionPlanID == nil || s.billing == nil {
		return nil
	}
	plan, err := s.billing.GetPlan(ctx, *t.SubscriptionPlanID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	count, err := s.repo.CountByTenant(ctx, ownerID)
	if err != nil {
		return err
	}
	if count >= plan.MaxProperties {
		return property.ErrPlanLimit
	}
	return nil
}

func (s *PropertyService) GetOwnedProperty(ctx context.Context, ownerID, id uuid.UUID) (*property.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(ownerID) {
		return nil, property.NotOwned("property")
	}
	return p, nil
}

// UpdateProperty applies the edit form. New image files replace the stored
// ones; the previous CDN objects are removed after the row is saved, the new
// ones when the edit fails.
func (s *PropertyService) UpdateProperty(ctx context.Context, ownerID, id uuid.UUID, req *property.UpdatePropertyRequest, images *ports.PropertyImages) (*property.Property, error) {
	p, err := s.GetOwnedProperty(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if req.CustomDomain != nil {
		d := strings.ToLower(strings.TrimSpace(*req.CustomDomain))
		if d != "" && strings.ContainsAny(d, "/ :") {
			return nil, domain.Invalid("Custom domain must be a bare hostname.")
		}
	}

	var stored, replaced []string
	discard := func() {
		for _, url := range stored {
			s.images.Remove(ctx, url)
		}
	}
	if images != nil {
		uploads := []struct {
			up     *ports.Upload
			folder string
			dst    **string
			old    *string
		}{
			{images.Logo, FolderLogos, &req.Logo, p.Logo},
			{images.HeroImage, FolderHero, &req.HeroImage, p.HeroImage},
			{images.AboutImage, FolderAbout, &req.AboutImage, p.AboutImage},
		}
		for _, u := range uploads {
			if u.up == nil {
				continue
			}
			url, err := s.images.Store(ctx, u.up, u.folder)
			if err != nil {
				discard()
				return nil, err
			}
			stored = append(stored, url)
			*u.dst = &url
			if u.old != nil {
				replaced = append(replaced, *u.old)
			}
		}
	}

	req.Apply(p)
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		discard()
		return nil, err
	}
	for _, url := range replaced {
		s.images.Remove(ctx, url)
	}
	return p, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, ownerID, id uuid.UUID) (*property.Site, error) {
	p, err := s.GetOwnedProperty(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return loadSite(ctx, p, s.content)
}

func (s *PropertyService) ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*property.Property, error) {
	return s.repo.ListByTenant(ctx, ownerID)
}

// DeleteProperty removes the property and its content, then its images.
func (s *PropertyService) DeleteProperty(ctx context.Context, ownerID, id uuid.UUID) error {
	site, err := s.GetProperty(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	var urls []string
	for _, u := range []*string{site.Logo, site.HeroImage, site.AboutImage} {
		if u != nil {
			urls = append(urls, *u)
		}
	}
	for _, r := range site.Rooms {
		if r.Image != nil {
			urls = append(urls, *r.Image)
		}
	}
	for _, g := range site.Gallery {
		urls = append(urls, g.URL)
	}
	for _, url := range urls {
		s.images.Remove(ctx, url)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"tenant_id": ownerID, "property_id": id}).Info("property deleted")
	}
	return nil
}
