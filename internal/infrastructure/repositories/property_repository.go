package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

const propertyColumns = `id, tenant_id, name, slug, custom_domain, description, hero_title, hero_subtitle,
	hero_image, about_title, about_content, about_image, address, phone, email, whatsapp_number,
	footer_bio, connect_title, connect_description, location_address, social_links, logo,
	theme_config, created_at, updated_at`

const (
	propertySlugKey   = "properties_slug_key"
	propertyDomainKey = "properties_custom_domain_key"
)

// PropertyRepository implements ports.PropertyRepository over Postgres.
type PropertyRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewPropertyRepository(database *db.Database, logger *logrus.Logger) *PropertyRepository {
	return &PropertyRepository{db: database, logger: logger}
}

var _ ports.PropertyRepository = (*PropertyRepository)(nil)

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO properties (`+propertyColumns+`)
		VALUES (:id, :tenant_id, :name, :slug, :custom_domain, :description, :hero_title, :hero_subtitle,
			:hero_image, :about_title, :about_content, :about_image, :address, :phone, :email, :whatsapp_number,
			:footer_bio, :connect_title, :connect_description, :location_address, :social_links, :logo,
			:theme_config, :created_at, :updated_at)`, p)
	if err != nil {
		return r.mapWriteErr("create", err)
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return r.getOne(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
}

func (r *PropertyRepository) GetBySlug(ctx context.Context, slug string) (*property.Property, error) {
	return r.getOne(ctx, `SELECT `+propertyColumns+` FROM properties WHERE slug = $1`, slug)
}

func (r *PropertyRepository) GetByCustomDomain(ctx context.Context, domain string) (*property.Property, error) {
	return r.getOne(ctx, `SELECT `+propertyColumns+` FROM properties WHERE custom_domain = $1`, domain)
}

func (r *PropertyRepository) getOne(ctx context.Context, query string, arg any) (*property.Property, error) {
	var p property.Property
	if err := r.db.DB.GetContext(ctx, &p, query, arg); err != nil {
		return nil, fmt.Errorf("failed to get property: %w", notFound(err, property.ErrNotFound))
	}
	return &p, nil
}

// Update writes every editable column. Slug and owner never change.
func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) error {
	res, err := r.db.DB.NamedExecContext(ctx, `
		UPDATE properties SET
			name = :name, custom_domain = :custom_domain, description = :description,
			hero_title = :hero_title, hero_subtitle = :hero_subtitle, hero_image = :hero_image,
			about_title = :about_title, about_content = :about_content, about_image = :about_image,
			address = :address, phone = :phone, email = :email, whatsapp_number = :whatsapp_number,
			footer_bio = :footer_bio, connect_title = :connect_title, connect_description = :connect_description,
			location_address = :location_address, social_links = :social_links, logo = :logo,
			theme_config = :theme_config, updated_at = :updated_at
		WHERE id = :id`, p)
	if err != nil {
		return r.mapWriteErr("update", err)
	}
	return expectOneRow(res, property.ErrNotFound)
}

func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return expectOneRow(res, property.ErrNotFound)
}

func (r *PropertyRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*property.Property, error) {
	out := []*property.Property{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT `+propertyColumns+` FROM properties WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return out, nil
}

func (r *PropertyRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var n int
	if err := r.db.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM properties WHERE tenant_id = $1`, tenantID); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return n, nil
}

func (r *PropertyRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.DB.GetContext(ctx, &n, `SELECT COUNT(*) FROM properties`); err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return n, nil
}

func (r *PropertyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.db.DB.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM properties WHERE slug = $1)`, slug); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *PropertyRepository) mapWriteErr(op string, err error) error {
	switch {
	case isUniqueViolation(err, propertySlugKey):
		return property.ErrSlugTaken
	case isUniqueViolation(err, propertyDomainKey):
		return property.ErrDomainTaken
	}
	if r.logger != nil {
		r.logger.WithError(err).WithField("op", op).Error("db: property write failed")
	}
	return fmt.Errorf("failed to %s property: %w", op, err)
}
