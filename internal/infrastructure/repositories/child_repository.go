package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

// ChildRepository stores per-property content rows. Column names double as
// the db tags of T; id and property_id are always present.
type ChildRepository[T any] struct {
	db       *db.Database
	table    string
	columns  []string
	notFound error
}

func newChildRepository[T any](database *db.Database, table string, notFoundErr error, columns ...string) *ChildRepository[T] {
	return &ChildRepository[T]{
		db:       database,
		table:    table,
		columns:  append([]string{"id", "property_id"}, columns...),
		notFound: notFoundErr,
	}
}

func NewRoomRepository(database *db.Database) ports.RoomRepository {
	return newChildRepository[property.Room](database, "rooms", property.ErrRoomNotFound,
		"type", "description", "price_lkr", "capacity", "image", "features")
}

func NewAmenityRepository(database *db.Database) ports.AmenityRepository {
	return newChildRepository[property.Amenity](database, "amenities", property.ErrAmenityNotFound,
		"name", "icon", "description")
}

func NewTestimonialRepository(database *db.Database) ports.TestimonialRepository {
	return newChildRepository[property.Testimonial](database, "testimonials", property.ErrTestimonialGone,
		"content", "author", "location")
}

func NewGalleryRepository(database *db.Database) ports.GalleryRepository {
	return newChildRepository[property.GalleryImage](database, "gallery_images", property.ErrImageNotFound,
		"url", "alt")
}

func (r *ChildRepository[T]) selectList() string {
	return strings.Join(r.columns, ", ")
}

func (r *ChildRepository[T]) Create(ctx context.Context, item *T) error {
	named := make([]string, len(r.columns))
	for i, c := range r.columns {
		named[i] = ":" + c
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", r.table, r.selectList(), strings.Join(named, ", "))
	if _, err := r.db.DB.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return nil
}

func (r *ChildRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.selectList(), r.table)
	if err := r.db.DB.GetContext(ctx, &item, query, id); err != nil {
		return nil, fmt.Errorf("failed to get from %s: %w", r.table, notFound(err, r.notFound))
	}
	return &item, nil
}

// Update rewrites every column except id and property_id.
func (r *ChildRepository[T]) Update(ctx context.Context, item *T) error {
	sets := make([]string, 0, len(r.columns)-2)
	for _, c := range r.columns[2:] {
		sets = append(sets, c+" = :"+c)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", r.table, strings.Join(sets, ", "))
	res, err := r.db.DB.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", r.table, err)
	}
	return expectOneRow(res, r.notFound)
}

func (r *ChildRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table, err)
	}
	return expectOneRow(res, r.notFound)
}

func (r *ChildRepository[T]) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*T, error) {
	out := []*T{}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE property_id = $1 ORDER BY id", r.selectList(), r.table)
	if err := r.db.DB.SelectContext(ctx, &out, query, propertyID); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return out, nil
}
