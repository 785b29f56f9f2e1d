package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

// localImagePattern matches image paths written before uploads moved to the CDN.
const localImagePattern = "/uploads/%"

// LocalImageRef is a property still pointing at a local upload path.
type LocalImageRef struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	HeroImage  *string   `db:"hero_image"`
	AboutImage *string   `db:"about_image"`
}

// LocalImageReport summarises what ClearLocalImages found or changed.
type LocalImageReport struct {
	Properties    []LocalImageRef
	GalleryImages int
}

// MaintenanceRepository holds the one-off queries run by the admin CLI.
type MaintenanceRepository struct {
	db *db.Database
}

func NewMaintenanceRepository(database *db.Database) *MaintenanceRepository {
	return &MaintenanceRepository{db: database}
}

// FindLocalImages lists properties and counts gallery rows that still use local paths.
func (r *MaintenanceRepository) FindLocalImages(ctx context.Context) (*LocalImageReport, error) {
	rep := &LocalImageReport{}
	if err := r.db.DB.SelectContext(ctx, &rep.Properties, `
		SELECT id, name, hero_image, about_image FROM properties
		WHERE hero_image LIKE $1 OR about_image LIKE $1
		ORDER BY name`, localImagePattern); err != nil {
		return nil, fmt.Errorf("failed to find local property images: %w", err)
	}
	if err := r.db.DB.GetContext(ctx, &rep.GalleryImages,
		`SELECT COUNT(*) FROM gallery_images WHERE url LIKE $1`, localImagePattern); err != nil {
		return nil, fmt.Errorf("failed to count local gallery images: %w", err)
	}
	return rep, nil
}

// ClearLocalImages nulls local hero and about images and deletes local
// gallery rows in one transaction.
func (r *MaintenanceRepository) ClearLocalImages(ctx context.Context) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []string{
		`UPDATE properties SET hero_image = NULL, updated_at = NOW() WHERE hero_image LIKE $1`,
		`UPDATE properties SET about_image = NULL, updated_at = NOW() WHERE about_image LIKE $1`,
		`DELETE FROM gallery_images WHERE url LIKE $1`,
	}
	for _, q := range stmts {
		if _, err := tx.ExecContext(ctx, q, localImagePattern); err != nil {
			return fmt.Errorf("failed to clear local images: %w", err)
		}
	}
	return tx.Commit()
}

// TablesExist reports which of the named tables exist in the public schema.
func (r *MaintenanceRepository) TablesExist(ctx context.Context, names ...string) (map[string]bool, error) {
	out := make(map[string]bool, len(names))
	for _, name := range names {
		var exists bool
		if err := r.db.DB.GetContext(ctx, &exists, `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, name); err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", name, err)
		}
		out[name] = exists
	}
	return out, nil
}
