package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

var errSuperadminNotFound = domain.NotFound("Superadmin not found")

type superadminRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewSuperadminRepository(database *db.Database, logger *logrus.Logger) ports.SuperadminRepository {
	return &superadminRepository{db: database, logger: logger}
}

func (r *superadminRepository) Create(ctx context.Context, s *superadmin.Superadmin) error {
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO superadmins (id, email, name, password_hash, created_at)
		VALUES (:id, :email, :name, :password_hash, :created_at)`, s)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.Conflict("A superadmin with this email already exists.")
		}
		return fmt.Errorf("failed to create superadmin: %w", err)
	}
	return nil
}

func (r *superadminRepository) GetByEmail(ctx context.Context, email string) (*superadmin.Superadmin, error) {
	var s superadmin.Superadmin
	err := r.db.DB.GetContext(ctx, &s,
		`SELECT id, email, name, password_hash, created_at FROM superadmins WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get superadmin: %w", notFound(err, errSuperadminNotFound))
	}
	return &s, nil
}

func (r *superadminRepository) GetByID(ctx context.Context, id uuid.UUID) (*superadmin.Superadmin, error) {
	var s superadmin.Superadmin
	err := r.db.DB.GetContext(ctx, &s,
		`SELECT id, email, name, password_hash, created_at FROM superadmins WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get superadmin: %w", notFound(err, errSuperadminNotFound))
	}
	return &s, nil
}

func (r *superadminRepository) List(ctx context.Context) ([]*superadmin.Superadmin, error) {
	out := []*superadmin.Superadmin{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT id, email, name, password_hash, created_at FROM superadmins ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list superadmins: %w", err)
	}
	return out, nil
}
