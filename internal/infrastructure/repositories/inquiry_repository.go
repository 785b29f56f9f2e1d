package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/inquiry"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
)

const inquiryColumns = `id, property_id, guest_name, guest_email, guest_phone, message, status, created_at`

type inquiryRepository struct {
	db *db.Database
}

func NewInquiryRepository(database *db.Database) ports.InquiryRepository {
	return &inquiryRepository{db: database}
}

func (r *inquiryRepository) Create(ctx context.Context, i *inquiry.Inquiry) error {
	_, err := r.db.DB.NamedExecContext(ctx, `
		INSERT INTO inquiries (`+inquiryColumns+`)
		VALUES (:id, :property_id, :guest_name, :guest_email, :guest_phone, :message, :status, :created_at)`, i)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func (r *inquiryRepository) GetByID(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error) {
	var i inquiry.Inquiry
	if err := r.db.DB.GetContext(ctx, &i, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to get inquiry: %w", notFound(err, inquiry.ErrNotFound))
	}
	return &i, nil
}

func (r *inquiryRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*inquiry.Inquiry, error) {
	out := []*inquiry.Inquiry{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE property_id = $1 ORDER BY created_at DESC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return out, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status inquiry.Status) error {
	res, err := r.db.DB.ExecContext(ctx, `UPDATE inquiries SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update inquiry: %w", err)
	}
	return expectOneRow(res, inquiry.ErrNotFound)
}

func (r *inquiryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	return expectOneRow(res, inquiry.ErrNotFound)
}
