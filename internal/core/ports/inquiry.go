package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/inquiry"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
)

// InquiryRepository defines the interface for inquiry data operations
type InquiryRepository interface {
	Create(ctx context.Context, i *inquiry.Inquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*inquiry.Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status inquiry.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InquiryService handles contact-form submissions and their triage.
type InquiryService interface {
	Submit(ctx context.Context, p *property.Property, req *inquiry.CreateRequest) (*inquiry.Inquiry, error)
	ListInquiries(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*inquiry.Inquiry, error)
	UpdateStatus(ctx context.Context, ownerID, inquiryID uuid.UUID, status inquiry.Status) (*inquiry.Inquiry, error)
	DeleteInquiry(ctx context.Context, ownerID, inquiryID uuid.UUID) error
}
