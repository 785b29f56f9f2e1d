package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/inquiry"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

type InquiryService struct {
	repo       ports.InquiryRepository
	properties ports.PropertyService
	tenants    ports.TenantRepository
	email      ports.EmailService
	logger     *logrus.Logger
	now        func() time.Time
}

func NewInquiryService(repo ports.InquiryRepository, properties ports.PropertyService, tenants ports.TenantRepository, email ports.EmailService, logger *logrus.Logger) *InquiryService {
	return &InquiryService{repo: repo, properties: properties, tenants: tenants, email: email, logger: logger, now: time.Now}
}

var _ ports.InquiryService = (*InquiryService)(nil)

// Submit stores an unread inquiry, then emails the owner and the guest.
// Email failures are logged only.
func (s *InquiryService) Submit(ctx context.Context, p *property.Property, req *inquiry.CreateRequest) (*inquiry.Inquiry, error) {
	req.PropertyID = p.ID
	if err := req.Validate(); err != nil {
		return nil, err
	}
	i := &inquiry.Inquiry{
		ID:         uuid.New(),
		PropertyID: p.ID,
		GuestName:  strings.TrimSpace(req.GuestName),
		GuestEmail: strings.TrimSpace(req.GuestEmail),
		GuestPhone: property.OptionalString(req.GuestPhone),
		Message:    strings.TrimSpace(req.Message),
		Status:     inquiry.StatusUnread,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	s.sendEmails(ctx, p, i)
	return i, nil
}

func (s *InquiryService) sendEmails(ctx context.Context, p *property.Property, i *inquiry.Inquiry) {
	if s.email == nil {
		return
	}
	log := func(err error, msg string) {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"property_id": p.ID, "inquiry_id": i.ID}).WithError(err).Warn(msg)
		}
	}
	msg := &ports.InquiryEmail{
		PropertyName: p.Name,
		GuestName:    i.GuestName,
		GuestEmail:   i.GuestEmail,
		Message:      i.Message,
	}
	if i.GuestPhone != nil {
		msg.GuestPhone = *i.GuestPhone
	}

	owner, err := s.tenants.GetByID(ctx, p.TenantID)
	if err != nil {
		log(err, "inquiry notification skipped: owner lookup failed")
	} else {
		msg.OwnerEmail = owner.Email
		if err := s.email.SendInquiryNotification(ctx, msg); err != nil {
			log(err, "failed to send inquiry notification")
		}
	}
	if err := s.email.SendInquiryAutoResponse(ctx, msg); err != nil {
		log(err, "failed to send inquiry auto-response")
	}
}

func (s *InquiryService) ListInquiries(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*inquiry.Inquiry, error) {
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, propertyID); err != nil {
		return nil, err
	}
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *InquiryService) owned(ctx context.Context, ownerID, inquiryID uuid.UUID) (*inquiry.Inquiry, error) {
	i, err := s.repo.GetByID(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.properties.GetOwnedProperty(ctx, ownerID, i.PropertyID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, inquiry.ErrNotOwner
		}
		return nil, err
	}
	return i, nil
}

func (s *InquiryService) UpdateStatus(ctx context.Context, ownerID, inquiryID uuid.UUID, status inquiry.Status) (*inquiry.Inquiry, error) {
	if !status.IsValid() {
		return nil, inquiry.ErrInvalidStatus
	}
	i, err := s.owned(ctx, ownerID, inquiryID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, inquiryID, status); err != nil {
		return nil, err
	}
	i.Status = status
	return i, nil
}

func (s *InquiryService) DeleteInquiry(ctx context.Context, ownerID, inquiryID uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, inquiryID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, inquiryID)
}
