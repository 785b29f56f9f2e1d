package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain/inquiry"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/mocks"
)

func TestSubmitInquiry(t *testing.T) {
	repo := &mocks.InquiryRepositoryMock{}
	email := &mocks.EmailServiceMock{}
	tenants := &mocks.TenantRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
		return &tenant.Tenant{ID: id, Email: "owner@example.com"}, nil
	}}
	svc := impl.NewInquiryService(repo, &mocks.PropertyServiceMock{}, tenants, email, nil)
	site := &property.Property{ID: uuid.New(), TenantID: uuid.New(), Name: "Sunrise"}

	i, err := svc.Submit(context.Background(), site, &inquiry.CreateRequest{GuestName: "Ana", GuestEmail: "ana@example.com", Message: " Is May free? "})
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusUnread, i.Status)
	assert.Equal(t, "Is May free?", i.Message)
	assert.Nil(t, i.GuestPhone)

	require.Len(t, email.Inquiries, 1)
	assert.Equal(t, "owner@example.com", email.Inquiries[0].OwnerEmail)
	require.Len(t, email.AutoReply, 1)
	assert.Equal(t, "ana@example.com", email.AutoReply[0].GuestEmail)
}

func TestSubmitInquiry_MissingFields(t *testing.T) {
	svc := impl.NewInquiryService(&mocks.InquiryRepositoryMock{}, &mocks.PropertyServiceMock{}, &mocks.TenantRepositoryMock{}, &mocks.EmailServiceMock{}, nil)
	_, err := svc.Submit(context.Background(), &property.Property{ID: uuid.New()}, &inquiry.CreateRequest{GuestName: "Ana", GuestEmail: "ana@example.com"})
	assert.ErrorIs(t, err, inquiry.ErrMissingFields)
}

func TestSubmitInquiry_OwnerLookupFailureStillAutoReplies(t *testing.T) {
	email := &mocks.EmailServiceMock{}
	svc := impl.NewInquiryService(&mocks.InquiryRepositoryMock{}, &mocks.PropertyServiceMock{}, &mocks.TenantRepositoryMock{}, email, nil)

	_, err := svc.Submit(context.Background(), &property.Property{ID: uuid.New()}, &inquiry.CreateRequest{GuestName: "A", GuestEmail: "a@x.io", Message: "hi"})
	require.NoError(t, err)
	assert.Empty(t, email.Inquiries)
	assert.Len(t, email.AutoReply, 1)
}

func TestSubmitInquiry_StoreFailure(t *testing.T) {
	repo := &mocks.InquiryRepositoryMock{CreateFn: func(ctx context.Context, i *inquiry.Inquiry) error { return errors.New("insert failed") }}
	email := &mocks.EmailServiceMock{}
	svc := impl.NewInquiryService(repo, &mocks.PropertyServiceMock{}, &mocks.TenantRepositoryMock{}, email, nil)

	_, err := svc.Submit(context.Background(), &property.Property{ID: uuid.New()}, &inquiry.CreateRequest{GuestName: "A", GuestEmail: "a@x.io", Message: "hi"})
	assert.Error(t, err)
	assert.Empty(t, email.AutoReply)
}

func TestInquiryUpdateStatus(t *testing.T) {
	i := &inquiry.Inquiry{ID: uuid.New(), PropertyID: uuid.New(), Status: inquiry.StatusUnread}
	var gotStatus inquiry.Status
	repo := &mocks.InquiryRepositoryMock{
		GetByIDFn:      func(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error) { return i, nil },
		UpdateStatusFn: func(ctx context.Context, id uuid.UUID, s inquiry.Status) error { gotStatus = s; return nil },
	}
	props := &mocks.PropertyServiceMock{}
	svc := impl.NewInquiryService(repo, props, &mocks.TenantRepositoryMock{}, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), i.ID, "spam")
	assert.ErrorIs(t, err, inquiry.ErrInvalidStatus)

	got, err := svc.UpdateStatus(context.Background(), uuid.New(), i.ID, inquiry.StatusReplied)
	require.NoError(t, err)
	assert.Equal(t, inquiry.StatusReplied, got.Status)
	assert.Equal(t, inquiry.StatusReplied, gotStatus)

	props.GetOwnedPropertyFn = notOwner
	_, err = svc.UpdateStatus(context.Background(), uuid.New(), i.ID, inquiry.StatusRead)
	assert.ErrorIs(t, err, inquiry.ErrNotOwner)
	assert.ErrorIs(t, svc.DeleteInquiry(context.Background(), uuid.New(), i.ID), inquiry.ErrNotOwner)
}
