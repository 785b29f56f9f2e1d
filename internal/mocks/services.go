package mocks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/audit"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/booking"
	"github.com/simpleoutings/homestay/internal/core/domain/inquiry"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

// AuthServiceMock mocks AuthService
type AuthServiceMock struct {
	LoginFn                func(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *tenant.Tenant, error)
	SuperadminLoginFn      func(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *superadmin.Superadmin, error)
	RefreshFn              func(ctx context.Context, refreshToken string) (*auth.AuthTokens, error)
	ValidateTokenFn        func(ctx context.Context, token string) (*auth.Claims, error)
	LogoutFn               func(ctx context.Context, subjectID uuid.UUID, accessToken, refreshToken string) error
	GenerateTokensFn       func(ctx context.Context, p auth.Principal) (*auth.AuthTokens, error)
	StartSessionFn         func(ctx context.Context, token, ipAddress, userAgent string) (*auth.Claims, error)
	RequestPasswordResetFn func(ctx context.Context, email string) error
	ResetPasswordFn        func(ctx context.Context, token, newPassword string) error
	GetTokenHashFn         func(token string) string
}

var _ ports.AuthService = (*AuthServiceMock)(nil)

func (m *AuthServiceMock) Login(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *tenant.Tenant, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return nil, nil, auth.ErrInvalidCredentials
}
func (m *AuthServiceMock) SuperadminLogin(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *superadmin.Superadmin, error) {
	if m.SuperadminLoginFn != nil {
		return m.SuperadminLoginFn(ctx, req)
	}
	return nil, nil, auth.ErrInvalidCredentials
}
func (m *AuthServiceMock) RefreshToken(ctx context.Context, refreshToken string) (*auth.AuthTokens, error) {
	if m.RefreshFn != nil {
		return m.RefreshFn(ctx, refreshToken)
	}
	return nil, domain.Unauthorized("invalid refresh token")
}
func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, fmt.Errorf("invalid token")
}
func (m *AuthServiceMock) Logout(ctx context.Context, subjectID uuid.UUID, accessToken, refreshToken string) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, subjectID, accessToken, refreshToken)
	}
	return nil
}
func (m *AuthServiceMock) GenerateTokens(ctx context.Context, p auth.Principal) (*auth.AuthTokens, error) {
	if m.GenerateTokensFn != nil {
		return m.GenerateTokensFn(ctx, p)
	}
	return &auth.AuthTokens{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil
}
func (m *AuthServiceMock) StartSession(ctx context.Context, token, ipAddress, userAgent string) (*auth.Claims, error) {
	if m.StartSessionFn != nil {
		return m.StartSessionFn(ctx, token, ipAddress, userAgent)
	}
	return nil, fmt.Errorf("invalid token")
}
func (m *AuthServiceMock) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFn != nil {
		return m.RequestPasswordResetFn(ctx, email)
	}
	return nil
}
func (m *AuthServiceMock) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFn != nil {
		return m.ResetPasswordFn(ctx, token, newPassword)
	}
	return nil
}
func (m *AuthServiceMock) GetTokenHash(token string) string {
	if m.GetTokenHashFn != nil {
		return m.GetTokenHashFn(token)
	}
	return "hash-" + token
}

// TenantServiceMock mocks TenantService
type TenantServiceMock struct {
	SignupFn       func(ctx context.Context, req *tenant.SignupRequest) (*tenant.Tenant, error)
	GetTenantFn    func(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	UpdateStatusFn func(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes string) (*tenant.Tenant, error)
	ListTenantsFn  func(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, int, error)
}

var _ ports.TenantService = (*TenantServiceMock)(nil)

func (m *TenantServiceMock) Signup(ctx context.Context, req *tenant.SignupRequest) (*tenant.Tenant, error) {
	if m.SignupFn != nil {
		return m.SignupFn(ctx, req)
	}
	return &tenant.Tenant{ID: uuid.New(), Email: req.Email, FullName: req.FullName, SubscriptionStatus: tenant.StatusActive}, nil
}
func (m *TenantServiceMock) GetTenant(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	if m.GetTenantFn != nil {
		return m.GetTenantFn(ctx, id)
	}
	return &tenant.Tenant{ID: id, SubscriptionStatus: tenant.StatusActive}, nil
}
func (m *TenantServiceMock) UpdateStatus(ctx context.Context, id uuid.UUID, status tenant.SubscriptionStatus, notes string) (*tenant.Tenant, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status, notes)
	}
	return &tenant.Tenant{ID: id, SubscriptionStatus: status}, nil
}
func (m *TenantServiceMock) ListTenants(ctx context.Context, limit, offset int) ([]*superadmin.TenantSummary, int, error) {
	if m.ListTenantsFn != nil {
		return m.ListTenantsFn(ctx, limit, offset)
	}
	return nil, 0, nil
}

// PropertyServiceMock mocks PropertyService
type PropertyServiceMock struct {
	CreatePropertyFn   func(ctx context.Context, ownerID uuid.UUID, req *property.CreatePropertyRequest) (*property.Property, error)
	UpdatePropertyFn   func(ctx context.Context, ownerID, id uuid.UUID, req *property.UpdatePropertyRequest, images *ports.PropertyImages) (*property.Property, error)
	GetPropertyFn      func(ctx context.Context, ownerID, id uuid.UUID) (*property.Site, error)
	ListPropertiesFn   func(ctx context.Context, ownerID uuid.UUID) ([]*property.Property, error)
	DeletePropertyFn   func(ctx context.Context, ownerID, id uuid.UUID) error
	GetOwnedPropertyFn func(ctx context.Context, ownerID, id uuid.UUID) (*property.Property, error)
}

var _ ports.PropertyService = (*PropertyServiceMock)(nil)

func (m *PropertyServiceMock) CreateProperty(ctx context.Context, ownerID uuid.UUID, req *property.CreatePropertyRequest) (*property.Property, error) {
	if m.CreatePropertyFn != nil {
		return m.CreatePropertyFn(ctx, ownerID, req)
	}
	return &property.Property{ID: uuid.New(), TenantID: ownerID, Name: req.Name, Slug: req.Slug}, nil
}
func (m *PropertyServiceMock) UpdateProperty(ctx context.Context, ownerID, id uuid.UUID, req *property.UpdatePropertyRequest, images *ports.PropertyImages) (*property.Property, error) {
	if m.UpdatePropertyFn != nil {
		return m.UpdatePropertyFn(ctx, ownerID, id, req, images)
	}
	return &property.Property{ID: id, TenantID: ownerID}, nil
}
func (m *PropertyServiceMock) GetProperty(ctx context.Context, ownerID, id uuid.UUID) (*property.Site, error) {
	if m.GetPropertyFn != nil {
		return m.GetPropertyFn(ctx, ownerID, id)
	}
	return nil, property.ErrNotFound
}
func (m *PropertyServiceMock) ListProperties(ctx context.Context, ownerID uuid.UUID) ([]*property.Property, error) {
	if m.ListPropertiesFn != nil {
		return m.ListPropertiesFn(ctx, ownerID)
	}
	return nil, nil
}
func (m *PropertyServiceMock) DeleteProperty(ctx context.Context, ownerID, id uuid.UUID) error {
	if m.DeletePropertyFn != nil {
		return m.DeletePropertyFn(ctx, ownerID, id)
	}
	return nil
}
func (m *PropertyServiceMock) GetOwnedProperty(ctx context.Context, ownerID, id uuid.UUID) (*property.Property, error) {
	if m.GetOwnedPropertyFn != nil {
		return m.GetOwnedPropertyFn(ctx, ownerID, id)
	}
	return &property.Property{ID: id, TenantID: ownerID}, nil
}

// SiteServiceMock mocks SiteService
type SiteServiceMock struct {
	ResolveSiteFn func(ctx context.Context, host string) (*property.Property, error)
	GetSiteFn     func(ctx context.Context, p *property.Property) (*property.Site, error)
}

var _ ports.SiteService = (*SiteServiceMock)(nil)

func (m *SiteServiceMock) ResolveSite(ctx context.Context, host string) (*property.Property, error) {
	if m.ResolveSiteFn != nil {
		return m.ResolveSiteFn(ctx, host)
	}
	return nil, property.ErrSiteUnavailable
}
func (m *SiteServiceMock) GetSite(ctx context.Context, p *property.Property) (*property.Site, error) {
	if m.GetSiteFn != nil {
		return m.GetSiteFn(ctx, p)
	}
	return &property.Site{Property: p}, nil
}

// BookingServiceMock mocks BookingService
type BookingServiceMock struct {
	CheckAvailabilityFn func(ctx context.Context, propertyID uuid.UUID, roomID *uuid.UUID, checkIn, checkOut string) (*booking.Availability, error)
	CreateBookingFn     func(ctx context.Context, p *property.Property, req *booking.CreateRequest) (*booking.Booking, error)
	ListBookingsFn      func(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*booking.Booking, error)
	UpdateStatusFn      func(ctx context.Context, ownerID, bookingID uuid.UUID, status booking.Status) (*booking.Booking, error)
	DeleteBookingFn     func(ctx context.Context, ownerID, bookingID uuid.UUID) error
	ExportBookingsFn    func(ctx context.Context, ownerID, propertyID uuid.UUID, w io.Writer) (*property.Property, error)
}

var _ ports.BookingService = (*BookingServiceMock)(nil)

func (m *BookingServiceMock) CheckAvailability(ctx context.Context, propertyID uuid.UUID, roomID *uuid.UUID, checkIn, checkOut string) (*booking.Availability, error) {
	if m.CheckAvailabilityFn != nil {
		return m.CheckAvailabilityFn(ctx, propertyID, roomID, checkIn, checkOut)
	}
	return &booking.Availability{Available: true}, nil
}
func (m *BookingServiceMock) CreateBooking(ctx context.Context, p *property.Property, req *booking.CreateRequest) (*booking.Booking, error) {
	if m.CreateBookingFn != nil {
		return m.CreateBookingFn(ctx, p, req)
	}
	return &booking.Booking{ID: uuid.New(), PropertyID: p.ID, Status: booking.StatusPending}, nil
}
func (m *BookingServiceMock) ListBookings(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*booking.Booking, error) {
	if m.ListBookingsFn != nil {
		return m.ListBookingsFn(ctx, ownerID, propertyID)
	}
	return nil, nil
}
func (m *BookingServiceMock) UpdateStatus(ctx context.Context, ownerID, bookingID uuid.UUID, status booking.Status) (*booking.Booking, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, ownerID, bookingID, status)
	}
	return &booking.Booking{ID: bookingID, Status: status}, nil
}
func (m *BookingServiceMock) DeleteBooking(ctx context.Context, ownerID, bookingID uuid.UUID) error {
	if m.DeleteBookingFn != nil {
		return m.DeleteBookingFn(ctx, ownerID, bookingID)
	}
	return nil
}
func (m *BookingServiceMock) ExportBookings(ctx context.Context, ownerID, propertyID uuid.UUID, w io.Writer) (*property.Property, error) {
	if m.ExportBookingsFn != nil {
		return m.ExportBookingsFn(ctx, ownerID, propertyID, w)
	}
	return &property.Property{ID: propertyID, TenantID: ownerID}, nil
}

// InquiryServiceMock mocks InquiryService
type InquiryServiceMock struct {
	SubmitFn        func(ctx context.Context, p *property.Property, req *inquiry.CreateRequest) (*inquiry.Inquiry, error)
	ListInquiriesFn func(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*inquiry.Inquiry, error)
	UpdateStatusFn  func(ctx context.Context, ownerID, inquiryID uuid.UUID, status inquiry.Status) (*inquiry.Inquiry, error)
	DeleteInquiryFn func(ctx context.Context, ownerID, inquiryID uuid.UUID) error
}

var _ ports.InquiryService = (*InquiryServiceMock)(nil)

func (m *InquiryServiceMock) Submit(ctx context.Context, p *property.Property, req *inquiry.CreateRequest) (*inquiry.Inquiry, error) {
	if m.SubmitFn != nil {
		return m.SubmitFn(ctx, p, req)
	}
	return &inquiry.Inquiry{ID: uuid.New(), PropertyID: p.ID, Status: inquiry.StatusUnread}, nil
}
func (m *InquiryServiceMock) ListInquiries(ctx context.Context, ownerID, propertyID uuid.UUID) ([]*inquiry.Inquiry, error) {
	if m.ListInquiriesFn != nil {
		return m.ListInquiriesFn(ctx, ownerID, propertyID)
	}
	return nil, nil
}
func (m *InquiryServiceMock) UpdateStatus(ctx context.Context, ownerID, inquiryID uuid.UUID, status inquiry.Status) (*inquiry.Inquiry, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, ownerID, inquiryID, status)
	}
	return &inquiry.Inquiry{ID: inquiryID, Status: status}, nil
}
func (m *InquiryServiceMock) DeleteInquiry(ctx context.Context, ownerID, inquiryID uuid.UUID) error {
	if m.DeleteInquiryFn != nil {
		return m.DeleteInquiryFn(ctx, ownerID, inquiryID)
	}
	return nil
}

// AuditServiceMock records every logged action.
type AuditServiceMock struct {
	mu             sync.Mutex
	Logged         []*audit.CreateAuditLogRequest
	LogActionFn    func(ctx context.Context, req *audit.CreateAuditLogRequest) error
	GetAuditLogsFn func(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, int, error)
	PruneFn        func(ctx context.Context, retention time.Duration) (int64, error)
}

var _ ports.AuditService = (*AuditServiceMock)(nil)

func (m *AuditServiceMock) LogAction(ctx context.Context, req *audit.CreateAuditLogRequest) error {
	m.mu.Lock()
	m.Logged = append(m.Logged, req)
	m.mu.Unlock()
	if m.LogActionFn != nil {
		return m.LogActionFn(ctx, req)
	}
	return nil
}
func (m *AuditServiceMock) GetAuditLogs(ctx context.Context, filter *audit.AuditLogFilter) ([]*audit.AuditLog, int, error) {
	if m.GetAuditLogsFn != nil {
		return m.GetAuditLogsFn(ctx, filter)
	}
	return nil, 0, nil
}
func (m *AuditServiceMock) PruneAuditLogs(ctx context.Context, retention time.Duration) (int64, error) {
	if m.PruneFn != nil {
		return m.PruneFn(ctx, retention)
	}
	return 0, nil
}

// Actions returns the logged audit actions in order.
func (m *AuditServiceMock) Actions() []audit.AuditAction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]audit.AuditAction, 0, len(m.Logged))
	for _, l := range m.Logged {
		out = append(out, l.Action)
	}
	return out
}

// RateLimiterServiceMock mocks RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, propertyID uuid.UUID) (bool, int, int, time.Time, error)
}

var _ ports.RateLimiterService = (*RateLimiterServiceMock)(nil)

func (m *RateLimiterServiceMock) Allow(ctx context.Context, propertyID uuid.UUID) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, propertyID)
	}
	return true, 10, 30, time.Now().Add(time.Minute), nil
}

// EmailServiceMock records sent emails.
type EmailServiceMock struct {
	mu        sync.Mutex
	Inquiries []*ports.InquiryEmail
	AutoReply []*ports.InquiryEmail
	Bookings  []*ports.BookingEmail
	Resets    []string
	Err       error
}

var _ ports.EmailService = (*EmailServiceMock)(nil)

func (m *EmailServiceMock) SendInquiryNotification(ctx context.Context, msg *ports.InquiryEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inquiries = append(m.Inquiries, msg)
	return m.Err
}
func (m *EmailServiceMock) SendInquiryAutoResponse(ctx context.Context, msg *ports.InquiryEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AutoReply = append(m.AutoReply, msg)
	return m.Err
}
func (m *EmailServiceMock) SendBookingNotification(ctx context.Context, msg *ports.BookingEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Bookings = append(m.Bookings, msg)
	return m.Err
}
func (m *EmailServiceMock) SendPasswordReset(ctx context.Context, email, name, resetURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets = append(m.Resets, email+" "+resetURL)
	return m.Err
}

// ImageStoreMock keeps uploads in memory under fake CDN URLs.
type ImageStoreMock struct {
	mu        sync.Mutex
	Uploaded  []string
	Deleted   []string
	UploadErr error
	DeleteErr error
}

var _ ports.ImageStore = (*ImageStoreMock)(nil)

const ImageStoreBaseURL = "https://cdn.test/"

func (m *ImageStoreMock) Upload(ctx context.Context, up *ports.Upload, folder string) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	url := fmt.Sprintf("%s%s/%d-%s", ImageStoreBaseURL, folder, len(m.Uploaded), up.Filename)
	m.Uploaded = append(m.Uploaded, url)
	return url, nil
}
func (m *ImageStoreMock) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, url)
	return m.DeleteErr
}
func (m *ImageStoreMock) Owns(url string) bool {
	return strings.HasPrefix(url, ImageStoreBaseURL)
}
