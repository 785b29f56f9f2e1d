package audit

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	TenantID   *uuid.UUID `json:"tenant_id,omitempty" db:"tenant_id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty" db:"actor_id"`
	ActorRole  string     `json:"actor_role" db:"actor_role"`
	Action     string     `json:"action" db:"action"`
	Resource   string     `json:"resource" db:"resource"`
	ResourceID *uuid.UUID `json:"resource_id,omitempty" db:"resource_id"`
	Details    any        `json:"details,omitempty" db:"details"`
	IPAddress  string     `json:"ip_address" db:"ip_address"`
	UserAgent  string     `json:"user_agent" db:"user_agent"`
	Timestamp  time.Time  `json:"timestamp" db:"timestamp"`
}

type AuditAction string

const (
	ActionCreate       AuditAction = "create"
	ActionUpdate       AuditAction = "update"
	ActionDelete       AuditAction = "delete"
	ActionLogin        AuditAction = "login"
	ActionLogout       AuditAction = "logout"
	ActionSignup       AuditAction = "signup"
	ActionStatusChange AuditAction = "status_change"
	ActionPayment      AuditAction = "record_payment"
	ActionExport       AuditAction = "export"
)

type AuditResource string

const (
	ResourceTenant      AuditResource = "tenant"
	ResourceProperty    AuditResource = "property"
	ResourceRoom        AuditResource = "room"
	ResourceAmenity     AuditResource = "amenity"
	ResourceTestimonial AuditResource = "testimonial"
	ResourceGallery     AuditResource = "gallery_image"
	ResourceBooking     AuditResource = "booking"
	ResourceInquiry     AuditResource = "inquiry"
	ResourcePayment     AuditResource = "payment"
	ResourceSession     AuditResource = "session"
)

// CreateAuditLogRequest represents the request to create an audit log entry
type CreateAuditLogRequest struct {
	TenantID   *uuid.UUID    `json:"tenant_id,omitempty"`
	ActorID    *uuid.UUID    `json:"actor_id,omitempty"`
	ActorRole  string        `json:"actor_role"`
	Action     AuditAction   `json:"action"`
	Resource   AuditResource `json:"resource"`
	ResourceID *uuid.UUID    `json:"resource_id,omitempty"`
	Details    any           `json:"details,omitempty"`
	IPAddress  string        `json:"ip_address"`
	UserAgent  string        `json:"user_agent"`
}

// AuditLogFilter represents filters for querying audit logs
type AuditLogFilter struct {
	TenantID   *uuid.UUID     `json:"tenant_id,omitempty"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty"`
	Action     *AuditAction   `json:"action,omitempty"`
	Resource   *AuditResource `json:"resource,omitempty"`
	ResourceID *uuid.UUID     `json:"resource_id,omitempty"`
	StartTime  *time.Time     `json:"start_time,omitempty"`
	EndTime    *time.Time     `json:"end_time,omitempty"`
	Limit      int            `json:"limit"`
	Offset     int            `json:"offset"`
}
