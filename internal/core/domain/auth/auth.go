package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain"
)

// Role separates dashboard owners from platform operators.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleSuperadmin Role = "superadmin"
)

func (r Role) String() string { return string(r) }

// Principal is the identity a token pair is issued for.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  Role      `json:"role"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// AuthTokens represents the authentication tokens
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Claims represents JWT claims with embedded session metadata
type Claims struct {
	SubjectID    uuid.UUID `json:"sub_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Role         Role      `json:"role"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`

	jwt.RegisteredClaims
}

func (c *Claims) Principal() Principal {
	return Principal{ID: c.SubjectID, Email: c.Email, Name: c.Name, Role: c.Role}
}

// RefreshToken is the stored half of a refresh token.
type RefreshToken struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// ResetToken is a one-time password reset token.
type ResetToken struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (t *ResetToken) IsValid(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

type ResetPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type UpdatePasswordRequest struct {
	Token    string `json:"token" form:"token" validate:"required"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

var (
	ErrInvalidCredentials = domain.Unauthorized("Invalid email or password")
	ErrAccountCancelled   = domain.Forbidden("This account has been cancelled. Please contact support.")
	ErrEmailTaken         = domain.Conflict("An account with this email already exists.")
	ErrInvalidResetToken  = domain.Invalid("This reset link is invalid or has expired.")
	ErrSessionExpired     = domain.Unauthorized("session expired")
)
