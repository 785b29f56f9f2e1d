package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *tenant.Tenant, error)
	SuperadminLogin(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *superadmin.Superadmin, error)
	RefreshToken(ctx context.Context, refreshToken string) (*auth.AuthTokens, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
	// Logout blacklists the access token and revokes its session and refresh token.
	Logout(ctx context.Context, subjectID uuid.UUID, accessToken, refreshToken string) error
	GenerateTokens(ctx context.Context, p auth.Principal) (*auth.AuthTokens, error)

	// StartSession validates the token and enforces the inactivity timeout.
	StartSession(ctx context.Context, token string, ipAddress, userAgent string) (*auth.Claims, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	GetTokenHash(token string) string
}

// TokenRepository stores refresh tokens, the access-token blacklist and
// per-token session claims.
type TokenRepository interface {
	StoreRefreshToken(ctx context.Context, token string, rt *auth.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*auth.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error

	// ClaimRefreshRotation marks token as being rotated. Only the first caller
	// within window gets true.
	ClaimRefreshRotation(ctx context.Context, token string, window time.Duration) (bool, error)
	// CompleteRefreshRotation records the pair that replaced token for window.
	CompleteRefreshRotation(ctx context.Context, token string, tokens *auth.AuthTokens, window time.Duration) error
	// GetRefreshRotation returns the replacement pair of token. pending is
	// true while another caller is still rotating it.
	GetRefreshRotation(ctx context.Context, token string) (tokens *auth.AuthTokens, pending bool, err error)

	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error

	StoreTokenClaims(ctx context.Context, tokenHash string, claims *auth.Claims, expiresAt time.Time) error
	GetTokenClaims(ctx context.Context, tokenHash string) (*auth.Claims, error)
	UpdateTokenActivity(ctx context.Context, tokenHash string, ipAddress, userAgent string) error
	DeleteTokenClaims(ctx context.Context, tokenHash string) error
	DeleteSubjectTokenClaims(ctx context.Context, subjectID uuid.UUID, keepTokenHash *string) (int, error)

	// DeleteExpiredTokenClaims prunes per-subject indexes of sessions that already expired.
	DeleteExpiredTokenClaims(ctx context.Context) error
}

// ResetTokenRepository handles ephemeral password reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *auth.ResetToken) error
	Get(ctx context.Context, token string) (*auth.ResetToken, error)
	MarkAsUsed(ctx context.Context, tokenID uuid.UUID) error
}
