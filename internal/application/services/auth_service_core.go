package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/superadmin"
	"github.com/simpleoutings/homestay/internal/core/domain/tenant"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/utils"
)

type AuthService struct {
	tenantRepo     ports.TenantRepository
	superadminRepo ports.SuperadminRepository
	tokenRepo      ports.TokenRepository
	resetRepo      ports.ResetTokenRepository
	emailService   ports.EmailService
	jwtConfig      *configs.JWTConfig
	resetURL       string
	logger         *logrus.Logger
	now            func() time.Time
}

// AuthDeps groups the collaborators of AuthService.
type AuthDeps struct {
	TenantRepo     ports.TenantRepository
	SuperadminRepo ports.SuperadminRepository
	TokenRepo      ports.TokenRepository
	ResetRepo      ports.ResetTokenRepository
	EmailService   ports.EmailService
	JWTConfig      *configs.JWTConfig
	// ResetURL is the dashboard page that consumes reset tokens.
	ResetURL string
	Logger   *logrus.Logger
}

func NewAuthService(deps AuthDeps) *AuthService {
	return &AuthService{
		tenantRepo:     deps.TenantRepo,
		superadminRepo: deps.SuperadminRepo,
		tokenRepo:      deps.TokenRepo,
		resetRepo:      deps.ResetRepo,
		emailService:   deps.EmailService,
		jwtConfig:      deps.JWTConfig,
		resetURL:       deps.ResetURL,
		logger:         deps.Logger,
		now:            time.Now,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login authenticates a property owner.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *tenant.Tenant, error) {
	t, err := s.tenantRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, auth.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !utils.CheckPassword(t.PasswordHash, req.Password) {
		return nil, nil, auth.ErrInvalidCredentials
	}

	if !t.CanLogin() {
		return nil, nil, auth.ErrAccountCancelled
	}

	tokens, err := s.GenerateTokens(ctx, auth.Principal{ID: t.ID, Email: t.Email, Name: t.FullName, Role: auth.RoleOwner})
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	if err := s.tenantRepo.TouchLogin(ctx, t.ID, now); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"tenant_id": t.ID}).WithError(err).Warn("failed to update tenant last login time")
		}
	} else {
		t.LastLoginAt = &now
	}

	return tokens, t, nil
}

// SuperadminLogin authenticates a platform operator.
func (s *AuthService) SuperadminLogin(ctx context.Context, req *auth.LoginRequest) (*auth.AuthTokens, *superadmin.Superadmin, error) {
	sa, err := s.superadminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, auth.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !utils.CheckPassword(sa.PasswordHash, req.Password) {
		return nil, nil, auth.ErrInvalidCredentials
	}

	tokens, err := s.GenerateTokens(ctx, auth.Principal{ID: sa.ID, Email: sa.Email, Name: sa.Name, Role: auth.RoleSuperadmin})
	if err != nil {
		return nil, nil, err
	}
	return tokens, sa, nil
}

var errInvalidRefresh = domain.Unauthorized("invalid refresh token")

const (
	defaultRefreshReuseWindow = 10 * time.Second
	rotationWait              = 2 * time.Second
	rotationPoll              = 25 * time.Millisecond
)

var errRotationInFlight = errors.New("refresh rotation still in progress")

// RefreshToken rotates a refresh token into a new token pair. Presenting the
// same refresh token again within the reuse window returns the pair it was
// rotated into, so parallel requests from one browser share one rotation.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*auth.AuthTokens, error) {
	if tokens, err := s.rotatedPair(ctx, refreshToken); err != nil || tokens != nil {
		return tokens, err
	}

	stored, err := s.tokenRepo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		// The winner may have deleted it between our two lookups.
		if tokens, rerr := s.rotatedPair(ctx, refreshToken); rerr == nil && tokens != nil {
			return tokens, nil
		}
		return nil, errInvalidRefresh
	}

	if s.now().After(stored.ExpiresAt) {
		if err := s.tokenRepo.DeleteRefreshToken(ctx, refreshToken); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"subject_id": stored.SubjectID}).WithError(err).Warn("failed to delete expired refresh token")
		}
		return nil, domain.Unauthorized("refresh token expired")
	}

	window := s.refreshReuseWindow()
	won, err := s.tokenRepo.ClaimRefreshRotation(ctx, refreshToken, window)
	if err != nil {
		return nil, err
	}
	if !won {
		tokens, err := s.rotatedPair(ctx, refreshToken)
		if err != nil {
			return nil, err
		}
		if tokens == nil {
			return nil, errInvalidRefresh
		}
		return tokens, nil
	}

	principal, err := s.principalFor(ctx, stored.SubjectID, stored.Role)
	if err != nil {
		return nil, err
	}

	tokens, err := s.GenerateTokens(ctx, principal)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.CompleteRefreshRotation(ctx, refreshToken, tokens, window); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"subject_id": stored.SubjectID}).WithError(err).Warn("failed to record refresh rotation")
	}
	if err := s.tokenRepo.DeleteRefreshToken(ctx, refreshToken); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"subject_id": stored.SubjectID}).WithError(err).Warn("failed to delete used refresh token")
	}
	return tokens, nil
}

// rotatedPair returns the pair refreshToken was already rotated into, waiting
// for a rotation still in flight. It returns nil, nil when none is recorded.
func (s *AuthService) rotatedPair(ctx context.Context, refreshToken string) (*auth.AuthTokens, error) {
	deadline := time.NewTimer(rotationWait)
	defer deadline.Stop()
	for {
		tokens, pending, err := s.tokenRepo.GetRefreshRotation(ctx, refreshToken)
		if err != nil || !pending {
			return tokens, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, errRotationInFlight
		case <-time.After(rotationPoll):
		}
	}
}

func (s *AuthService) refreshReuseWindow() time.Duration {
	if s.jwtConfig.RefreshReuseWindow > 0 {
		return s.jwtConfig.RefreshReuseWindow
	}
	return defaultRefreshReuseWindow
}

// principalFor reloads the account behind a refresh token so that cancelled
// owners cannot keep refreshing.
func (s *AuthService) principalFor(ctx context.Context, id uuid.UUID, role auth.Role) (auth.Principal, error) {
	switch role {
	case auth.RoleOwner:
		t, err := s.tenantRepo.GetByID(ctx, id)
		if err != nil {
			return auth.Principal{}, errInvalidRefresh
		}
		if !t.CanLogin() {
			return auth.Principal{}, auth.ErrAccountCancelled
		}
		return auth.Principal{ID: t.ID, Email: t.Email, Name: t.FullName, Role: role}, nil
	case auth.RoleSuperadmin:
		sa, err := s.superadminRepo.GetByID(ctx, id)
		if err != nil {
			return auth.Principal{}, errInvalidRefresh
		}
		return auth.Principal{ID: sa.ID, Email: sa.Email, Name: sa.Name, Role: role}, nil
	}
	return auth.Principal{}, errInvalidRefresh
}

func (s *AuthService) Logout(ctx context.Context, subjectID uuid.UUID, accessToken, refreshToken string) error {
	if accessToken != "" {
		expiresAt := s.now().Add(s.jwtConfig.AccessTokenTTL)
		if err := s.tokenRepo.BlacklistToken(ctx, accessToken, expiresAt); err != nil {
			return err
		}

		tokenHash := s.GetTokenHash(accessToken)
		if err := s.tokenRepo.DeleteTokenClaims(ctx, tokenHash); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"subject_id": subjectID, "token_hash": tokenHash}).WithError(err).Warn("failed to delete token claims during logout")
		}
	}
	if refreshToken != "" {
		if err := s.tokenRepo.DeleteRefreshToken(ctx, refreshToken); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"subject_id": subjectID}).WithError(err).Warn("failed to revoke refresh token during logout")
		}
	}
	return nil
}

// RequestPasswordReset emails a one-time reset link. Unknown emails succeed
// silently so the endpoint cannot be used to discover accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	t, err := s.tenantRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	raw, err := utils.RandomToken(32)
	if err != nil {
		return err
	}
	now := s.now()
	rt := &auth.ResetToken{
		ID:        uuid.New(),
		TenantID:  t.ID,
		Token:     raw,
		ExpiresAt: now.Add(s.jwtConfig.ResetTokenTTL),
		CreatedAt: now,
	}
	if err := s.resetRepo.Create(ctx, rt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.emailService != nil {
		link := s.resetURL + "?token=" + raw
		if err := s.emailService.SendPasswordReset(ctx, t.Email, t.FullName, link); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"tenant_id": t.ID}).WithError(err).Warn("failed to send password reset email")
		}
	}
	return nil
}

// ResetPassword consumes a reset token and ends every session of the tenant.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	rt, err := s.resetRepo.Get(ctx, token)
	if err != nil {
		return err
	}
	if !rt.IsValid(s.now()) {
		return auth.ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.tenantRepo.UpdatePassword(ctx, rt.TenantID, hash); err != nil {
		return err
	}
	if err := s.resetRepo.MarkAsUsed(ctx, rt.ID); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"tenant_id": rt.TenantID}).WithError(err).Warn("failed to consume reset token")
	}
	if _, err := s.tokenRepo.DeleteSubjectTokenClaims(ctx, rt.TenantID, nil); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"tenant_id": rt.TenantID}).WithError(err).Warn("failed to end sessions after password reset")
	}
	return nil
}

// RunTokenCleanup prunes stale session indexes every interval until ctx ends.
func (s *AuthService) RunTokenCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := s.tokenRepo.DeleteExpiredTokenClaims(cctx); err != nil && s.logger != nil {
				s.logger.WithError(err).Error("failed to cleanup expired token claims")
			}
			cancel()
		}
	}
}
