package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
)

// StartSession validates token, checks the stored session against the
// inactivity timeout and records the request as activity.
func (s *AuthService) StartSession(ctx context.Context, token string, ipAddress, userAgent string) (*auth.Claims, error) {
	claims, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	tokenHash := s.GetTokenHash(token)
	storedClaims, err := s.tokenRepo.GetTokenClaims(ctx, tokenHash)
	if err != nil {
		return nil, domain.Unauthorized("session not found - token may be invalid or expired")
	}

	if storedClaims.SubjectID != claims.SubjectID || storedClaims.Role != claims.Role {
		return nil, domain.Unauthorized("session validation failed - token/subject mismatch")
	}

	now := s.now()
	if now.Sub(storedClaims.LastActivity) > s.jwtConfig.SessionTimeout {
		if err := s.tokenRepo.DeleteTokenClaims(ctx, tokenHash); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"token_hash": tokenHash, "subject_id": claims.SubjectID}).WithError(err).Warn("failed to delete token claims for timed-out session")
		}
		if err := s.tokenRepo.BlacklistToken(ctx, token, now.Add(s.jwtConfig.AccessTokenTTL)); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"subject_id": claims.SubjectID}).WithError(err).Warn("failed to blacklist token for timed-out session")
		}
		return nil, auth.ErrSessionExpired
	}

	if err := s.tokenRepo.UpdateTokenActivity(ctx, tokenHash, ipAddress, userAgent); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"token_hash": tokenHash, "subject_id": claims.SubjectID}).WithError(err).Warn("failed to update token activity")
	}

	storedClaims.LastActivity = now
	storedClaims.IPAddress = ipAddress
	storedClaims.UserAgent = userAgent

	return storedClaims, nil
}
