package services

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
)

var errInvalidToken = domain.Unauthorized("invalid token")

func (s *AuthService) GetTokenHash(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (s *AuthService) GenerateTokens(ctx context.Context, p auth.Principal) (*auth.AuthTokens, error) {
	now := s.now()

	claims := &auth.Claims{
		SubjectID:    p.ID,
		Email:        p.Email,
		Name:         p.Name,
		Role:         p.Role,
		LastActivity: now,
		CreatedAt:    now,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessTokenString, err := accessToken.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	tokenHash := s.GetTokenHash(accessTokenString)
	if err := s.tokenRepo.StoreTokenClaims(ctx, tokenHash, claims, now.Add(s.jwtConfig.SessionTimeout)); err != nil {
		return nil, fmt.Errorf("failed to store token claims: %w", err)
	}

	refreshExpiry := now.Add(s.jwtConfig.RefreshTokenTTL)
	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   p.ID.String(),
		ExpiresAt: jwt.NewNumericDate(refreshExpiry),
		IssuedAt:  jwt.NewNumericDate(now),
	})

	refreshTokenString, err := refreshToken.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	err = s.tokenRepo.StoreRefreshToken(ctx, refreshTokenString, &auth.RefreshToken{
		SubjectID: p.ID,
		Role:      p.Role,
		ExpiresAt: refreshExpiry,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &auth.AuthTokens{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (any, error) {
		// Only HMAC; rejects alg confusion.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.SubjectID == uuid.Nil {
		return nil, errInvalidToken
	}

	isBlacklisted, err := s.tokenRepo.IsTokenBlacklisted(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if isBlacklisted {
		return nil, domain.Unauthorized("token is blacklisted")
	}

	return claims, nil
}
