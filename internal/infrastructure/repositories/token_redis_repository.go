package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

const (
	tokenPrefix     = "homestay_tokens"
	rotationPending = "pending"
)

var errTokenNotFound = domain.Unauthorized("token not found or expired")

// TokenRedisRepository keeps refresh tokens, the access-token blacklist and
// session claims in Redis. Every key carries a TTL so expired entries vanish
// on their own; only the per-subject index sets need sweeping.
type TokenRedisRepository struct {
	client redis.Cmdable
	logger *logrus.Logger
	now    func() time.Time
}

// NewTokenRedisRepository creates a new Redis token repository
func NewTokenRedisRepository(client redis.Cmdable, logger *logrus.Logger) *TokenRedisRepository {
	return &TokenRedisRepository{client: client, logger: logger, now: time.Now}
}

var _ ports.TokenRepository = (*TokenRedisRepository)(nil)

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h[:])
}

func (r *TokenRedisRepository) claimsKey(tokenHash string) string {
	return fmt.Sprintf("%s:token:%s", tokenPrefix, tokenHash)
}

func (r *TokenRedisRepository) subjectKey(subjectID uuid.UUID) string {
	return fmt.Sprintf("%s:subject:%s:tokens", tokenPrefix, subjectID)
}

func (r *TokenRedisRepository) refreshKey(token string) string {
	return fmt.Sprintf("%s:refresh:%s", tokenPrefix, hashToken(token))
}

func (r *TokenRedisRepository) rotationKey(token string) string {
	return fmt.Sprintf("%s:rotation:%s", tokenPrefix, hashToken(token))
}

func (r *TokenRedisRepository) blacklistKey(token string) string {
	return fmt.Sprintf("%s:blacklist:%s", tokenPrefix, hashToken(token))
}

func (r *TokenRedisRepository) StoreRefreshToken(ctx context.Context, token string, rt *auth.RefreshToken) error {
	ttl := rt.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}
	data, err := json.Marshal(rt)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}
	if err := r.client.Set(ctx, r.refreshKey(token), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *TokenRedisRepository) GetRefreshToken(ctx context.Context, token string) (*auth.RefreshToken, error) {
	data, err := r.client.Get(ctx, r.refreshKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errTokenNotFound
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	var rt auth.RefreshToken
	if err := json.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}
	return &rt, nil
}

func (r *TokenRedisRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.refreshKey(token)).Err()
}

func (r *TokenRedisRepository) ClaimRefreshRotation(ctx context.Context, token string, window time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.rotationKey(token), rotationPending, window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim refresh rotation: %w", err)
	}
	return ok, nil
}

func (r *TokenRedisRepository) CompleteRefreshRotation(ctx context.Context, token string, tokens *auth.AuthTokens, window time.Duration) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal rotated tokens: %w", err)
	}
	if err := r.client.Set(ctx, r.rotationKey(token), data, window).Err(); err != nil {
		return fmt.Errorf("failed to record refresh rotation: %w", err)
	}
	return nil
}

func (r *TokenRedisRepository) GetRefreshRotation(ctx context.Context, token string) (*auth.AuthTokens, bool, error) {
	data, err := r.client.Get(ctx, r.rotationKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get refresh rotation: %w", err)
	}
	if string(data) == rotationPending {
		return nil, true, nil
	}
	var tokens auth.AuthTokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal rotated tokens: %w", err)
	}
	return &tokens, false, nil
}

func (r *TokenRedisRepository) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, r.blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

// BlacklistToken remembers token until it would have expired anyway.
func (r *TokenRedisRepository) BlacklistToken(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.blacklistKey(token), 1, ttl).Err()
}

// StoreTokenClaims stores token claims in Redis with TTL
func (r *TokenRedisRepository) StoreTokenClaims(ctx context.Context, tokenHash string, claims *auth.Claims, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("token already expired")
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("failed to marshal claims: %w", err)
	}
	subjectKey := r.subjectKey(claims.SubjectID)
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.claimsKey(tokenHash), data, ttl)
	pipe.SAdd(ctx, subjectKey, tokenHash)
	pipe.Expire(ctx, subjectKey, ttl+time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store token claims in Redis: %w", err)
	}
	return nil
}

// GetTokenClaims retrieves token claims from Redis
func (r *TokenRedisRepository) GetTokenClaims(ctx context.Context, tokenHash string) (*auth.Claims, error) {
	data, err := r.client.Get(ctx, r.claimsKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errTokenNotFound
		}
		return nil, fmt.Errorf("failed to get token claims from Redis: %w", err)
	}
	var claims auth.Claims
	if err = json.Unmarshal(data, &claims); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token claims: %w", err)
	}
	return &claims, nil
}

// UpdateTokenActivity updates the last activity timestamp and metadata for a token
func (r *TokenRedisRepository) UpdateTokenActivity(ctx context.Context, tokenHash, ipAddress, userAgent string) error {
	key := r.claimsKey(tokenHash)
	claims, err := r.GetTokenClaims(ctx, tokenHash)
	if err != nil {
		return err
	}
	claims.LastActivity = r.now()
	if ipAddress != "" {
		claims.IPAddress = ipAddress
	}
	if userAgent != "" {
		claims.UserAgent = userAgent
	}
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to get token TTL: %w", err)
	}
	if ttl <= 0 {
		return errTokenNotFound
	}
	data, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("failed to marshal updated claims: %w", err)
	}
	if err = r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to update token claims: %w", err)
	}
	return nil
}

// DeleteTokenClaims removes token claims from Redis
func (r *TokenRedisRepository) DeleteTokenClaims(ctx context.Context, tokenHash string) error {
	claims, err := r.GetTokenClaims(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, errTokenNotFound) {
			return nil
		}
		return err
	}
	if err = r.client.Del(ctx, r.claimsKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("failed to delete token claims: %w", err)
	}
	subjectKey := r.subjectKey(claims.SubjectID)
	if err = r.client.SRem(ctx, subjectKey, tokenHash).Err(); err != nil && r.logger != nil {
		r.logger.WithFields(logrus.Fields{"subject_key": subjectKey, "token_hash": tokenHash}).WithError(err).Warn("failed to remove token from subject mapping")
	}
	return nil
}

// DeleteSubjectTokenClaims removes all sessions of a subject except keepTokenHash.
func (r *TokenRedisRepository) DeleteSubjectTokenClaims(ctx context.Context, subjectID uuid.UUID, keepTokenHash *string) (int, error) {
	subjectKey := r.subjectKey(subjectID)
	tokenHashes, err := r.client.SMembers(ctx, subjectKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get subject token hashes: %w", err)
	}
	deleted := 0
	for _, th := range tokenHashes {
		if keepTokenHash != nil && th == *keepTokenHash {
			continue
		}
		_ = r.client.Del(ctx, r.claimsKey(th))
		if err := r.client.SRem(ctx, subjectKey, th).Err(); err != nil {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"subject_key": subjectKey, "token_hash": th}).WithError(err).Warn("failed removing token hash from subject mapping")
			}
			continue
		}
		deleted++
	}
	return deleted, nil
}

// DeleteExpiredTokenClaims cleans up expired tokens references
func (r *TokenRedisRepository) DeleteExpiredTokenClaims(ctx context.Context) error {
	pattern := fmt.Sprintf("%s:subject:*:tokens", tokenPrefix)
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		for _, subjectKey := range keys {
			r.cleanupSubjectTokens(ctx, subjectKey)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return nil
}

// cleanupSubjectTokens removes token hashes whose claims entry no longer exists.
// A scan error skips the whole set.
func (r *TokenRedisRepository) cleanupSubjectTokens(ctx context.Context, subjectKey string) {
	var sc uint64
	for {
		members, nextSc, err := r.client.SScan(ctx, subjectKey, sc, "*", 200).Result()
		if err != nil {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"subject_key": subjectKey}).WithError(err).Warn("skipping subject set due to scan error")
			}
			return
		}
		for _, tokenHash := range members {
			exists, err := r.client.Exists(ctx, r.claimsKey(tokenHash)).Result()
			if err != nil || exists > 0 {
				continue
			}
			if err := r.client.SRem(ctx, subjectKey, tokenHash).Err(); err != nil && r.logger != nil {
				r.logger.WithFields(logrus.Fields{"subject_key": subjectKey, "token_hash": tokenHash}).WithError(err).Warn("failed to remove token hash from subject mapping")
			}
		}
		sc = nextSc
		if sc == 0 {
			break
		}
	}
}
