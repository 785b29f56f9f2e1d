package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

const (
	// resetTokenPrefix is a key namespace, not a credential.
	resetTokenPrefix = "homestay:password_reset" //nolint:gosec
)

type ResetTokenRedisRepository struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewResetTokenRedisRepository(client redis.Cmdable) *ResetTokenRedisRepository {
	return &ResetTokenRedisRepository{client: client, now: time.Now}
}

var _ ports.ResetTokenRepository = (*ResetTokenRedisRepository)(nil)

func (r *ResetTokenRedisRepository) keyByToken(token string) string {
	return fmt.Sprintf("%s:tok:%s", resetTokenPrefix, hashToken(token))
}

func (r *ResetTokenRedisRepository) keyByID(id uuid.UUID) string {
	return fmt.Sprintf("%s:id:%s", resetTokenPrefix, id.String())
}

// Create stores the token under both its value and its id with the same TTL.
func (r *ResetTokenRedisRepository) Create(ctx context.Context, t *auth.ResetToken) error {
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal reset token: %w", err)
	}

	ttl := t.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("reset token already expired")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.keyByToken(t.Token), b, ttl)
	pipe.Set(ctx, r.keyByID(t.ID), b, ttl)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store reset token in redis: %w", err)
	}
	return nil
}

func (r *ResetTokenRedisRepository) Get(ctx context.Context, token string) (*auth.ResetToken, error) {
	b, err := r.client.Get(ctx, r.keyByToken(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("failed to get reset token from redis: %w", err)
	}

	var t auth.ResetToken
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reset token: %w", err)
	}
	return &t, nil
}

// MarkAsUsed consumes the token by deleting both of its keys.
func (r *ResetTokenRedisRepository) MarkAsUsed(ctx context.Context, id uuid.UUID) error {
	idKey := r.keyByID(id)

	b, err := r.client.Get(ctx, idKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to get reset token by id: %w", err)
	}

	var t auth.ResetToken
	if err := json.Unmarshal(b, &t); err != nil {
		return fmt.Errorf("failed to unmarshal reset token: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, idKey)
	pipe.Del(ctx, r.keyByToken(t.Token))
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete reset token keys: %w", err)
	}
	return nil
}
