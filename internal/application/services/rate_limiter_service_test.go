package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/infrastructure/repositories"
)

func newRedisRateLimiter(t *testing.T, cfg *impl.RateLimiterConfig) (*impl.RateLimiterService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return impl.NewRateLimiterService(repositories.NewRateLimitRedisRepository(client), cfg, nil), mr
}

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	svc, _ := newRedisRateLimiter(t, &impl.RateLimiterConfig{RequestsPerWindow: 2, BurstMultiplier: 1.5, Window: time.Hour})
	site := uuid.New()

	for i := 0; i < 3; i++ {
		allowed, remaining, limit, reset, err := svc.Allow(context.Background(), site)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
		assert.Equal(t, 3, limit)
		assert.True(t, reset.After(time.Now().Add(-time.Hour)))
	}

	allowed, remaining, _, _, err := svc.Allow(context.Background(), site)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	// Other sites have their own window.
	allowed, _, _, _, err = svc.Allow(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	svc, mr := newRedisRateLimiter(t, nil)
	mr.Close()

	allowed, _, limit, _, err := svc.Allow(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 60, limit)
}
