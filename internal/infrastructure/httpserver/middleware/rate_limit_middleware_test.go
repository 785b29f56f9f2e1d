package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/middleware"
	"github.com/simpleoutings/homestay/internal/infrastructure/repositories"
	"github.com/simpleoutings/homestay/internal/mocks"
)

type ipLimiterFunc func(key string) (bool, time.Duration)

func (f ipLimiterFunc) Allow(key string) (bool, time.Duration) { return f(key) }

func siteContext(e *echo.Echo) (echo.Context, *httptest.ResponseRecorder, *property.Property) {
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/sites/sunrise/bookings", nil), rec)
	p := &property.Property{ID: uuid.New(), Slug: "sunrise"}
	helpers.SetSite(c, p)
	return c, rec, p
}

func TestRateLimit_SetsHeadersAndAllows(t *testing.T) {
	e := echo.New()
	reset := time.Unix(1_900_000_000, 0)
	var gotID uuid.UUID
	rl := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, propertyID uuid.UUID) (bool, int, int, time.Time, error) {
		gotID = propertyID
		return true, 29, 30, reset, nil
	}}
	m := middleware.NewRateLimitMiddleware(rl, nil, nil)
	c, rec, p := siteContext(e)

	require.NoError(t, m.Handler()(ok)(c))
	assert.Equal(t, p.ID, gotID)
	assert.Equal(t, "30", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "29", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1900000000", rec.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_LimitHeaderMatchesEnforcedBurst(t *testing.T) {
	e := echo.New()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rl := services.NewRateLimiterService(repositories.NewRateLimitRedisRepository(client),
		&services.RateLimiterConfig{RequestsPerWindow: 2, BurstMultiplier: 2, Window: time.Hour}, nil)
	m := middleware.NewRateLimitMiddleware(rl, nil, nil)
	p := &property.Property{ID: uuid.New(), Slug: "sunrise"}

	send := func() (*httptest.ResponseRecorder, error) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/sites/sunrise/bookings", nil), rec)
		helpers.SetSite(c, p)
		return rec, m.Handler()(ok)(c)
	}

	rec, err := send()
	require.NoError(t, err)
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Remaining"))

	for i := 0; i < 3; i++ {
		_, err = send()
		require.NoError(t, err, "request %d", i+2)
	}
	rec, err = send()
	assert.Equal(t, http.StatusTooManyRequests, httpCode(t, err))
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_DeniedReturns429(t *testing.T) {
	e := echo.New()
	rl := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, propertyID uuid.UUID) (bool, int, int, time.Time, error) {
		return false, 0, 30, time.Now().Add(time.Minute), nil
	}}
	m := middleware.NewRateLimitMiddleware(rl, nil, nil)
	c, rec, _ := siteContext(e)

	assert.Equal(t, http.StatusTooManyRequests, httpCode(t, m.Handler()(ok)(c)))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_FailsOpenOnStoreError(t *testing.T) {
	e := echo.New()
	rl := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, propertyID uuid.UUID) (bool, int, int, time.Time, error) {
		return false, 0, 30, time.Now(), errors.New("redis down")
	}}
	m := middleware.NewRateLimitMiddleware(rl, nil, nil)
	c, rec, _ := siteContext(e)

	require.NoError(t, m.Handler()(ok)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_NoSitePassesThrough(t *testing.T) {
	e := echo.New()
	called := false
	rl := &mocks.RateLimiterServiceMock{AllowFn: func(ctx context.Context, propertyID uuid.UUID) (bool, int, int, time.Time, error) {
		called = true
		return false, 0, 0, time.Now(), nil
	}}
	m := middleware.NewRateLimitMiddleware(rl, nil, nil)
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())

	require.NoError(t, m.Handler()(ok)(c))
	assert.False(t, called)
}

func TestPerIP_SetsRetryAfter(t *testing.T) {
	e := echo.New()
	var gotKey string
	limiter := ipLimiterFunc(func(key string) (bool, time.Duration) {
		gotKey = key
		return false, 1500 * time.Millisecond
	})
	m := middleware.NewRateLimitMiddleware(nil, limiter, nil)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.9")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.Equal(t, http.StatusTooManyRequests, httpCode(t, m.PerIP()(ok)(c)))
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, "203.0.113.9", gotKey)
}

func TestPerIP_Allows(t *testing.T) {
	e := echo.New()
	m := middleware.NewRateLimitMiddleware(nil, ipLimiterFunc(func(string) (bool, time.Duration) { return true, 0 }), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), rec)

	require.NoError(t, m.PerIP()(ok)(c))
	assert.Empty(t, rec.Header().Get("Retry-After"))
}
