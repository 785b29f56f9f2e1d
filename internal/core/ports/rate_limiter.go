package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RateLimitRepository provides low-level atomic operations for rate limiting counters.
// Implementation should be concurrency-safe.
type RateLimitRepository interface {
	// IncrementWindow atomically increments the request counter for a site in the current window
	// and ensures the key expires after ttl. Returns the updated count and the window start time.
	IncrementWindow(ctx context.Context, propertyID uuid.UUID, window time.Duration, keyPrefix string, ttl time.Duration) (count int, windowStart time.Time, err error)
}

// RateLimiterService limits public submissions (inquiries, bookings) per site.
type RateLimiterService interface {
	// Allow consumes one request unit for the site and reports whether it is permitted.
	// remaining: number of additional requests allowed in current window after this one (>=0)
	// reset: time when the current window resets
	Allow(ctx context.Context, propertyID uuid.UUID) (allowed bool, remaining int, limit int, reset time.Time, err error)
}
