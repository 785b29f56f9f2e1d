package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/ports"
)

// RateLimiterService implements a fixed-window limit on public submissions per site.
type RateLimiterService struct {
	repo            ports.RateLimitRepository
	limit           int
	burstMultiplier float64
	window          time.Duration
	keyPrefix       string
	logger          *logrus.Logger
}

// RateLimiterConfig groups configuration parameters for the rate limiter.
type RateLimiterConfig struct {
	RequestsPerWindow int
	BurstMultiplier   float64
	Window            time.Duration
	KeyPrefix         string
}

func NewRateLimiterService(repo ports.RateLimitRepository, cfg *RateLimiterConfig, logger *logrus.Logger) *RateLimiterService {
	dl := 30
	bm := 2.0
	w := time.Minute
	kp := "ratelimit:site"
	if cfg != nil {
		if cfg.RequestsPerWindow > 0 {
			dl = cfg.RequestsPerWindow
		}
		if cfg.BurstMultiplier > 0 {
			bm = cfg.BurstMultiplier
		}
		if cfg.Window > 0 {
			w = cfg.Window
		}
		if cfg.KeyPrefix != "" {
			kp = cfg.KeyPrefix
		}
	}
	return &RateLimiterService{repo: repo, limit: dl, burstMultiplier: bm, window: w, keyPrefix: kp, logger: logger}
}

var _ ports.RateLimiterService = (*RateLimiterService)(nil)

// Allow fails open when the counter store is unavailable. The reported limit
// is the enforced burst, not the configured base rate.
func (s *RateLimiterService) Allow(ctx context.Context, propertyID uuid.UUID) (bool, int, int, time.Time, error) {
	ttl := s.window * 2 // retain overlap window
	count, windowStart, err := s.repo.IncrementWindow(ctx, propertyID, s.window, s.keyPrefix, ttl)
	reset := windowStart.Add(s.window)
	burst := s.burst()
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"property_id": propertyID}).WithError(err).Error("rate limiter: failed to increment window")
		}
		return true, burst, burst, reset, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"property_id": propertyID, "count": count, "burst": burst, "limit": s.limit}).Debug("rate limiter window state")
	}
	if count > burst {
		return false, 0, burst, reset, nil
	}
	return true, burst - count, burst, reset, nil
}

func (s *RateLimiterService) burst() int {
	return int(float64(s.limit) * s.burstMultiplier)
}
