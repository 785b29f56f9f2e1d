package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiterService
	ipLimiter   IPLimiter
	logger      *logrus.Logger
}

// IPLimiter is a per-key token bucket.
type IPLimiter interface {
	Allow(key string) (bool, time.Duration)
}

func NewRateLimitMiddleware(rateLimiter ports.RateLimiterService, ipLimiter IPLimiter, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, ipLimiter: ipLimiter, logger: logger}
}

// Handler limits public submissions per resolved site. It runs after
// SiteMiddleware and fails open when the counter store is unavailable.
func (r *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			site, ok := helpers.GetSiteRaw(c)
			if !ok || r.rateLimiter == nil {
				return next(c)
			}

			allowed, remaining, limit, reset, rlErr := r.rateLimiter.Allow(c.Request().Context(), site.ID)
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset.Unix()))

			if rlErr != nil {
				if r.logger != nil {
					r.logger.WithError(rlErr).WithField("property_id", site.ID).Warn("rate limiter error; allowing request (fail-open)")
				}
				return next(c)
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests. Please try again later.")
			}
			return next(c)
		}
	}
}

// PerIP throttles credential endpoints by client address.
func (r *RateLimitMiddleware) PerIP() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r.ipLimiter == nil {
				return next(c)
			}
			ok, wait := r.ipLimiter.Allow(c.RealIP())
			if !ok {
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(wait.Seconds()))))
				if r.logger != nil {
					r.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Warn("auth rate limit exceeded")
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many attempts. Please try again later.")
			}
			return next(c)
		}
	}
}
