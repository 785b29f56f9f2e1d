package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	HostRouter *HostRouter
	JWT        *JWTMiddleware
	Site       *SiteMiddleware
	Logging    *LoggingMiddleware
	Perm       *PermMiddleware
	RateLimit  *RateLimitMiddleware
	Metrics    *MetricsMiddleware
}

// Metrics groups the collectors used by middleware.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	HostRouteTotal  *prometheus.CounterVec
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(
	routing configs.RoutingConfig,
	cookies helpers.CookieConfig,
	authService ports.AuthService,
	siteService ports.SiteService,
	rateLimiterService ports.RateLimiterService,
	ipLimiter IPLimiter,
	logger *logrus.Logger,
	metrics Metrics,
) *MiddlewareCollection {
	return &MiddlewareCollection{
		HostRouter: NewHostRouter(routing, authService, cookies, metrics.HostRouteTotal, logger),
		JWT:        NewJWTMiddleware(authService, logger),
		Site:       NewSiteMiddleware(siteService, logger),
		Logging:    NewLoggingMiddleware(logger),
		Perm:       NewPermMiddleware(),
		RateLimit:  NewRateLimitMiddleware(rateLimiterService, ipLimiter, logger),
		Metrics:    NewMetricsMiddleware(metrics.RequestsTotal, metrics.RequestDuration),
	}
}
