package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

// MetricsMiddleware records request counts and latencies per route and zone.
// Tenant site requests are labelled with the route pattern, never the host,
// so the series count does not grow with the number of tenants.
type MetricsMiddleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetricsMiddleware expects requestsTotal labelled (method, route, status, zone)
// and requestDuration labelled (method, route, zone).
func NewMetricsMiddleware(requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{requestsTotal: requestsTotal, requestDuration: requestDuration}
}

func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if route == "/metrics" || route == "/health" {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok && !c.Response().Committed {
				status = he.Code
			}
			if route == "" {
				route = "unmatched"
			}
			zone := string(helpers.GetZone(c))
			if zone == "" {
				zone = "none"
			}
			method := c.Request().Method

			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status), zone).Inc()
			m.requestDuration.WithLabelValues(method, route, zone).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
