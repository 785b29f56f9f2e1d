package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern, status and host zone",
		},
		[]string{"method", "route", "status", "zone"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds by route pattern and host zone",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route", "zone"},
	)

	hostRouteTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "host_route_total",
			Help: "Requests dispatched by the host router, by zone",
		},
		[]string{"zone"},
	)

	bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings accepted from public sites",
	})

	inquiriesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inquiries_created_total",
		Help: "Inquiries submitted from public sites",
	})
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
	prometheus.MustRegister(hostRouteTotal)
	prometheus.MustRegister(bookingsCreated)
	prometheus.MustRegister(inquiriesCreated)
}

// GetRequestsTotal returns the requests total metric for middleware use
func GetRequestsTotal() *prometheus.CounterVec {
	return requestsTotal
}

// GetRequestDuration returns the request duration metric for middleware use
func GetRequestDuration() *prometheus.HistogramVec {
	return requestDuration
}

// GetHostRouteTotal returns the host router counter
func GetHostRouteTotal() *prometheus.CounterVec {
	return hostRouteTotal
}

// LogMetricsInitialization logs that metrics have been initialized
func (s *Server) LogMetricsInitialization() {
	if s.logger != nil {
		s.logger.Info("Prometheus metrics initialized and registered")
		s.logger.WithFields(map[string]interface{}{
			"http_requests_total":   "Counter for HTTP requests by method, route, status, zone",
			"http_request_duration": "Histogram for HTTP request duration by method, route, zone",
			"host_route_total":      "Counter for host router dispatch by zone",
			"bookings_created":      "Counter for bookings created on public sites",
			"inquiries_created":     "Counter for inquiries submitted on public sites",
			"metrics_endpoint":      "/metrics",
		}).Debug("Available Prometheus metrics")
	}
}

// Metrics handler
func (s *Server) metricsHandler() http.Handler {
	return promhttp.Handler()
}

// metricsEndpoint wraps the metrics handler with logging
func (s *Server) metricsEndpoint(c echo.Context) error {
	if s.logger != nil {
		s.logger.Debug("Serving Prometheus metrics")
	}
	handler := s.metricsHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
