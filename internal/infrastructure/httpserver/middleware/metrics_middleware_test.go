package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/middleware"
)

func newMetricsEcho() (*echo.Echo, *prometheus.CounterVec, *prometheus.HistogramVec) {
	total := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_requests_total"}, []string{"method", "route", "status", "zone"})
	dur := prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "t_request_duration_seconds"}, []string{"method", "route", "zone"})

	e := echo.New()
	e.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			helpers.SetZone(c, helpers.ZoneTenant)
			return next(c)
		}
	})
	e.Use(middleware.NewMetricsMiddleware(total, dur).CollectHTTPMetrics())
	e.GET("/sites/:host/rooms", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/sites/:host/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound) })
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e, total, dur
}

func TestCollectHTTPMetrics_LabelsByRouteAndZone(t *testing.T) {
	e, total, dur := newMetricsEcho()

	for _, host := range []string{"a.simpleoutings.com", "b.simpleoutings.com"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sites/"+host+"/rooms", nil))
	}
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sites/a.simpleoutings.com/missing", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(total.WithLabelValues(http.MethodGet, "/sites/:host/rooms", "200", "tenant")))
	assert.Equal(t, 1.0, testutil.ToFloat64(total.WithLabelValues(http.MethodGet, "/sites/:host/missing", "404", "tenant")))
	assert.Equal(t, 2, testutil.CollectAndCount(dur))
}

func TestCollectHTTPMetrics_SkipsHealthAndMetrics(t *testing.T) {
	e, total, _ := newMetricsEcho()

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, 0, testutil.CollectAndCount(total))
}
