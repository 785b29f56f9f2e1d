package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/simpleoutings/homestay/internal/core/ports"
)

type dependencyResult struct {
	status   string
	latency  time.Duration
	optional bool
}

// healthCheck checks every dependency in parallel. Postgres down means the
// sites cannot render (503 unhealthy); an optional dependency down is
// reported as degraded, still 503 so load balancers notice.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	var mu sync.Mutex
	results := make(map[string]dependencyResult, len(s.healthCheckers))
	var g errgroup.Group
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := hc.Check(ctx)
			r := dependencyResult{status: ports.HealthHealthy, latency: time.Since(start)}
			if err != nil {
				r.status = ports.HealthUnhealthy
				s.logger.WithError(err).WithField("dependency", hc.Name()).Warn("health check failed")
			}
			if o, ok := hc.(ports.OptionalHealthChecker); ok {
				r.optional = o.Optional()
			}
			mu.Lock()
			results[hc.Name()] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	overall := ports.HealthHealthy
	deps := make(map[string]string, len(results))
	latency := make(map[string]int64, len(results))
	for name, r := range results {
		deps[name] = r.status
		latency[name] = r.latency.Milliseconds()
		if r.status == ports.HealthHealthy {
			continue
		}
		if !r.optional {
			overall = ports.HealthUnhealthy
		} else if overall == ports.HealthHealthy {
			overall = ports.HealthDegraded
		}
	}

	code := http.StatusOK
	if overall != ports.HealthHealthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]any{
		"status":       overall,
		"service":      "homestay",
		"environment":  s.config.Environment,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"dependencies": deps,
		"latency_ms":   latency,
	})
}
