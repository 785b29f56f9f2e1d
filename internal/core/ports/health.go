package ports

import "context"

// HealthChecker checks one backing service for /health.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// Overall /health states. A failing optional checker only degrades the
// service; a failing required one makes it unhealthy.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// OptionalHealthChecker is implemented by checkers whose failure leaves the
// public sites serving, e.g. the image store.
type OptionalHealthChecker interface {
	HealthChecker
	Optional() bool
}
