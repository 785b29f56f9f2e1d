package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/simpleoutings/homestay/internal/core/ports"
	infraDB "github.com/simpleoutings/homestay/internal/infrastructure/db"
)

type postgresChecker struct{ db *infraDB.Database }

func (d *postgresChecker) Name() string                    { return "postgres" }
func (d *postgresChecker) Check(ctx context.Context) error { return d.db.DB.PingContext(ctx) }

// redisChecker is optional: without Redis the site cache misses through to
// Postgres and rate limiting fails open, so public sites keep serving.
type redisChecker struct{ client redis.UniversalClient }

func (r *redisChecker) Name() string                    { return "redis" }
func (r *redisChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }
func (r *redisChecker) Optional() bool                  { return true }

// NewDBHealthChecker pings Postgres.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &postgresChecker{db: db} }

// NewRedisHealthChecker pings a single Redis node or a cluster.
func NewRedisHealthChecker(client redis.UniversalClient) ports.HealthChecker {
	return &redisChecker{client: client}
}
