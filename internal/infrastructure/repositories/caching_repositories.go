package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

// Utility helpers
func cacheSetSilently(c ports.Cache, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c ports.Cache, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

// loadFullListWithSingleflight coalesces a full-list load using singleflight, caches the
// full list and returns it. The loader should fetch the complete list when called.
func loadFullListWithSingleflight[T any](cache ports.Cache, ctx context.Context, sfKey, listKey string, ttl time.Duration, loader func() ([]T, error)) ([]T, error) {
	if v, ok := cacheGet[[]T](cache, ctx, listKey); ok {
		return *v, nil
	}
	res, err, _ := sf.Do(sfKey, func() (any, error) {
		if v, ok := cacheGet[[]T](cache, ctx, listKey); ok {
			return *v, nil
		}
		all, err := loader()
		if err != nil {
			return nil, err
		}
		cacheSetSilently(cache, ctx, listKey, all, ttl)
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	all, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return all, nil
}

func siteHostKey(host string) string { return "site:host:" + host }

func siteIndexKey(id uuid.UUID) string { return "site:property:" + id.String() + ":hosts" }

// CachingPropertyRepository decorates a PropertyRepository with cache-aside
// host resolution. Every cached host is indexed under its property so that
// updates and deletes can drop all of them.
type CachingPropertyRepository struct {
	ports.PropertyRepository
	cache  ports.Cache
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachingPropertyRepository(inner ports.PropertyRepository, cache ports.Cache, ttl time.Duration, logger *logrus.Logger) *CachingPropertyRepository {
	return &CachingPropertyRepository{PropertyRepository: inner, cache: cache, ttl: ttl, logger: logger}
}

// ResolveHost tries an exact custom domain match first, then slug.
func (c *CachingPropertyRepository) ResolveHost(ctx context.Context, host, slug string) (*property.Property, error) {
	key := siteHostKey(host)
	if v, ok := cacheGet[property.Property](c.cache, ctx, key); ok {
		return v, nil
	}
	res, err, _ := sf.Do(key, func() (any, error) {
		p, err := c.PropertyRepository.GetByCustomDomain(ctx, host)
		if errors.Is(err, property.ErrNotFound) && slug != "" {
			p, err = c.PropertyRepository.GetBySlug(ctx, slug)
		}
		if err != nil {
			return nil, err
		}
		cacheSetSilently(c.cache, ctx, key, p, c.ttl)
		if c.cache != nil {
			if err := c.cache.Track(ctx, siteIndexKey(p.ID), key, c.ttl); err != nil && c.logger != nil {
				c.logger.WithError(err).WithField("host", host).Warn("cache: failed to index site host")
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	p, ok := res.(*property.Property)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return p, nil
}

// Invalidate drops every cached host of p.
func (c *CachingPropertyRepository) Invalidate(ctx context.Context, p *property.Property) {
	if c.cache == nil || p == nil {
		return
	}
	idx := siteIndexKey(p.ID)
	keys, err := c.cache.Members(ctx, idx)
	if err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("property_id", p.ID).Warn("cache: failed to read site host index")
	}
	if p.CustomDomain != nil {
		keys = append(keys, siteHostKey(*p.CustomDomain))
	}
	keys = append(keys, idx)
	if err := c.cache.Delete(ctx, keys...); err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("property_id", p.ID).Warn("cache: failed to invalidate site hosts")
	}
}

func (c *CachingPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	// Load the stored row so a removed custom domain is invalidated too.
	old, _ := c.PropertyRepository.GetByID(ctx, p.ID)
	if err := c.PropertyRepository.Update(ctx, p); err != nil {
		return err
	}
	c.Invalidate(ctx, old)
	c.Invalidate(ctx, p)
	return nil
}

func (c *CachingPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	current, _ := c.PropertyRepository.GetByID(ctx, id)
	if err := c.PropertyRepository.Delete(ctx, id); err != nil {
		return err
	}
	c.Invalidate(ctx, current)
	return nil
}

// CachingBillingRepository caches the active plan list.
type CachingBillingRepository struct {
	ports.BillingRepository
	cache ports.Cache
	ttl   time.Duration
}

func NewCachingBillingRepository(inner ports.BillingRepository, cache ports.Cache, ttl time.Duration) *CachingBillingRepository {
	return &CachingBillingRepository{BillingRepository: inner, cache: cache, ttl: ttl}
}

const plansListKey = "plans:all"

func (c *CachingBillingRepository) ListPlans(ctx context.Context) ([]*billing.Plan, error) {
	return loadFullListWithSingleflight(c.cache, ctx, plansListKey, plansListKey, c.ttl, func() ([]*billing.Plan, error) {
		return c.BillingRepository.ListPlans(ctx)
	})
}

func (c *CachingBillingRepository) GetPlan(ctx context.Context, id uuid.UUID) (*billing.Plan, error) {
	key := "plan:id:" + id.String()
	if v, ok := cacheGet[billing.Plan](c.cache, ctx, key); ok {
		return v, nil
	}
	p, err := c.BillingRepository.GetPlan(ctx, id)
	if err == nil {
		cacheSetSilently(c.cache, ctx, key, p, c.ttl)
	}
	return p, err
}

func (c *CachingBillingRepository) UpsertPlan(ctx context.Context, p *billing.Plan) error {
	if err := c.BillingRepository.UpsertPlan(ctx, p); err != nil {
		return err
	}
	if c.cache != nil {
		_ = c.cache.Delete(ctx, plansListKey, "plan:id:"+p.ID.String())
	}
	return nil
}

// Simple validation to ensure decorators implement interfaces at compile time
var _ ports.PropertyRepository = (*CachingPropertyRepository)(nil)
var _ ports.SiteResolver = (*CachingPropertyRepository)(nil)
var _ ports.BillingRepository = (*CachingBillingRepository)(nil)

// singleflight group for coalescing cache-miss loads in-process
var sf singleflight.Group
