package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/internal/core/domain/billing"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/infrastructure/redis"
	"github.com/simpleoutings/homestay/internal/infrastructure/repositories"
	"github.com/simpleoutings/homestay/internal/mocks"
)

func strPtr(s string) *string { return &s }

type propertyLookups struct {
	byDomain, bySlug int
}

func cachingFixture(t *testing.T, p *property.Property) (*repositories.CachingPropertyRepository, *mocks.PropertyRepositoryMock, *propertyLookups) {
	t.Helper()
	client, _ := newRedis(t)
	calls := &propertyLookups{}
	inner := &mocks.PropertyRepositoryMock{
		GetByCustomDomainFn: func(ctx context.Context, domain string) (*property.Property, error) {
			calls.byDomain++
			if p.CustomDomain != nil && *p.CustomDomain == domain {
				return p, nil
			}
			return nil, property.ErrNotFound
		},
		GetBySlugFn: func(ctx context.Context, slug string) (*property.Property, error) {
			calls.bySlug++
			if slug == p.Slug {
				return p, nil
			}
			return nil, property.ErrNotFound
		},
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*property.Property, error) { return p, nil },
	}
	cache := redis.NewRedisCache(client, "test")
	return repositories.NewCachingPropertyRepository(inner, cache, 10*time.Minute, nil), inner, calls
}

func TestCachingPropertyRepository_ResolveHostCachesBySlug(t *testing.T) {
	ctx := context.Background()
	p := &property.Property{ID: uuid.New(), Slug: "sunrise", Name: "Sunrise"}
	repo, _, calls := cachingFixture(t, p)

	got, err := repo.ResolveHost(ctx, "sunrise.simpleoutings.com", "sunrise")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 1, calls.byDomain)
	assert.Equal(t, 1, calls.bySlug)

	got, err = repo.ResolveHost(ctx, "sunrise.simpleoutings.com", "sunrise")
	require.NoError(t, err)
	assert.Equal(t, "Sunrise", got.Name)
	assert.Equal(t, 1, calls.byDomain, "second lookup is served from cache")
}

func TestCachingPropertyRepository_CustomDomainWins(t *testing.T) {
	ctx := context.Background()
	p := &property.Property{ID: uuid.New(), Slug: "sunrise", CustomDomain: strPtr("sunrise-homestay.com")}
	repo, _, calls := cachingFixture(t, p)

	got, err := repo.ResolveHost(ctx, "sunrise-homestay.com", "")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, 0, calls.bySlug)
}

func TestCachingPropertyRepository_UnknownHost(t *testing.T) {
	p := &property.Property{ID: uuid.New(), Slug: "sunrise"}
	repo, _, _ := cachingFixture(t, p)

	_, err := repo.ResolveHost(context.Background(), "nobody.example.com", "")
	assert.ErrorIs(t, err, property.ErrNotFound)
}

func TestCachingPropertyRepository_UpdateInvalidatesHosts(t *testing.T) {
	ctx := context.Background()
	p := &property.Property{ID: uuid.New(), Slug: "sunrise", Name: "Sunrise"}
	repo, inner, calls := cachingFixture(t, p)
	updated := false
	inner.UpdateFn = func(ctx context.Context, got *property.Property) error {
		updated = true
		return nil
	}

	_, err := repo.ResolveHost(ctx, "sunrise.simpleoutings.com", "sunrise")
	require.NoError(t, err)

	p.Name = "Sunrise Villas"
	require.NoError(t, repo.Update(ctx, p))
	assert.True(t, updated)

	got, err := repo.ResolveHost(ctx, "sunrise.simpleoutings.com", "sunrise")
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Villas", got.Name)
	assert.Equal(t, 2, calls.bySlug)
}

func TestCachingPropertyRepository_DeleteInvalidatesHosts(t *testing.T) {
	ctx := context.Background()
	p := &property.Property{ID: uuid.New(), Slug: "sunrise"}
	repo, inner, calls := cachingFixture(t, p)
	inner.DeleteFn = func(ctx context.Context, id uuid.UUID) error { return nil }

	_, err := repo.ResolveHost(ctx, "sunrise.simpleoutings.com", "sunrise")
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, p.ID))

	_, _ = repo.ResolveHost(ctx, "sunrise.simpleoutings.com", "sunrise")
	assert.Equal(t, 2, calls.bySlug)
}

func TestCachingBillingRepository_ListPlans(t *testing.T) {
	ctx := context.Background()
	client, _ := newRedis(t)
	loads := 0
	plan := &billing.Plan{ID: uuid.New(), Name: "Basic"}
	inner := &mocks.BillingRepositoryMock{
		ListPlansFn: func(ctx context.Context) ([]*billing.Plan, error) {
			loads++
			return []*billing.Plan{plan}, nil
		},
	}
	repo := repositories.NewCachingBillingRepository(inner, redis.NewRedisCache(client, "test"), time.Hour)

	for i := 0; i < 3; i++ {
		plans, err := repo.ListPlans(ctx)
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, "Basic", plans[0].Name)
	}
	assert.Equal(t, 1, loads)

	require.NoError(t, repo.UpsertPlan(ctx, plan))
	_, err := repo.ListPlans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}
