package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/internal/core/domain/property"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/middleware"
	"github.com/simpleoutings/homestay/internal/mocks"
)

func hostContext(e *echo.Echo, host string) echo.Context {
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("host")
	c.SetParamValues(host)
	return c
}

func TestSiteMiddleware_ResolvesSite(t *testing.T) {
	e := echo.New()
	p := &property.Property{ID: uuid.New(), Slug: "sunrise"}
	var gotHost string
	sites := &mocks.SiteServiceMock{ResolveSiteFn: func(ctx context.Context, host string) (*property.Property, error) {
		gotHost = host
		return p, nil
	}}
	c := hostContext(e, "sunrise.simpleoutings.com")

	require.NoError(t, middleware.NewSiteMiddleware(sites, nil).ResolveSite()(ok)(c))
	assert.Equal(t, "sunrise.simpleoutings.com", gotHost)
	got, err := helpers.GetSiteFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestSiteMiddleware_UnavailableIs404(t *testing.T) {
	e := echo.New()
	c := hostContext(e, "unknown.example.com")

	assert.Equal(t, http.StatusNotFound, httpCode(t, middleware.NewSiteMiddleware(&mocks.SiteServiceMock{}, nil).ResolveSite()(ok)(c)))
}

func TestSiteMiddleware_LookupFailureIs500(t *testing.T) {
	e := echo.New()
	sites := &mocks.SiteServiceMock{ResolveSiteFn: func(ctx context.Context, host string) (*property.Property, error) {
		return nil, errors.New("db down")
	}}
	c := hostContext(e, "sunrise.simpleoutings.com")

	assert.Equal(t, http.StatusInternalServerError, httpCode(t, middleware.NewSiteMiddleware(sites, nil).ResolveSite()(ok)(c)))
}
