package helpers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

func TestHTTPError_MapsDomainKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.Invalid("Name is required."), http.StatusBadRequest, "Name is required."},
		{domain.Unauthorized("Invalid credentials."), http.StatusUnauthorized, "Invalid credentials."},
		{domain.Forbidden("Not yours."), http.StatusForbidden, "Not yours."},
		{domain.NotFound("Room not found."), http.StatusNotFound, "Room not found."},
		{domain.Conflict("Slug taken."), http.StatusConflict, "Slug taken."},
		{domain.NotConfigured("Email is not configured."), http.StatusServiceUnavailable, "Email is not configured."},
	}
	for _, tc := range cases {
		he, ok := helpers.HTTPError(tc.err, "fallback").(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, tc.code, he.Code, tc.msg)
		assert.Equal(t, tc.msg, he.Message)
	}
}

func TestHTTPError_UnknownErrorHidesDetail(t *testing.T) {
	cause := errors.New("pq: connection refused")
	he, ok := helpers.HTTPError(cause, "Failed to load site").(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Equal(t, "Failed to load site", he.Message)
	assert.Equal(t, cause, he.Internal)
}

func TestHTTPError_PassesEchoErrorsThrough(t *testing.T) {
	orig := echo.NewHTTPError(http.StatusTeapot, "short and stout")
	assert.Same(t, orig, helpers.HTTPError(orig, "fallback"))
}
