package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/permission"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/middleware"
	"github.com/simpleoutings/homestay/internal/mocks"
)

func ok(c echo.Context) error { return c.NoContent(http.StatusOK) }

func httpCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	he, isHTTP := err.(*echo.HTTPError)
	require.True(t, isHTTP, "expected *echo.HTTPError, got %T", err)
	return he.Code
}

func TestJWTMiddleware_MissingTokenReturns401(t *testing.T) {
	e := echo.New()
	m := middleware.NewJWTMiddleware(&mocks.AuthServiceMock{}, logrus.New())
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, http.StatusUnauthorized, httpCode(t, m.RequireJWT()(ok)(c)))
}

func TestJWTMiddleware_InvalidTokenReturns401(t *testing.T) {
	e := echo.New()
	authMock := &mocks.AuthServiceMock{StartSessionFn: func(ctx context.Context, token, ip, ua string) (*auth.Claims, error) {
		return nil, fmt.Errorf("bad")
	}}
	m := middleware.NewJWTMiddleware(authMock, logrus.New())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, http.StatusUnauthorized, httpCode(t, m.RequireJWT()(ok)(c)))
}

func TestJWTMiddleware_WrongRoleReturns403(t *testing.T) {
	e := echo.New()
	authMock := &mocks.AuthServiceMock{StartSessionFn: func(ctx context.Context, token, ip, ua string) (*auth.Claims, error) {
		return &auth.Claims{SubjectID: uuid.New(), Role: auth.RoleSuperadmin}, nil
	}}
	m := middleware.NewJWTMiddleware(authMock, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer op-token")
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Equal(t, http.StatusForbidden, httpCode(t, m.RequireJWT(auth.RoleOwner)(ok)(c)))
}

func TestJWTMiddleware_CookieTokenSetsSubjectContext(t *testing.T) {
	e := echo.New()
	ownerID := uuid.New()
	var gotToken, gotUA string
	authMock := &mocks.AuthServiceMock{StartSessionFn: func(ctx context.Context, token, ip, ua string) (*auth.Claims, error) {
		gotToken, gotUA = token, ua
		return &auth.Claims{SubjectID: ownerID, Email: "ana@example.com", Role: auth.RoleOwner}, nil
	}}
	m := middleware.NewJWTMiddleware(authMock, logrus.New())
	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	req.Header.Set("User-Agent", "test-agent")
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: "cookie-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, m.RequireJWT(auth.RoleOwner)(ok)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie-token", gotToken)
	assert.Equal(t, "test-agent", gotUA)

	id, err := helpers.GetOwnerIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, ownerID, id)
	perms, err := helpers.GetPermissionsFromContext(c)
	require.NoError(t, err)
	assert.Contains(t, perms, permission.ManageOwnProperties)
	assert.NotContains(t, perms, permission.ManageTenantStatus)
	token, _ := helpers.GetAccessTokenRaw(c)
	assert.Equal(t, "cookie-token", token)
}

func TestPermMiddleware_RequirePermission(t *testing.T) {
	e := echo.New()
	h := middleware.NewPermMiddleware().RequirePermission(permission.RecordPayments)(ok)
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, http.StatusUnauthorized, httpCode(t, h(c)))

	helpers.SetPermissions(c, permission.ForRole(auth.RoleOwner))
	assert.Equal(t, http.StatusForbidden, httpCode(t, h(c)))

	helpers.SetPermissions(c, permission.ForRole(auth.RoleSuperadmin))
	assert.NoError(t, h(c))
}

func TestPermMiddleware_RequireAnyPermission(t *testing.T) {
	e := echo.New()
	h := middleware.NewPermMiddleware().RequireAnyPermission(permission.ReadAllTenants, permission.RecordPayments)(ok)
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, http.StatusUnauthorized, httpCode(t, h(c)))

	helpers.SetPermissions(c, []permission.Permission{permission.ViewAuditLog})
	assert.Equal(t, http.StatusForbidden, httpCode(t, h(c)))

	helpers.SetPermissions(c, []permission.Permission{permission.RecordPayments})
	assert.NoError(t, h(c))
}
