package helpers

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/domain/permission"
	"github.com/simpleoutings/homestay/internal/core/domain/property"
)

type ctxKey string

const (
	keySubjectID   ctxKey = "subject_id"
	keyRole        ctxKey = "role"
	keyEmail       ctxKey = "email"
	keyPermissions ctxKey = "permissions"
	keyClaims      ctxKey = "claims"
	keyAccessToken ctxKey = "access_token"
	keyZone        ctxKey = "zone"
	keySite        ctxKey = "site"
)

// Zone names the part of the product a request host belongs to.
type Zone string

const (
	ZoneLanding   Zone = "landing"
	ZoneDashboard Zone = "dashboard"
	ZoneTenant    Zone = "tenant"
	ZoneSkipped   Zone = "skipped"
)

func SetSubjectID(c echo.Context, id uuid.UUID) { c.Set(string(keySubjectID), id) }
func GetSubjectIDRaw(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(keySubjectID)).(uuid.UUID)
	return id, ok
}

func SetRole(c echo.Context, r auth.Role) { c.Set(string(keyRole), r) }
func GetRoleRaw(c echo.Context) (auth.Role, bool) {
	r, ok := c.Get(string(keyRole)).(auth.Role)
	return r, ok
}

func SetEmail(c echo.Context, email string) { c.Set(string(keyEmail), email) }
func GetEmailRaw(c echo.Context) (string, bool) {
	s, ok := c.Get(string(keyEmail)).(string)
	return s, ok
}

func SetPermissions(c echo.Context, perms []permission.Permission) {
	c.Set(string(keyPermissions), perms)
}
func GetPermissionsRaw(c echo.Context) ([]permission.Permission, bool) {
	p, ok := c.Get(string(keyPermissions)).([]permission.Permission)
	return p, ok
}

func SetClaims(c echo.Context, claims *auth.Claims) { c.Set(string(keyClaims), claims) }
func GetClaimsRaw(c echo.Context) (*auth.Claims, bool) {
	cl, ok := c.Get(string(keyClaims)).(*auth.Claims)
	return cl, ok && cl != nil
}

func SetAccessToken(c echo.Context, token string) { c.Set(string(keyAccessToken), token) }
func GetAccessTokenRaw(c echo.Context) (string, bool) {
	s, ok := c.Get(string(keyAccessToken)).(string)
	return s, ok
}

func SetZone(c echo.Context, z Zone) { c.Set(string(keyZone), z) }
func GetZone(c echo.Context) Zone {
	z, _ := c.Get(string(keyZone)).(Zone)
	return z
}

func SetSite(c echo.Context, p *property.Property) { c.Set(string(keySite), p) }
func GetSiteRaw(c echo.Context) (*property.Property, bool) {
	p, ok := c.Get(string(keySite)).(*property.Property)
	return p, ok && p != nil
}
