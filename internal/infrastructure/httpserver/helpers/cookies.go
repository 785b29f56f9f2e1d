package helpers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
)

const (
	AccessCookie  = "so_access"
	RefreshCookie = "so_refresh"
)

// CookieConfig scopes session cookies to the parent domain so the dashboard
// and auth pages on every subdomain share them.
type CookieConfig struct {
	Domain     string
	Secure     bool
	RefreshTTL time.Duration
}

func (cfg CookieConfig) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionCookies builds the access and refresh cookies for tokens.
func (cfg CookieConfig) SessionCookies(tokens *auth.AuthTokens) []*http.Cookie {
	return []*http.Cookie{
		cfg.cookie(AccessCookie, tokens.AccessToken, int(tokens.ExpiresIn)),
		cfg.cookie(RefreshCookie, tokens.RefreshToken, int(cfg.RefreshTTL.Seconds())),
	}
}

// SetSessionCookies writes both session cookies on the response.
func (cfg CookieConfig) SetSessionCookies(c echo.Context, tokens *auth.AuthTokens) {
	for _, ck := range cfg.SessionCookies(tokens) {
		c.SetCookie(ck)
	}
}

// ClearSessionCookies expires both session cookies.
func (cfg CookieConfig) ClearSessionCookies(c echo.Context) {
	c.SetCookie(cfg.cookie(AccessCookie, "", -1))
	c.SetCookie(cfg.cookie(RefreshCookie, "", -1))
}

// RefreshTokenFrom returns the refresh token from the cookie.
func RefreshTokenFrom(c echo.Context) string {
	if ck, err := c.Cookie(RefreshCookie); err == nil {
		return ck.Value
	}
	return ""
}
