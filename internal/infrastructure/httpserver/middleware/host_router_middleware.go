package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/domain/auth"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
)

var fileSegment = regexp.MustCompile(`^[\w-]+\.\w+$`)

// HostRouter dispatches requests by hostname before route matching: the
// dashboard host is served from /app and /auth, tenant hosts are rewritten
// under /sites/{host}, and landing hosts pass through.
type HostRouter struct {
	cfg         configs.RoutingConfig
	authService ports.AuthService
	cookies     helpers.CookieConfig
	routeTotal  *prometheus.CounterVec
	logger      *logrus.Logger
}

func NewHostRouter(cfg configs.RoutingConfig, authService ports.AuthService, cookies helpers.CookieConfig, routeTotal *prometheus.CounterVec, logger *logrus.Logger) *HostRouter {
	return &HostRouter{cfg: cfg, authService: authService, cookies: cookies, routeTotal: routeTotal, logger: logger}
}

// Zone classifies a normalized host.
func (h *HostRouter) Zone(host string) helpers.Zone {
	base := strings.ToLower(h.cfg.BaseDomain)
	switch {
	case strings.HasPrefix(host, h.cfg.DashboardPrefix):
		return helpers.ZoneDashboard
	case host == "localhost" || host == "127.0.0.1" || host == base || host == "www."+base:
		return helpers.ZoneLanding
	}
	for _, part := range h.cfg.LandingHostContains {
		if part != "" && strings.Contains(host, part) {
			return helpers.ZoneLanding
		}
	}
	for _, lh := range h.cfg.LandingHosts {
		if strings.EqualFold(lh, host) {
			return helpers.ZoneLanding
		}
	}
	return helpers.ZoneTenant
}

// Skip reports whether path bypasses host routing.
func Skip(path string) bool {
	if strings.HasPrefix(path, "/api/") || path == "/api" || path == "/health" || path == "/metrics" {
		return true
	}
	first, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return fileSegment.MatchString(first)
}

func (h *HostRouter) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path
			if Skip(path) {
				helpers.SetZone(c, helpers.ZoneSkipped)
				return next(c)
			}

			host := normalizeHost(req.Host)
			zone := h.Zone(host)
			helpers.SetZone(c, zone)
			if h.routeTotal != nil {
				h.routeTotal.WithLabelValues(string(zone)).Inc()
			}

			switch zone {
			case helpers.ZoneDashboard:
				return h.dashboard(c, next, path)
			case helpers.ZoneTenant:
				target := "/sites/" + url.PathEscape(host)
				if path != "/" {
					target += path
				}
				rewrite(req, target)
				if h.logger != nil {
					h.logger.WithFields(logrus.Fields{"host": host, "zone": zone, "path": target}).Debug("tenant site request")
				}
			}
			return next(c)
		}
	}
}

func (h *HostRouter) dashboard(c echo.Context, next echo.HandlerFunc, path string) error {
	if under(path, "/superadmin") {
		return next(c)
	}
	req := c.Request()
	authed := h.session(c)
	isAuth := under(path, "/auth")

	if !authed && !isAuth {
		if req.Method == http.MethodGet {
			return c.Redirect(http.StatusSeeOther, "/auth/login")
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	if authed && isAuth && req.Method == http.MethodGet {
		return c.Redirect(http.StatusSeeOther, "/app")
	}
	if !isAuth && !under(path, "/app") {
		rewrite(req, strings.TrimSuffix("/app"+path, "/"))
	}
	return next(c)
}

// session reports whether the request carries a usable owner session. An
// expired access token is exchanged through the refresh cookie; the new pair
// is set on the response and on the forwarded request.
func (h *HostRouter) session(c echo.Context) bool {
	ctx := c.Request().Context()
	if ck, err := c.Cookie(helpers.AccessCookie); err == nil && ck.Value != "" {
		if claims, err := h.authService.ValidateToken(ctx, ck.Value); err == nil && claims.Role == auth.RoleOwner {
			return true
		}
	}
	refresh := helpers.RefreshTokenFrom(c)
	if refresh == "" {
		return false
	}
	tokens, err := h.authService.RefreshToken(ctx, refresh)
	if err != nil {
		if h.logger != nil {
			h.logger.WithError(err).Debug("session refresh failed")
		}
		// Only a rejected token ends the session; a backend hiccup keeps the
		// cookies for the next request.
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden) {
			h.cookies.ClearSessionCookies(c)
		}
		return false
	}
	fresh := h.cookies.SessionCookies(tokens)
	for _, ck := range fresh {
		c.SetCookie(ck)
	}
	forwardCookies(c.Request(), fresh)
	return true
}

// forwardCookies replaces same-named cookies on the request.
func forwardCookies(req *http.Request, fresh []*http.Cookie) {
	replaced := make(map[string]string, len(fresh))
	for _, ck := range fresh {
		replaced[ck.Name] = ck.Value
	}
	cookies := req.Cookies()
	req.Header.Del("Cookie")
	for _, ck := range cookies {
		if v, ok := replaced[ck.Name]; ok {
			ck.Value = v
			delete(replaced, ck.Name)
		}
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}
	for name, v := range replaced {
		req.AddCookie(&http.Cookie{Name: name, Value: v})
	}
}

func rewrite(req *http.Request, path string) {
	req.URL.Path = path
	req.URL.RawPath = ""
}

func under(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return host
}
