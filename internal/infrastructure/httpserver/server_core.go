package httpserver

import (
	"net"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
	customMiddleware "github.com/simpleoutings/homestay/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
	// TrustedProxies are the CIDR ranges whose X-Forwarded-For is believed.
	TrustedProxies []string

	Routing configs.RoutingConfig
	Cookies helpers.CookieConfig
}

type ServerDeps struct {
	AuthService        ports.AuthService
	TenantService      ports.TenantService
	PropertyService    ports.PropertyService
	SiteService        ports.SiteService
	ContentService     ports.ContentService
	BookingService     ports.BookingService
	InquiryService     ports.InquiryService
	BillingService     ports.BillingService
	SuperadminService  ports.SuperadminService
	AuditService       ports.AuditService
	RateLimiterService ports.RateLimiterService
	IPLimiter          customMiddleware.IPLimiter
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	tenantService  ports.TenantService
	propertySvc    ports.PropertyService
	siteSvc        ports.SiteService
	contentSvc     ports.ContentService
	bookingSvc     ports.BookingService
	inquirySvc     ports.InquiryService
	billingSvc     ports.BillingService
	superadminSvc  ports.SuperadminService
	auditSvc       ports.AuditService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = helpers.NewRequestValidator()
	e.IPExtractor = clientIPExtractor(serverConfig.TrustedProxies, logger)

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		tenantService:  deps.TenantService,
		propertySvc:    deps.PropertyService,
		siteSvc:        deps.SiteService,
		contentSvc:     deps.ContentService,
		bookingSvc:     deps.BookingService,
		inquirySvc:     deps.InquiryService,
		billingSvc:     deps.BillingService,
		superadminSvc:  deps.SuperadminService,
		auditSvc:       deps.AuditService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			serverConfig.Routing,
			serverConfig.Cookies,
			deps.AuthService,
			deps.SiteService,
			deps.RateLimiterService,
			deps.IPLimiter,
			logger,
			customMiddleware.Metrics{
				RequestsTotal:   GetRequestsTotal(),
				RequestDuration: GetRequestDuration(),
				HostRouteTotal:  GetHostRouteTotal(),
			},
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// clientIPExtractor believes X-Forwarded-For only when the peer is one of the
// trusted proxy ranges. With none configured the socket address is used, so a
// client cannot pick its own rate-limit bucket.
func clientIPExtractor(trusted []string, logger *logrus.Logger) echo.IPExtractor {
	opts := []echo.TrustOption{echo.TrustLoopback(false), echo.TrustLinkLocal(false), echo.TrustPrivateNet(false)}
	ranges := 0
	for _, cidr := range trusted {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			if logger != nil {
				logger.WithField("cidr", cidr).Warn("ignoring invalid trusted proxy range")
			}
			continue
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
		ranges++
	}
	if ranges == 0 {
		return echo.ExtractIPDirect()
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
