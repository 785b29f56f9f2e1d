package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/infrastructure/db"
	"github.com/simpleoutings/homestay/internal/infrastructure/email"
	"github.com/simpleoutings/homestay/internal/infrastructure/export"
	"github.com/simpleoutings/homestay/internal/infrastructure/health"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver"
	"github.com/simpleoutings/homestay/internal/infrastructure/httpserver/helpers"
	"github.com/simpleoutings/homestay/internal/infrastructure/images"
	"github.com/simpleoutings/homestay/internal/infrastructure/redis"
	"github.com/simpleoutings/homestay/internal/infrastructure/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := config.NewLogger(&cfg.Log)
	logger.Info("Starting homestay site builder...")

	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	version, err := database.Migrate()
	if err != nil {
		logger.Fatal("Failed to run migrations:", err)
	}
	logger.WithField("version", version).Info("Database schema up to date")

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	tokenRepo := repositories.NewTokenRedisRepository(redisClient, logger)
	resetRepo := repositories.NewResetTokenRedisRepository(redisClient)
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)
	redisCache := redis.NewRedisCache(redisClient, "homestay")

	tenantRepo := repositories.NewTenantRepository(database, logger)
	superadminRepo := repositories.NewSuperadminRepository(database, logger)
	auditRepo := repositories.NewAuditRepository(database, logger)
	bookingRepo := repositories.NewBookingRepository(database, logger)
	inquiryRepo := repositories.NewInquiryRepository(database)

	// Site lookups by host are hot; property writes invalidate them.
	propertyRepo := repositories.NewCachingPropertyRepository(repositories.NewPropertyRepository(database, logger), redisCache, 10*time.Minute, logger)
	billingRepo := repositories.NewCachingBillingRepository(repositories.NewBillingRepository(database, logger), redisCache, 30*time.Minute)

	content := services.ContentRepos{
		Rooms:        repositories.NewRoomRepository(database),
		Amenities:    repositories.NewAmenityRepository(database),
		Testimonials: repositories.NewTestimonialRepository(database),
		Gallery:      repositories.NewGalleryRepository(database),
	}

	emailService, err := email.NewEmailService(&cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	imageService := services.NewImageService(images.NewStore(&cfg.Images, logger), cfg.Images.RootFolder, cfg.Images.MaxFileBytes, logger)

	authService := services.NewAuthService(services.AuthDeps{
		TenantRepo:     tenantRepo,
		SuperadminRepo: superadminRepo,
		TokenRepo:      tokenRepo,
		ResetRepo:      resetRepo,
		EmailService:   emailService,
		JWTConfig:      &cfg.JWT,
		ResetURL:       strings.TrimRight(cfg.Email.DashboardURL, "/") + "/auth/update-password",
		Logger:         logger,
	})
	tenantService := services.NewTenantService(tenantRepo, tokenRepo, logger)
	propertyService := services.NewPropertyService(services.PropertyDeps{
		Properties: propertyRepo,
		Tenants:    tenantRepo,
		Billing:    billingRepo,
		Content:    content,
		Images:     imageService,
		Logger:     logger,
	})
	siteService := services.NewSiteService(propertyRepo, tenantRepo, content, logger)
	contentService := services.NewContentService(propertyService, content, imageService, logger)
	bookingService := services.NewBookingService(services.BookingDeps{
		Bookings:   bookingRepo,
		Properties: propertyService,
		Rooms:      content.Rooms,
		Tenants:    tenantRepo,
		Email:      emailService,
		Exporter:   export.NewBookingXLSX(),
		Logger:     logger,
	})
	inquiryService := services.NewInquiryService(inquiryRepo, propertyService, tenantRepo, emailService, logger)
	billingService := services.NewBillingService(billingRepo, tenantRepo, logger)
	superadminService := services.NewSuperadminService(superadminRepo, tenantRepo, propertyRepo, billingRepo, logger)
	auditService := services.NewAuditService(auditRepo, logger)

	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, &services.RateLimiterConfig{
		RequestsPerWindow: cfg.RateLimit.SiteRequestsPerWindow,
		BurstMultiplier:   cfg.RateLimit.BurstMultiplier,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         cfg.RateLimit.KeyPrefix,
	}, logger)
	ipLimiter := services.NewIPLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst)

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go ipLimiter.RunJanitor(bgCtx, 5*time.Minute)
	go authService.RunTokenCleanup(bgCtx, time.Hour)

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
		TrustedProxies: cfg.Server.TrustedProxies,
		Routing:        cfg.Routing,
		Cookies: helpers.CookieConfig{
			Domain:     cfg.Routing.CookieDomain,
			Secure:     cfg.Routing.CookieSecure,
			RefreshTTL: cfg.JWT.RefreshTokenTTL,
		},
	}

	server := httpserver.NewServer(serverConfig, logger, httpserver.ServerDeps{
		AuthService:        authService,
		TenantService:      tenantService,
		PropertyService:    propertyService,
		SiteService:        siteService,
		ContentService:     contentService,
		BookingService:     bookingService,
		InquiryService:     inquiryService,
		BillingService:     billingService,
		SuperadminService:  superadminService,
		AuditService:       auditService,
		RateLimiterService: rateLimiterService,
		IPLimiter:          ipLimiter,
		HealthCheckers:     []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)},
	})

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithFields(logrus.Fields{"host": cfg.Server.Host, "port": cfg.Server.Port, "base_domain": cfg.Routing.BaseDomain}).Info("Server starting")
	if err := server.Run(runCtx, 10*time.Second); err != nil {
		stopBackground()
		logger.WithError(err).Fatal("Server stopped with error")
	}
	stopBackground()

	logger.Info("Server exited")
}
